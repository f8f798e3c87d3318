package polls_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pollhub/backend/internal/testutil"
)

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	srv := testutil.NewServer(t)
	q := srv.Polls.AddQuestion("q", time.Now(), "a")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/polls/"},
		{http.MethodGet, fmt.Sprintf("/polls/%d/", q.ID)},
		{http.MethodGet, fmt.Sprintf("/polls/%d/results/", q.ID)},
		{http.MethodPost, fmt.Sprintf("/polls/%d/vote/", q.ID)},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := srv.Do(t, p.method, p.path, nil, nil)
			if w.Code != http.StatusFound {
				t.Fatalf("status %d, want 302", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/polls/login/" {
				t.Errorf("redirect to %q, want /polls/login/", loc)
			}
		})
	}

	// The handler body must not have run: no vote was recorded.
	fresh, _ := srv.Polls.GetChoice(context.Background(), q.ID, q.Choices[0].ID)
	if fresh.Votes != 0 {
		t.Errorf("anonymous request reached handler body: votes = %d", fresh.Votes)
	}
}

func TestIndexShowsRecentQuestions(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")

	base := time.Now()
	for i := 0; i < 7; i++ {
		srv.Polls.AddQuestion(fmt.Sprintf("question %d", i), base.Add(time.Duration(i)*time.Minute), "a")
	}

	w := srv.Do(t, http.MethodGet, "/polls/", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	// Five newest are listed, the two oldest are not.
	for i := 2; i < 7; i++ {
		if !strings.Contains(body, fmt.Sprintf("question %d", i)) {
			t.Errorf("missing question %d", i)
		}
	}
	for i := 0; i < 2; i++ {
		if strings.Contains(body, fmt.Sprintf("question %d<", i)) {
			t.Errorf("question %d should fall outside the limit", i)
		}
	}
}

func TestIndexEmpty(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	w := srv.Do(t, http.MethodGet, "/polls/", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("empty index must render, got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No polls are available.") {
		t.Errorf("expected empty-state message:\n%s", w.Body.String())
	}
}

func TestDetail(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	q := srv.Polls.AddQuestion("favorite color?", time.Now(), "red", "blue")

	w := srv.Do(t, http.MethodGet, fmt.Sprintf("/polls/%d/", q.ID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"favorite color?", "red", "blue"} {
		if !strings.Contains(body, want) {
			t.Errorf("detail missing %q", want)
		}
	}
}

func TestDetailNotFound(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")

	for _, path := range []string{"/polls/999/", "/polls/999/results/"} {
		w := srv.Do(t, http.MethodGet, path, nil, cookie)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status %d, want 404", path, w.Code)
		}
	}
}

func TestVoteSuccess(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	q := srv.Polls.AddQuestion("q", time.Now(), "a", "b")

	w := srv.Do(t, http.MethodPost, fmt.Sprintf("/polls/%d/vote/", q.ID), url.Values{
		"choice": {fmt.Sprintf("%d", q.Choices[0].ID)},
	}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303 (%s)", w.Code, w.Body.String())
	}
	wantLoc := fmt.Sprintf("/polls/%d/results/", q.ID)
	if loc := w.Header().Get("Location"); loc != wantLoc {
		t.Errorf("redirect to %q, want %q", loc, wantLoc)
	}

	fresh, _ := srv.Polls.GetChoice(context.Background(), q.ID, q.Choices[0].ID)
	if fresh.Votes != 1 {
		t.Errorf("votes = %d, want 1", fresh.Votes)
	}
}

func TestVoteWithoutSelection(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	q := srv.Polls.AddQuestion("q", time.Now(), "a", "b")

	tests := []struct {
		name string
		form url.Values
	}{
		{"no form at all", nil},
		{"empty choice", url.Values{"choice": {""}}},
		{"garbage choice", url.Values{"choice": {"not-a-number"}}},
		{"unknown choice id", url.Values{"choice": {"424242"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.Do(t, http.MethodPost, fmt.Sprintf("/polls/%d/vote/", q.ID), tt.form, cookie)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, "You didn&#39;t select a choice.") {
				t.Errorf("missing exact error message:\n%s", body)
			}
			// The detail page comes back, not an error page.
			if !strings.Contains(body, "q") || !strings.Contains(body, "Vote") {
				t.Errorf("expected re-rendered detail page:\n%s", body)
			}
		})
	}

	for _, c := range q.Choices {
		fresh, _ := srv.Polls.GetChoice(context.Background(), q.ID, c.ID)
		if fresh.Votes != 0 {
			t.Errorf("choice %d mutated by rejected votes: %d", c.ID, fresh.Votes)
		}
	}
}

func TestVoteForeignChoiceActsLikeNoSelection(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	q1 := srv.Polls.AddQuestion("q1", time.Now(), "a")
	q2 := srv.Polls.AddQuestion("q2", time.Now(), "b")

	w := srv.Do(t, http.MethodPost, fmt.Sprintf("/polls/%d/vote/", q1.ID), url.Values{
		"choice": {fmt.Sprintf("%d", q2.Choices[0].ID)},
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You didn&#39;t select a choice.") {
		t.Errorf("missing error message:\n%s", w.Body.String())
	}

	for _, pair := range []struct{ qID, cID int64 }{
		{q1.ID, q1.Choices[0].ID},
		{q2.ID, q2.Choices[0].ID},
	} {
		fresh, _ := srv.Polls.GetChoice(context.Background(), pair.qID, pair.cID)
		if fresh.Votes != 0 {
			t.Errorf("choice %d mutated: %d", pair.cID, fresh.Votes)
		}
	}
}

func TestVoteQuestionNotFound(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	w := srv.Do(t, http.MethodPost, "/polls/999/vote/", url.Values{"choice": {"1"}}, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

// Three authenticated votes: C1 twice, C2 once. Results must show 2 and 1,
// and a rejected empty submission in between must change nothing.
func TestVoteScenario(t *testing.T) {
	srv := testutil.NewServer(t)
	cookie := srv.Register(t, "alice", "hunter2")
	q := srv.Polls.AddQuestion("Q1", time.Now(), "C1", "C2")
	c1, c2 := q.Choices[0], q.Choices[1]

	votePath := fmt.Sprintf("/polls/%d/vote/", q.ID)
	for _, choiceID := range []int64{c1.ID, c1.ID, c2.ID} {
		w := srv.Do(t, http.MethodPost, votePath, url.Values{
			"choice": {fmt.Sprintf("%d", choiceID)},
		}, cookie)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("vote for %d: status %d", choiceID, w.Code)
		}
	}

	if w := srv.Do(t, http.MethodPost, votePath, url.Values{"choice": {""}}, cookie); w.Code != http.StatusBadRequest {
		t.Fatalf("empty vote: status %d, want 400", w.Code)
	}

	freshC1, _ := srv.Polls.GetChoice(context.Background(), q.ID, c1.ID)
	freshC2, _ := srv.Polls.GetChoice(context.Background(), q.ID, c2.ID)
	if freshC1.Votes != 2 || freshC2.Votes != 1 {
		t.Fatalf("counts C1=%d C2=%d, want 2 and 1", freshC1.Votes, freshC2.Votes)
	}

	results := srv.Do(t, http.MethodGet, fmt.Sprintf("/polls/%d/results/", q.ID), nil, cookie)
	if results.Code != http.StatusOK {
		t.Fatalf("results: status %d", results.Code)
	}
	body := results.Body.String()
	if !strings.Contains(body, "C1") || !strings.Contains(body, "C2") {
		t.Errorf("results missing choices:\n%s", body)
	}
	if !strings.Contains(body, "2 votes") || !strings.Contains(body, "1 vote") {
		t.Errorf("results missing counts:\n%s", body)
	}
}

func TestBootstrapPageIsPublic(t *testing.T) {
	srv := testutil.NewServer(t)
	w := srv.Do(t, http.MethodGet, "/polls/bootstrap/", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Bootstrap") {
		t.Errorf("unexpected bootstrap page:\n%s", w.Body.String())
	}
}

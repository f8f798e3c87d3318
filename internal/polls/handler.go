package polls

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pollhub/backend/internal/models"
	"github.com/pollhub/backend/pkg/render"
)

// IndexLimit is how many questions the index page shows.
const IndexLimit = 5

// noChoiceMessage is shown when a vote arrives without a usable selection.
const noChoiceMessage = "You didn't select a choice."

// Handler handles the poll HTTP surface: index, detail, vote, results and
// the static bootstrap page. All but Bootstrap sit behind RequireUser.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a polls handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Index handles GET /polls/.
func (h *Handler) Index(c *gin.Context) {
	questions, err := h.store.ListRecent(c.Request.Context(), IndexLimit)
	if err != nil {
		h.logger.Error("list questions", zap.Error(err))
		render.HTML(c, http.StatusInternalServerError, "index.html", nil)
		return
	}
	render.OK(c, "index.html", gin.H{"Questions": questions})
}

// Detail handles GET /polls/:id/.
func (h *Handler) Detail(c *gin.Context) {
	question, ok := h.question(c)
	if !ok {
		return
	}
	render.OK(c, "detail.html", gin.H{"Question": question})
}

// Results handles GET /polls/:id/results/.
func (h *Handler) Results(c *gin.Context) {
	question, ok := h.question(c)
	if !ok {
		return
	}
	render.OK(c, "results.html", gin.H{"Question": question})
}

// Vote handles POST /polls/:id/vote/. A missing choice field, an unparseable
// value, and a choice belonging to another question are all the same error:
// the detail page comes back with a message and no count changes. Success
// redirects to the results page.
func (h *Handler) Vote(c *gin.Context) {
	question, ok := h.question(c)
	if !ok {
		return
	}

	choiceID, err := strconv.ParseInt(c.PostForm("choice"), 10, 64)
	if err != nil {
		render.HTML(c, http.StatusBadRequest, "detail.html", gin.H{
			"Question":     question,
			"ErrorMessage": noChoiceMessage,
		})
		return
	}

	if _, err := h.store.RecordVote(c.Request.Context(), question.ID, choiceID); err != nil {
		if errors.Is(err, ErrNotFound) {
			render.HTML(c, http.StatusBadRequest, "detail.html", gin.H{
				"Question":     question,
				"ErrorMessage": noChoiceMessage,
			})
			return
		}
		h.logger.Error("record vote", zap.Error(err),
			zap.Int64("question_id", question.ID), zap.Int64("choice_id", choiceID))
		render.HTML(c, http.StatusInternalServerError, "detail.html", gin.H{
			"Question":     question,
			"ErrorMessage": "Something went wrong, please try again.",
		})
		return
	}

	render.SeeOther(c, "/polls/"+strconv.FormatInt(question.ID, 10)+"/results/")
}

// Bootstrap handles GET /polls/bootstrap/, a static demo page.
func (h *Handler) Bootstrap(c *gin.Context) {
	render.OK(c, "bootstrap.html", nil)
}

// question loads the question named by the :id path param, rendering the 404
// page for malformed or unknown ids.
func (h *Handler) question(c *gin.Context) (*models.Question, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		render.NotFound(c)
		return nil, false
	}
	question, err := h.store.GetQuestion(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		render.NotFound(c)
		return nil, false
	}
	if err != nil {
		h.logger.Error("get question", zap.Error(err), zap.Int64("question_id", id))
		render.NotFound(c)
		return nil, false
	}
	return question, true
}

// Package main seeds the database with demo questions and choices. Questions
// are never created through the web surface, so this is how a fresh install
// gets something to vote on.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pollhub/backend/config"
	"github.com/pollhub/backend/internal/polls"
	"github.com/pollhub/backend/pkg/database"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	repo := polls.NewRepository(pool)

	count, err := repo.CountQuestions(ctx)
	if err != nil {
		logger.Fatal("count questions", zap.Error(err))
	}
	if count > 0 {
		logger.Info("questions already present, skipping seed", zap.Int64("count", count))
		return
	}

	seeds := []struct {
		text    string
		choices []string
	}{
		{"What's your favorite programming language?", []string{"Go", "Python", "Rust", "JavaScript"}},
		{"Tabs or spaces?", []string{"Tabs", "Spaces"}},
		{"Best time for standup?", []string{"9:00", "10:00", "11:00"}},
	}

	now := time.Now()
	for i, s := range seeds {
		// Stagger publish times so the index ordering is visible.
		publishedAt := now.Add(-time.Duration(len(seeds)-i) * time.Hour)
		q, err := repo.CreateQuestion(ctx, s.text, publishedAt, s.choices)
		if err != nil {
			logger.Fatal("create question", zap.Error(err), zap.String("text", s.text))
		}
		logger.Info("seeded question", zap.Int64("id", q.ID), zap.String("text", q.Text))
	}
	logger.Info("seed complete", zap.Int("questions", len(seeds)))
}

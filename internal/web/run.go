// Package web exposes the gradebook over a JSON API.
package web

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/gradebook"
)

func Run(ctx context.Context, config *config.Config, book *gradebook.Book, logger *zap.Logger) error {
	stats := book.Stats()
	logger.Info("Serving gradebook",
		zap.Int("students", stats.Students),
		zap.Int("courses", stats.Courses),
		zap.Int("enrollments", stats.Enrollments),
	)

	return errors.Wrap(newServer(config, book, logger).run(ctx), "Server failed")
}

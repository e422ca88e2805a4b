package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/gradebook"
	lf "github.com/bigredeye/gradebook/internal/logfield"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	config *config.Config
	logger *zap.Logger

	book    *gradebook.Book
	metrics *metrics
	cache   *responseCache
}

func newServer(config *config.Config, book *gradebook.Book, logger *zap.Logger) *server {
	m := newMetrics(book)
	return &server{
		config:  config,
		logger:  logger.With(lf.Module("web")),
		book:    book,
		metrics: m,
		cache:   newResponseCache(config.Server.CacheTTL, m),
	}
}

func (s *server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(withRequestID())
	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(s.metrics.middleware())

	setupApiService(s, r)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))

	return r
}

// run serves until ctx is done, then drains in-flight requests.
func (s *server) run(ctx context.Context) error {
	defer s.cache.stop()

	srv := &http.Server{
		Addr:    s.config.Server.ListenAddress,
		Handler: s.router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", zap.String("bind_address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "Failed to serve")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "Failed to shut down")
	})

	return g.Wait()
}

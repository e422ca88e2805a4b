package web

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/gradebook"
	lf "github.com/bigredeye/gradebook/internal/logfield"
)

type webService struct {
	server *server
	config *config.Config
	book   *gradebook.Book
	log    *zap.Logger
}

func (s webService) requestLog(c *gin.Context) *zap.Logger {
	return s.log.With(lf.RequestID(requestID(c)))
}

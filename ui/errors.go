package ui

import (
	"net/http"

	"prizedeck/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorPage struct {
	Status  int
	Title   string
	Code    string
	Message string
	Back    string
}

// renderError shows an HTML error page with the status mapped from the error
// code.
func (s *Server) renderError(c *gin.Context, err error, back string) {
	status := s.recordError(c, err)
	s.renderTemplate(c, status, "error.html", errorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Code:    errors.GetCode(err),
		Message: err.Error(),
		Back:    back,
	})
}

// apiError writes the error as JSON.
func (s *Server) apiError(c *gin.Context, err error) {
	status := s.recordError(c, err)
	c.AbortWithStatusJSON(status, gin.H{
		"error":   errors.GetCode(err),
		"message": err.Error(),
	})
}

func (s *Server) recordError(c *gin.Context, err error) int {
	_ = c.Error(err)
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	return status
}

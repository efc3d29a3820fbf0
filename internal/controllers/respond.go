package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_booking/internal/workflow"
)

// respondError maps a workflow error kind to an HTTP status and writes the
// standard {error, message} failure payload. Internal errors are logged and
// surfaced with a generic message so store details never leak to clients.
func respondError(c *gin.Context, err error) {
	kind := workflow.KindOf(err)
	msg := err.Error()
	if we, ok := err.(*workflow.Error); ok {
		msg = we.Message
	}
	if kind == workflow.KindInternal {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		msg = "Unexpected server error"
	}
	c.JSON(statusForKind(kind), gin.H{"error": string(kind), "message": msg})
}

func statusForKind(kind workflow.Kind) int {
	switch kind {
	case workflow.KindValidation:
		return http.StatusBadRequest
	case workflow.KindUnauthorized:
		return http.StatusUnauthorized
	case workflow.KindForbidden:
		return http.StatusForbidden
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindConflict, workflow.KindInvalidState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// isUniqueViolation detects duplicate-key failures from the store, either as
// gorm's translated sentinel or as a raw Postgres 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

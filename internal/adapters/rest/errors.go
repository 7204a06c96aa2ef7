package rest

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dogwalk/internal/domain"
)

const codeInternal = "internal"

var statusByCode = map[string]int{
	"validation":             http.StatusBadRequest,
	"participant_not_found":  http.StatusNotFound,
	"walk_not_found":         http.StatusNotFound,
	"turn_not_found":         http.StatusNotFound,
	"empty_roster":           http.StatusConflict,
	"no_candidate":           http.StatusConflict,
	"concurrent_update":      http.StatusConflict,
	"walk_pending":           http.StatusConflict,
	"animal_not_detected":    http.StatusUnprocessableEntity,
	"classifier_unavailable": http.StatusUnprocessableEntity,
}

// statusOf maps an error to its HTTP status and public code.
func statusOf(err error) (int, string) {
	code := domain.Code(err)
	if status, ok := statusByCode[code]; ok {
		return status, code
	}
	return http.StatusInternalServerError, codeInternal
}

// respondError writes {"error": code, "message": text} with the message
// rendered in the caller's language.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":   code,
		"message": h.T.T(locale(c), "error."+code, nil),
	})
}

func locale(c *gin.Context) string {
	return c.GetHeader("Accept-Language")
}

package discord

import (
	"dogwalk/internal/domain"
	"dogwalk/internal/ports/output"
)

// DomainErrorMessage renders err for a Discord user. Errors outside the
// domain get the generic message.
func DomainErrorMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	code := domain.Code(err)
	if code == "" {
		code = "internal"
	}
	return t.T(locale, "error."+code, nil)
}

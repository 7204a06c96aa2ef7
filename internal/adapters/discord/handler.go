package discord

import (
	"time"

	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

// Handler answers slash commands using the turn use case.
type Handler struct {
	turns  input.TurnUseCase
	t      output.T
	locale string
	loc    *time.Location
}

// NewHandler creates a Handler. locale is used when an interaction carries
// none; loc is the zone times are displayed in.
func NewHandler(turns input.TurnUseCase, t output.T, locale string, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{turns: turns, t: t, locale: locale, loc: loc}
}

func (h *Handler) localeOf(interactionLocale string) string {
	if interactionLocale != "" {
		return interactionLocale
	}
	return h.locale
}

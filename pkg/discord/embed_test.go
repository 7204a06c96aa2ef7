package discord

import (
	"errors"
	"strings"
	"testing"
	"time"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

type fakeT struct{}

func (fakeT) T(locale, key string, data map[string]any) string {
	var b strings.Builder
	b.WriteString(locale + ":" + key)
	for _, k := range []string{"Name", "Original", "Since"} {
		if v, ok := data[k]; ok {
			b.WriteString(" " + k + "=" + v.(string))
		}
	}
	return b.String()
}

func TestTurnMessageKey(t *testing.T) {
	ana := entities.TurnState{ParticipantID: "a", ParticipantName: "Ana", Status: domain.TurnWaiting}
	bea := entities.TurnState{ParticipantID: "b", ParticipantName: "Bea", Status: domain.TurnWaiting}
	standIn := bea
	standIn.Original = &entities.ParticipantRef{ID: "a", Name: "Ana"}
	verifying := standIn
	verifying.Status = domain.TurnVerifying
	reverted := ana
	reverted.LastWalker = domain.RevertSentinel

	tests := []struct {
		name string
		prev *entities.TurnState
		cur  entities.TurnState
		want string
	}{
		{"first turn", nil, ana, "turn.assigned"},
		{"rotation", &ana, bea, "turn.assigned"},
		{"replacement", &ana, standIn, "turn.replacement"},
		{"stand-in verifying", &standIn, verifying, "turn.verifying"},
		{"stand-in back to waiting", &verifying, standIn, "turn.assigned"},
		{"revert", &bea, reverted, "turn.reverted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TurnMessageKey(tt.prev, tt.cur); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildTurnEmbed(t *testing.T) {
	turn := entities.TurnState{
		ParticipantName: "Bea",
		Original:        &entities.ParticipantRef{Name: "Ana"},
		UpdatedAt:       time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC),
	}
	loc := time.FixedZone("CEST", 2*60*60)

	embed := BuildTurnEmbed(fakeT{}, "es", loc, "turn.replacement", turn)
	if embed.Title != "🐕 es:turn.replacement Name=Bea Original=Ana" {
		t.Errorf("unexpected title %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "Since=01/05/2026 10:30") {
		t.Errorf("expected local time in description, got %q", embed.Description)
	}
	if embed.Color != embedColor {
		t.Errorf("unexpected color %x", embed.Color)
	}
}

func TestDomainErrorMessage(t *testing.T) {
	if got := DomainErrorMessage(fakeT{}, "en", domain.ErrNoCandidate); got != "en:error.no_candidate" {
		t.Errorf("got %q", got)
	}
	if got := DomainErrorMessage(fakeT{}, "en", errors.New("boom")); got != "en:error.internal" {
		t.Errorf("got %q", got)
	}
	if got := DomainErrorMessage(fakeT{}, "en", nil); got != "" {
		t.Errorf("got %q", got)
	}
}

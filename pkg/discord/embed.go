package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
)

const (
	embedColor          = 0x5865F2
	embedColorVerifying = 0xFEE75C
	embedColorReverted  = 0xED4245
	timeLayout          = "02/01/2006 15:04"
)

// TurnMessageKey picks the catalog message announcing cur, given the turn
// that was announced before it (nil for the first one).
func TurnMessageKey(prev *entities.TurnState, cur entities.TurnState) string {
	switch {
	case cur.Status == domain.TurnVerifying:
		return "turn.verifying"
	case cur.LastWalker == domain.RevertSentinel && (prev == nil || prev.LastWalker != domain.RevertSentinel):
		return "turn.reverted"
	case cur.Original != nil && (prev == nil || prev.ParticipantID != cur.ParticipantID):
		return "turn.replacement"
	default:
		return "turn.assigned"
	}
}

// BuildTurnEmbed renders a turn with the message picked by TurnMessageKey.
func BuildTurnEmbed(t output.T, locale string, loc *time.Location, key string, turn entities.TurnState) *discordgo.MessageEmbed {
	data := map[string]any{"Name": turn.ParticipantName}
	if turn.Original != nil {
		data["Original"] = turn.Original.Name
	}

	color := embedColor
	switch key {
	case "turn.verifying":
		color = embedColorVerifying
	case "turn.reverted":
		color = embedColorReverted
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🐕 " + t.T(locale, key, data),
		Description: t.T(locale, "turn.current", map[string]any{"Name": turn.ParticipantName, "Since": turn.UpdatedAt.In(loc).Format(timeLayout)}),
		Color:       color,
	}
	if !turn.UpdatedAt.IsZero() {
		embed.Timestamp = turn.UpdatedAt.Format(time.RFC3339)
	}
	return embed
}

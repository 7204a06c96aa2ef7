package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"dogwalk/internal/domain"
	pkgdiscord "dogwalk/pkg/discord"
)

const (
	cmdTurn        = "turno"
	cmdReplacement = "reemplazo"
)

var commands = []*discordgo.ApplicationCommand{
	{Name: cmdTurn, Description: "Muestra a quién le toca pasear al perro"},
	{Name: cmdReplacement, Description: "Pide que alguien te reemplace en el turno actual"},
}

func (h *Handler) HandleTurnCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i.Interaction, h.turnResponse(context.Background(), h.localeOf(string(i.Locale))))
}

func (h *Handler) HandleReplacementCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i.Interaction, h.replacementResponse(context.Background(), h.localeOf(string(i.Locale))))
}

func (h *Handler) turnResponse(ctx context.Context, locale string) *discordgo.InteractionResponseData {
	turn, err := h.turns.Current(ctx)
	if errors.Is(err, domain.ErrTurnNotFound) {
		return ephemeral(h.t.T(locale, "turn.none", nil))
	}
	if err != nil {
		return ephemeral(pkgdiscord.DomainErrorMessage(h.t, locale, err))
	}
	key := "turn.assigned"
	if turn.IsReplacement() {
		key = "turn.replacement"
	}
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{pkgdiscord.BuildTurnEmbed(h.t, locale, h.loc, key, *turn)},
	}
}

// replacementResponse hands the current turn to the participant with the
// lowest balance. The announcement itself goes out through the notifier.
func (h *Handler) replacementResponse(ctx context.Context, locale string) *discordgo.InteractionResponseData {
	turn, err := h.turns.RequestReplacement(ctx)
	if err != nil {
		return ephemeral(pkgdiscord.DomainErrorMessage(h.t, locale, err))
	}
	return ephemeral(h.t.T(locale, "turn.replacement", map[string]any{
		"Name":     turn.ParticipantName,
		"Original": turn.Original.Name,
	}))
}

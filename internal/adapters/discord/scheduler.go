package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"dogwalk/internal/domain"
	"dogwalk/internal/ports/input"
)

// RunReminders reminds the channel whose turn it is every interval until ctx
// is done.
func (n *Notifier) RunReminders(ctx context.Context, turns input.TurnUseCase, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := n.remind(ctx, turns); err != nil {
				log.Printf("⚠️ Discord: reminder not sent: %v", err)
			}
		}
	}
}

func (n *Notifier) remind(ctx context.Context, turns input.TurnUseCase) error {
	turn, err := turns.Current(ctx)
	if errors.Is(err, domain.ErrTurnNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if turn.Status == domain.TurnVerifying {
		return nil
	}
	_, err = n.sender.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Content: "🐶 " + n.t.T(n.locale, "turn.reminder", nil) + " " +
			n.t.T(n.locale, "turn.current", map[string]any{
				"Name":  turn.ParticipantName,
				"Since": turn.UpdatedAt.In(n.loc).Format("02/01/2006 15:04"),
			}),
	})
	return err
}

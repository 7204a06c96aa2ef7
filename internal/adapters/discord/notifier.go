package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/output"
	pkgdiscord "dogwalk/pkg/discord"
)

// messageSender is the part of *discordgo.Session the notifier uses.
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts turn changes to a channel.
type Notifier struct {
	sender    messageSender
	channelID string
	t         output.T
	locale    string
	loc       *time.Location

	last *entities.TurnState
}

func NewNotifier(sender messageSender, channelID string, t output.T, locale string, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{sender: sender, channelID: channelID, t: t, locale: locale, loc: loc}
}

// Run announces every turn received on events until ctx is done or events
// is closed. Send failures are logged and skipped.
func (n *Notifier) Run(ctx context.Context, events <-chan entities.TurnState) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case turn, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.Announce(turn); err != nil {
				log.Printf("⚠️ Discord: turn v%d not announced: %v", turn.Version, err)
			}
		}
	}
}

// Announce posts turn unless it is older than, or the same as, the last one
// announced.
func (n *Notifier) Announce(turn entities.TurnState) error {
	if n.last != nil && turn.Version <= n.last.Version {
		return nil
	}
	key := pkgdiscord.TurnMessageKey(n.last, turn)
	_, err := n.sender.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{pkgdiscord.BuildTurnEmbed(n.t, n.locale, n.loc, key, turn)},
	})
	if err != nil {
		return err
	}
	t := turn.Clone()
	n.last = &t
	return nil
}

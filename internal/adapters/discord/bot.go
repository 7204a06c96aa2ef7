package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

type BotConfig struct {
	Token            string
	ChannelID        string
	Locale           string
	Location         *time.Location
	ReminderInterval time.Duration
}

// Bot is the Discord adapter: slash commands plus turn announcements.
type Bot struct {
	session  *discordgo.Session
	cfg      BotConfig
	turns    input.TurnUseCase
	handler  *Handler
	notifier *Notifier
}

// NewBot creates a Bot. Nothing connects until Run.
func NewBot(cfg BotConfig, turns input.TurnUseCase, t output.T) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create Discord session: %w", err)
	}
	bot := &Bot{
		session:  s,
		cfg:      cfg,
		turns:    turns,
		handler:  NewHandler(turns, t, cfg.Locale, cfg.Location),
		notifier: NewNotifier(s, cfg.ChannelID, t, cfg.Locale, cfg.Location),
	}
	s.AddHandler(bot.handleInteraction)
	return bot, nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	switch i.ApplicationCommandData().Name {
	case cmdTurn:
		b.handler.HandleTurnCommand(s, i)
	case cmdReplacement:
		b.handler.HandleReplacementCommand(s, i)
	}
}

// Run opens the session, registers the commands and announces turn changes
// until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open Discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Printf("⚠️ Discord: registering command %s failed: %v", cmd.Name, err)
		}
	}
	log.Println("🤖 Discord bot online.")

	events, cancel := b.turns.Subscribe()
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.notifier.Run(ctx, events) })
	if b.cfg.ReminderInterval > 0 {
		g.Go(func() error { return b.notifier.RunReminders(ctx, b.turns, b.cfg.ReminderInterval) })
	}
	return g.Wait()
}

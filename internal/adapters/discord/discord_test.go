package discord

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"dogwalk/internal/domain"
	"dogwalk/internal/domain/entities"
)

type fakeT struct{}

func (fakeT) T(locale, key string, data map[string]any) string {
	out := locale + ":" + key
	if name, ok := data["Name"]; ok {
		out += " " + name.(string)
	}
	return out
}

type fakeSender struct {
	sent []*discordgo.MessageSend
	err  error
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, data)
	return &discordgo.Message{ChannelID: channelID}, nil
}

type fakeTurns struct {
	turn *entities.TurnState
	err  error
}

func (f *fakeTurns) Current(context.Context) (*entities.TurnState, error) { return f.turn, f.err }

func (f *fakeTurns) RequestReplacement(context.Context) (*entities.TurnState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.turn, nil
}

func (f *fakeTurns) Subscribe() (<-chan entities.TurnState, func()) {
	ch := make(chan entities.TurnState)
	return ch, func() {}
}

func TestNotifierAnnouncesNewTurnsOnly(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "123", fakeT{}, "es", nil)

	events := make(chan entities.TurnState, 3)
	events <- entities.TurnState{ParticipantID: "a", ParticipantName: "Ana", Version: 1}
	events <- entities.TurnState{ParticipantID: "a", ParticipantName: "Ana", Version: 1}
	events <- entities.TurnState{ParticipantID: "b", ParticipantName: "Bea", Version: 2}
	close(events)

	if err := n.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(sender.sent))
	}
	if title := sender.sent[1].Embeds[0].Title; !strings.Contains(title, "es:turn.assigned Bea") {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestNotifierRetriesAfterSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("rate limited")}
	n := NewNotifier(sender, "123", fakeT{}, "es", nil)
	turn := entities.TurnState{ParticipantID: "a", ParticipantName: "Ana", Version: 1}

	if err := n.Announce(turn); err == nil {
		t.Fatal("expected send error")
	}
	sender.err = nil
	if err := n.Announce(turn); err != nil || len(sender.sent) != 1 {
		t.Fatalf("expected the turn to be announced on retry, got %v (%d sent)", err, len(sender.sent))
	}
}

func TestReminderSkipsVerifyingTurn(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, "123", fakeT{}, "es", nil)
	turns := &fakeTurns{turn: &entities.TurnState{ParticipantName: "Ana", Status: domain.TurnVerifying}}

	if err := n.remind(context.Background(), turns); err != nil || len(sender.sent) != 0 {
		t.Fatalf("expected no reminder while verifying, got %v (%d sent)", err, len(sender.sent))
	}
	turns.turn.Status = domain.TurnWaiting
	if err := n.remind(context.Background(), turns); err != nil || len(sender.sent) != 1 {
		t.Fatalf("expected one reminder, got %v (%d sent)", err, len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Content, "es:turn.reminder") {
		t.Fatalf("unexpected reminder %q", sender.sent[0].Content)
	}

	turns.err = domain.ErrTurnNotFound
	if err := n.remind(context.Background(), turns); err != nil {
		t.Fatalf("no turn must not be an error, got %v", err)
	}
}

func TestTurnCommandResponses(t *testing.T) {
	h := NewHandler(&fakeTurns{err: domain.ErrTurnNotFound}, fakeT{}, "es", nil)
	if data := h.turnResponse(context.Background(), "en"); data.Content != "en:turn.none" || data.Flags != discordgo.MessageFlagsEphemeral {
		t.Fatalf("unexpected response %+v", data)
	}

	h = NewHandler(&fakeTurns{turn: &entities.TurnState{ParticipantName: "Ana"}}, fakeT{}, "es", nil)
	data := h.turnResponse(context.Background(), h.localeOf(""))
	if len(data.Embeds) != 1 || !strings.Contains(data.Embeds[0].Title, "es:turn.assigned Ana") {
		t.Fatalf("unexpected response %+v", data)
	}
}

func TestReplacementCommandResponses(t *testing.T) {
	h := NewHandler(&fakeTurns{err: domain.ErrNoCandidate}, fakeT{}, "es", nil)
	if data := h.replacementResponse(context.Background(), "es"); data.Content != "es:error.no_candidate" {
		t.Fatalf("unexpected response %q", data.Content)
	}

	standIn := &entities.TurnState{ParticipantName: "Bea", Original: &entities.ParticipantRef{Name: "Ana"}}
	h = NewHandler(&fakeTurns{turn: standIn}, fakeT{}, "es", nil)
	if data := h.replacementResponse(context.Background(), "es"); data.Content != "es:turn.replacement Bea" {
		t.Fatalf("unexpected response %q", data.Content)
	}
}

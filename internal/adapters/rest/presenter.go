package rest

import (
	"time"

	"dogwalk/internal/domain/entities"
	"dogwalk/internal/ports/input"
)

type siblingDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

type turnDTO struct {
	SiblingID           string    `json:"siblingId"`
	SiblingName         string    `json:"siblingName"`
	OriginalSiblingID   string    `json:"originalSiblingId,omitempty"`
	OriginalSiblingName string    `json:"originalSiblingName,omitempty"`
	IsReplacement       bool      `json:"isReplacement"`
	Status              string    `json:"status"`
	LastWalker          string    `json:"lastWalker,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
	Version             int64     `json:"version"`
}

type walkDTO struct {
	ID             string     `json:"id"`
	SiblingID      string     `json:"siblingId"`
	SiblingName    string     `json:"siblingName"`
	PhotoURL       string     `json:"photoUrl"`
	Timestamp      time.Time  `json:"timestamp"`
	Verdict        string     `json:"verdict"`
	Confidence     float64    `json:"confidence"`
	ManualOverride bool       `json:"manualOverride"`
	Rejections     []string   `json:"rejections"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
}

type currentTurnDTO struct {
	Turn                turnDTO  `json:"turn"`
	PendingVerification *walkDTO `json:"pendingVerification"`
}

type voteDTO struct {
	Votes    int     `json:"votes"`
	Quorum   int     `json:"quorum"`
	Rejected bool    `json:"rejected"`
	Reverted bool    `json:"reverted"`
	Message  string  `json:"message"`
	Walk     walkDTO `json:"walk"`
}

func toSibling(p entities.Participant) siblingDTO {
	return siblingDTO{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		PhotoURL:  p.PhotoURL,
		Balance:   p.Balance,
		CreatedAt: p.CreatedAt,
	}
}

func toSiblings(ps []entities.Participant) []siblingDTO {
	out := make([]siblingDTO, len(ps))
	for i := range ps {
		out[i] = toSibling(ps[i])
	}
	return out
}

func toTurn(t entities.TurnState) turnDTO {
	dto := turnDTO{
		SiblingID:     t.ParticipantID,
		SiblingName:   t.ParticipantName,
		IsReplacement: t.IsReplacement(),
		Status:        string(t.Status),
		LastWalker:    t.LastWalker,
		UpdatedAt:     t.UpdatedAt,
		Version:       t.Version,
	}
	if t.Original != nil {
		dto.OriginalSiblingID = t.Original.ID
		dto.OriginalSiblingName = t.Original.Name
	}
	return dto
}

func toWalk(w entities.WalkEntry) walkDTO {
	dto := walkDTO{
		ID:             w.ID,
		SiblingID:      w.ParticipantID,
		SiblingName:    w.ParticipantName,
		PhotoURL:       w.PhotoURL,
		Timestamp:      w.CreatedAt,
		Verdict:        string(w.Verdict),
		Confidence:     w.Confidence,
		ManualOverride: w.ManualOverride,
		Rejections:     w.Rejections,
	}
	if dto.Rejections == nil {
		dto.Rejections = []string{}
	}
	if !w.VerifiedAt.IsZero() {
		v := w.VerifiedAt
		dto.VerifiedAt = &v
	}
	return dto
}

func toWalks(ws []entities.WalkEntry) []walkDTO {
	out := make([]walkDTO, len(ws))
	for i := range ws {
		out[i] = toWalk(ws[i])
	}
	return out
}

func toVote(r *input.VoteResult, message string) voteDTO {
	return voteDTO{
		Votes:    r.Votes,
		Quorum:   r.Quorum,
		Rejected: r.Rejected,
		Reverted: r.Reverted,
		Message:  message,
		Walk:     toWalk(r.Walk),
	}
}

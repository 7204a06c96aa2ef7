package rest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dogwalk/internal/domain"
	"dogwalk/internal/ports/input"
	"dogwalk/internal/ports/output"
)

// MaxPhotoBytes bounds an uploaded walk photo.
const MaxPhotoBytes = 10 << 20

type Handler struct {
	Participants input.ParticipantUseCase
	Turns        input.TurnUseCase
	Walks        input.WalkUseCase
	T            output.T
}

type siblingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl"`
}

func (h *Handler) ListSiblings(c *gin.Context) {
	ps, err := h.Participants.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSiblings(ps))
}

func (h *Handler) AddSibling(c *gin.Context) {
	var req siblingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalid(err))
		return
	}
	p, err := h.Participants.Add(c.Request.Context(), req.Name, req.Email, req.PhotoURL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSibling(*p))
}

// SignIn registers the authenticated user under their auth uid the first
// time they show up, and returns the stored record afterwards.
func (h *Handler) SignIn(c *gin.Context) {
	var req siblingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalid(err))
		return
	}
	p, err := h.Participants.SignIn(c.Request.Context(), c.Param("id"), req.Name, req.Email, req.PhotoURL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSibling(*p))
}

func (h *Handler) AdjustBalance(c *gin.Context) {
	var req struct {
		Delta *int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalid(err))
		return
	}
	p, err := h.Participants.AdjustBalance(c.Request.Context(), c.Param("id"), *req.Delta)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSibling(*p))
}

func (h *Handler) CurrentTurn(c *gin.Context) {
	ctx := c.Request.Context()
	turn, err := h.Turns.Current(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := currentTurnDTO{Turn: toTurn(*turn)}
	pending, err := h.Walks.Pending(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if pending != nil {
		w := toWalk(*pending)
		out.PendingVerification = &w
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) RequestReplacement(c *gin.Context) {
	turn, err := h.Turns.RequestReplacement(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTurn(*turn))
}

// TurnEvents streams every committed turn as a "turn" server-sent event,
// starting with the current one.
func (h *Handler) TurnEvents(c *gin.Context) {
	events, cancel := h.Turns.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	if turn, err := h.Turns.Current(ctx); err == nil {
		c.SSEvent("turn", toTurn(*turn))
	}
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case turn, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent("turn", toTurn(turn))
			c.Writer.Flush()
		}
	}
}

func (h *Handler) SubmitWalk(c *gin.Context) {
	sub := input.Submission{ParticipantID: c.PostForm("siblingId")}
	if raw := c.PostForm("manualOverride"); raw != "" {
		override, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondError(c, invalid(fmt.Errorf("manualOverride: %w", err)))
			return
		}
		sub.ManualOverride = override
	}

	file, err := c.FormFile("photo")
	if err != nil {
		h.respondError(c, invalid(fmt.Errorf("photo: %w", err)))
		return
	}
	if file.Size > MaxPhotoBytes {
		h.respondError(c, invalid(fmt.Errorf("photo is larger than %d bytes", MaxPhotoBytes)))
		return
	}
	f, err := file.Open()
	if err != nil {
		h.respondError(c, invalid(fmt.Errorf("photo: %w", err)))
		return
	}
	defer f.Close()
	if sub.Image, err = io.ReadAll(io.LimitReader(f, MaxPhotoBytes)); err != nil {
		h.respondError(c, invalid(fmt.Errorf("photo: %w", err)))
		return
	}
	sub.Filename = file.Filename

	walk, err := h.Walks.Submit(c.Request.Context(), sub)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// Pending walks answer 200 too; the body's verdict tells them apart.
	c.JSON(http.StatusOK, toWalk(*walk))
}

func (h *Handler) ListWalks(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(c, invalid(fmt.Errorf("limit must be a non-negative integer")))
			return
		}
		limit = n
	}
	walks, err := h.Walks.List(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWalks(walks))
}

func (h *Handler) RejectWalk(c *gin.Context) {
	var req struct {
		VoterID string `json:"voterId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalid(err))
		return
	}
	res, err := h.Walks.Reject(c.Request.Context(), c.Param("id"), req.VoterID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	key := "vote.registered"
	if res.Rejected {
		key = "vote.rejected"
	}
	msg := h.T.T(locale(c), key, map[string]any{"Votes": res.Votes, "Quorum": res.Quorum})
	c.JSON(http.StatusOK, toVote(res, msg))
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

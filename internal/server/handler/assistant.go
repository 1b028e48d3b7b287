package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/garrettladley/healthmesh/internal/assistant"
	"github.com/garrettladley/healthmesh/internal/validator"
	"github.com/garrettladley/healthmesh/internal/xerrors"
	"github.com/garrettladley/healthmesh/internal/xhttp"
)

const maxPromptRunes = 3000

// Conversation is satisfied by *assistant.Conversation.
type Conversation interface {
	Messages() []assistant.Message
	Send(ctx context.Context, content string) (assistant.Message, error)
	Approve(ctx context.Context, id uuid.UUID) (assistant.Message, error)
}

type Assistant struct {
	conversation Conversation
}

func NewAssistant(conversation Conversation) *Assistant {
	return &Assistant{conversation: conversation}
}

type sendRequest struct {
	Content string `json:"content"`
}

func (r sendRequest) Validate() map[string]string {
	switch {
	case strings.TrimSpace(r.Content) == "":
		return map[string]string{"content": "must not be empty"}
	case utf8.RuneCountInString(r.Content) > maxPromptRunes:
		return map[string]string{"content": "must be at most 3000 characters"}
	default:
		return nil
	}
}

// HandleMessages handles GET /api/assistant.
func (h *Assistant) HandleMessages(w http.ResponseWriter, r *http.Request) {
	xhttp.WriteOK(w, h.conversation.Messages())
}

// HandleSend handles POST /api/assistant. Gateway failures still answer 200 with the error
// reply, matching what the conversation records.
func (h *Assistant) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendRequest
	if err := go_json.NewDecoder(r.Body).Decode(&req); err != nil {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage("invalid JSON body")))
		return
	}
	if verr := validator.Validate(req); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	reply, err := h.conversation.Send(ctx, req.Content)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.BadRequest(xerrors.WithMessage(err.Error())))
		return
	}

	xhttp.WriteOK(w, reply)
}

// HandleApprove handles POST /api/assistant/{id}/approve.
func (h *Assistant) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Validation(map[string]string{"id": "must be a UUID"}))
		return
	}

	msg, err := h.conversation.Approve(ctx, id)
	switch {
	case err == nil:
		xhttp.WriteOK(w, msg)
	case errors.Is(err, assistant.ErrUnknownMessage):
		xerrors.WriteError(ctx, w, xerrors.NotFound(xerrors.WithMessage("message not found")))
	case errors.Is(err, assistant.ErrAlreadyPosted), errors.Is(err, assistant.ErrPostInFlight), errors.Is(err, assistant.ErrNoDraft):
		xerrors.WriteError(ctx, w, xerrors.Conflict(xerrors.WithMessage(err.Error())))
	default:
		xerrors.WriteError(ctx, w, xerrors.BadGateway(xerrors.WithMessage(msg.Error), xerrors.WithCause(err)))
	}
}

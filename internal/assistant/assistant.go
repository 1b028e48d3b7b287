// Package assistant keeps a LinkedIn drafting conversation: prompts go to the gateway, replies
// come back as drafts that can be approved for posting.
package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/garrettladley/healthmesh/internal/envelope"
	"github.com/garrettladley/healthmesh/internal/xslog"
)

const (
	ReplyError       = "Sorry, I encountered an error processing your request."
	postFailedPrefix = "Failed to post: "
)

var (
	ErrEmptyContent   = errors.New("content is empty")
	ErrUnknownMessage = errors.New("unknown message")
	ErrNoDraft        = errors.New("message has no draft")
	ErrAlreadyPosted  = errors.New("message already posted")
	ErrPostInFlight   = errors.New("message is being posted")
)

// Poster publishes content. mesh.LinkedInService satisfies it.
type Poster interface {
	Post(ctx context.Context, content string) ([]byte, error)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID           uuid.UUID `json:"id"`
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	Draft        string    `json:"draft,omitempty"`
	Posting      bool      `json:"posting"`
	Posted       bool      `json:"posted"`
	PostResponse string    `json:"post_response,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Conversation struct {
	poster Poster
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	messages []Message
}

type Option func(*Conversation)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Conversation) { c.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

func New(poster Poster, opts ...Option) *Conversation {
	c := &Conversation{
		poster: poster,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages returns a copy of the conversation in order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Find(id uuid.UUID) (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.messages[i], true
	}
	return Message{}, false
}

// Send records the prompt and the gateway's reply. A failed call still yields a reply, carrying
// the error; the returned error is only for invalid input.
func (c *Conversation) Send(ctx context.Context, content string) (Message, error) {
	if len(bytes.TrimSpace([]byte(content))) == 0 {
		return Message{}, ErrEmptyContent
	}

	c.append(Message{Role: RoleUser, Content: content})

	raw, err := c.poster.Post(ctx, content)
	if err != nil {
		c.logger.WarnContext(ctx, "assistant request failed", xslog.Error(err))
		return c.append(Message{
			Role:    RoleAssistant,
			Content: ReplyError,
			Error:   err.Error(),
		}), nil
	}

	pretty := prettyJSON(raw)
	reply := c.append(Message{
		Role:    RoleAssistant,
		Content: pretty,
		Draft:   draftOf(raw, pretty),
	})
	c.logger.DebugContext(ctx, "assistant replied", xslog.MessageID(reply.ID.String()), xslog.Bytes(len(raw)))
	return reply, nil
}

// Approve posts the draft of message id. Only one approval of a message can be in flight;
// posting failures are recorded on the message and returned.
func (c *Conversation) Approve(ctx context.Context, id uuid.UUID) (Message, error) {
	msg, err := c.claim(id)
	if err != nil {
		return msg, err
	}

	raw, err := c.poster.Post(ctx, msg.Draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	m := &c.messages[c.index(id)]
	m.Posting = false
	if err != nil {
		c.logger.WarnContext(ctx, "posting draft failed", xslog.MessageID(id.String()), xslog.Error(err))
		m.Error = postFailedPrefix + err.Error()
		return *m, fmt.Errorf("posting draft: %w", err)
	}
	m.Posted = true
	m.PostResponse = prettyJSON(raw)
	m.Error = ""
	c.logger.InfoContext(ctx, "draft posted", xslog.MessageID(id.String()))
	return *m, nil
}

// claim marks message id as posting if it has an unposted draft and no approval in flight.
func (c *Conversation) claim(id uuid.UUID) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}
	m := &c.messages[i]
	switch {
	case m.Posted:
		return *m, ErrAlreadyPosted
	case m.Posting:
		return *m, ErrPostInFlight
	case m.Draft == "":
		return *m, ErrNoDraft
	}
	m.Posting = true
	return *m, nil
}

func (c *Conversation) append(m Message) Message {
	m.ID = uuid.New()
	m.CreatedAt = c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, m)
	return m
}

// index requires c.mu.
func (c *Conversation) index(id uuid.UUID) int {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func prettyJSON(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := go_json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

var draftPaths = []string{"draft", "result.draft", "post", "result.post", "content", "result.content"}

// draftOf prefers an explicit draft field and falls back to the whole reply.
func draftOf(raw []byte, pretty string) string {
	if obj, ok := envelope.Object(raw).Get(); ok {
		for _, p := range draftPaths {
			if s, ok := envelope.String(obj.Get(p)).Get(); ok {
				return s
			}
		}
	}
	switch r := gjson.ParseBytes(raw); r.Type {
	case gjson.String:
		return r.String()
	case gjson.Null:
		return ""
	default:
		return pretty
	}
}

package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu    sync.Mutex
	posts []string
	reply func(content string) ([]byte, error)
}

func (p *fakePoster) Post(_ context.Context, content string) ([]byte, error) {
	p.mu.Lock()
	p.posts = append(p.posts, content)
	p.mu.Unlock()
	return p.reply(content)
}

func newConversation(p Poster) *Conversation {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return New(p,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return now }),
	)
}

func TestSend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reply       string
		wantContent string
		wantDraft   string
	}{
		{
			name:        "explicit draft",
			reply:       `{"draft":"Ran 10k today"}`,
			wantContent: "{\n  \"draft\": \"Ran 10k today\"\n}",
			wantDraft:   "Ran 10k today",
		},
		{
			name:        "nested result content",
			reply:       `{"result":{"content":"Hello LinkedIn"}}`,
			wantContent: "{\n  \"result\": {\n    \"content\": \"Hello LinkedIn\"\n  }\n}",
			wantDraft:   "Hello LinkedIn",
		},
		{
			name:        "no draft field",
			reply:       `{"status":"ok"}`,
			wantContent: "{\n  \"status\": \"ok\"\n}",
			wantDraft:   "{\n  \"status\": \"ok\"\n}",
		},
		{
			name:        "bare string",
			reply:       `"just text"`,
			wantContent: `"just text"`,
			wantDraft:   "just text",
		},
		{
			name:        "no content",
			reply:       ``,
			wantContent: "null",
			wantDraft:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &fakePoster{reply: func(string) ([]byte, error) { return []byte(tt.reply), nil }}
			c := newConversation(p)

			reply, err := c.Send(t.Context(), "write about my run")
			require.NoError(t, err)
			require.Equal(t, RoleAssistant, reply.Role)
			require.Equal(t, tt.wantContent, reply.Content)
			require.Equal(t, tt.wantDraft, reply.Draft)
			require.Empty(t, reply.Error)

			msgs := c.Messages()
			require.Len(t, msgs, 2)
			require.Equal(t, RoleUser, msgs[0].Role)
			require.Equal(t, "write about my run", msgs[0].Content)
			require.NotEqual(t, msgs[0].ID, msgs[1].ID)
			require.Equal(t, []string{"write about my run"}, p.posts)
		})
	}
}

func TestSendFailure(t *testing.T) {
	t.Parallel()

	p := &fakePoster{reply: func(string) ([]byte, error) { return nil, errors.New("HTTP error! Status: 500") }}
	c := newConversation(p)

	reply, err := c.Send(t.Context(), "hello")
	require.NoError(t, err)
	require.Equal(t, ReplyError, reply.Content)
	require.Equal(t, "HTTP error! Status: 500", reply.Error)
	require.Empty(t, reply.Draft)

	_, err = c.Approve(t.Context(), reply.ID)
	require.ErrorIs(t, err, ErrNoDraft)
}

func TestSendEmpty(t *testing.T) {
	t.Parallel()

	c := newConversation(&fakePoster{})
	_, err := c.Send(t.Context(), "  \n")
	require.ErrorIs(t, err, ErrEmptyContent)
	require.Empty(t, c.Messages())
}

func TestApprove(t *testing.T) {
	t.Parallel()

	p := &fakePoster{reply: func(content string) ([]byte, error) {
		if content == "Ran 10k today" {
			return []byte(`{"id":"urn:li:share:1"}`), nil
		}
		return []byte(`{"draft":"Ran 10k today"}`), nil
	}}
	c := newConversation(p)

	reply, err := c.Send(t.Context(), "prompt")
	require.NoError(t, err)

	posted, err := c.Approve(t.Context(), reply.ID)
	require.NoError(t, err)
	require.True(t, posted.Posted)
	require.Equal(t, "{\n  \"id\": \"urn:li:share:1\"\n}", posted.PostResponse)

	_, err = c.Approve(t.Context(), reply.ID)
	require.ErrorIs(t, err, ErrAlreadyPosted)

	got, ok := c.Find(reply.ID)
	require.True(t, ok)
	require.True(t, got.Posted)
	require.Equal(t, []string{"prompt", "Ran 10k today"}, p.posts)
}

func TestApproveFailure(t *testing.T) {
	t.Parallel()

	var calls int
	p := &fakePoster{reply: func(string) ([]byte, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("HTTP error! Status: 502")
		}
		return []byte(`{"draft":"post me"}`), nil
	}}
	c := newConversation(p)

	reply, err := c.Send(t.Context(), "prompt")
	require.NoError(t, err)

	msg, err := c.Approve(t.Context(), reply.ID)
	require.Error(t, err)
	require.False(t, msg.Posted)
	require.Equal(t, "Failed to post: HTTP error! Status: 502", msg.Error)
}

func TestApproveUnknown(t *testing.T) {
	t.Parallel()

	_, err := newConversation(&fakePoster{}).Approve(t.Context(), uuid.New())
	require.ErrorIs(t, err, ErrUnknownMessage)
}

func TestApproveConcurrent(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	p := &fakePoster{reply: func(content string) ([]byte, error) {
		if content == "prompt" {
			return []byte(`{"draft":"Ran 10k today"}`), nil
		}
		<-release
		return []byte(`{"id":"urn:li:share:1"}`), nil
	}}
	c := newConversation(p)

	reply, err := c.Send(t.Context(), "prompt")
	require.NoError(t, err)

	const approvals = 5
	var (
		wg      sync.WaitGroup
		errs    = make(chan error, approvals)
		started = make(chan struct{})
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		_, err := c.Approve(t.Context(), reply.ID)
		errs <- err
	}()
	<-started

	require.Eventually(t, func() bool {
		msg, _ := c.Find(reply.ID)
		return msg.Posting
	}, time.Second, time.Millisecond)

	for range approvals - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Approve(t.Context(), reply.ID)
			errs <- err
		}()
	}

	var rejected int
	for range approvals - 1 {
		err := <-errs
		require.ErrorIs(t, err, ErrPostInFlight)
		rejected++
	}
	close(release)
	wg.Wait()
	close(errs)

	require.NoError(t, <-errs)
	require.Equal(t, approvals-1, rejected)

	p.mu.Lock()
	require.Equal(t, []string{"prompt", "Ran 10k today"}, p.posts)
	p.mu.Unlock()

	msg, ok := c.Find(reply.ID)
	require.True(t, ok)
	require.True(t, msg.Posted)
	require.False(t, msg.Posting)
}

func TestApproveRetryAfterFailure(t *testing.T) {
	t.Parallel()

	var calls int
	p := &fakePoster{reply: func(string) ([]byte, error) {
		calls++
		switch calls {
		case 1:
			return []byte(`{"draft":"post me"}`), nil
		case 2:
			return nil, errors.New("HTTP error! Status: 502")
		default:
			return []byte(`{"id":"urn:li:share:2"}`), nil
		}
	}}
	c := newConversation(p)

	reply, err := c.Send(t.Context(), "prompt")
	require.NoError(t, err)

	msg, err := c.Approve(t.Context(), reply.ID)
	require.Error(t, err)
	require.False(t, msg.Posting)

	msg, err = c.Approve(t.Context(), reply.ID)
	require.NoError(t, err)
	require.True(t, msg.Posted)
	require.Empty(t, msg.Error)
}

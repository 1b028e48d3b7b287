// Package credential stores the gateway access key in the local database and hands it to the
// mesh client as an oauth2.TokenSource.
package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

var ErrNoCredential = errors.New("no credential stored; run `healthmesh login`")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, "SELECT token FROM credentials WHERE id = 1").Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("loading credential: %w", err)
	}
	return token, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("credential is empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (id, token) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP
	`, token)
	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Delete is a no-op when nothing is stored.
func (s *Store) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = 1"); err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}

func (s *Store) HasToken(ctx context.Context) (bool, error) {
	_, err := s.Get(ctx)
	switch {
	case errors.Is(err, ErrNoCredential):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

var _ oauth2.TokenSource = (*tokenSource)(nil)

// TokenSource reads the stored credential on first use and caches it.
func (s *Store) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, store: s}
}

type tokenSource struct {
	ctx   context.Context
	store *Store

	mu    sync.Mutex
	token *oauth2.Token
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != nil {
		return ts.token, nil
	}

	v, err := ts.store.Get(ts.ctx)
	if err != nil {
		return nil, err
	}
	ts.token = &oauth2.Token{AccessToken: v}
	return ts.token, nil
}

// Resolve prefers an explicit token (HP_TOKEN) over the stored credential. A nil store with no
// override yields an empty token; the gateway then answers 401.
func Resolve(ctx context.Context, store *Store, override string) oauth2.TokenSource {
	if override = strings.TrimSpace(override); override != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: override})
	}
	if store == nil {
		return oauth2.StaticTokenSource(&oauth2.Token{})
	}
	return store.TokenSource(ctx)
}

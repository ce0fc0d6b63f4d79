package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/crypto/bcrypt"
)

var _ port.Authenticator = (*AuthGate)(nil)

// dummyHash is compared against for unknown usernames so both failure
// paths cost one bcrypt check.
var dummyHash = mustHash("storefront-dummy-password")

func mustHash(s string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}

// AuthGate checks submitted credentials against the configured
// allow-list. It never reveals whether the username or the password
// was wrong.
type AuthGate struct {
	creds map[string]string
}

func NewAuthGate(allowList []domain.Credential) AuthGate {
	creds := make(map[string]string, len(allowList))
	for _, c := range allowList {
		creds[c.Username] = c.PasswordHash
	}
	return AuthGate{creds}
}

func (g AuthGate) Authenticate(
	ctx context.Context, username, password string,
) (domain.Session, error) {
	const op = "AuthGate.Authenticate"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	hash, known := g.creds[username]
	if !known {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return domain.Session{}, fmt.Errorf(
			"%s: %w", op, domain.ErrInvalidCredentials,
		)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return domain.Session{}, fmt.Errorf(
			"%s: %w", op, domain.ErrInvalidCredentials,
		)
	}

	return domain.Session{Username: username}, nil
}

var _ port.Sessions = (*SessionProvider)(nil)

// SessionProvider is the in-process session registry. Sessions live
// until explicit logout or process restart; there is no expiry.
type SessionProvider struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionProvider() *SessionProvider {
	return &SessionProvider{sessions: make(map[string]domain.Session)}
}

func (p *SessionProvider) Create(username string) (string, domain.Session) {
	token := newToken()
	s := domain.Session{Username: username}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[token] = s
	return token, s
}

func (p *SessionProvider) Get(token string) (domain.Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[token]
	return s, ok
}

func (p *SessionProvider) Destroy(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, token)
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // broken system entropy
	}
	return hex.EncodeToString(b)
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"renusboutique/internal/domain"
	applog "renusboutique/internal/log"
)

var (
	ErrInvalidCode   = errors.New("invalid verification code")
	ErrNoPendingCode = errors.New("no verification in progress")
)

// SessionStore is the persistence port for the auth session slot.
// Load returns nil bytes when no session is stored.
type SessionStore interface {
	Load() ([]byte, error)
	Save([]byte) error
	Clear() error
}

// AuthState names the three positions of the machine.
type AuthState string

const (
	StateAnonymous     AuthState = "anonymous"
	StateCodeRequested AuthState = "code-requested"
	StateAuthenticated AuthState = "authenticated"
)

// AuthService walks a visitor through email → one-time code → session.
// It is driven by a single storefront session; the pending-ticket slot is
// deliberately unguarded, and overlapping RequestCode calls resolve
// last-write-wins.
type AuthService struct {
	Store SessionStore

	// Swappable for deterministic tests.
	GenCode func() string
	Delay   func(time.Duration)
	Now     func() time.Time

	// Simulated network latency for the send and verify steps.
	SendWait   time.Duration
	VerifyWait time.Duration

	// Notify is the observable code-delivery channel. Stands in for a real
	// mail integration.
	Notify func(email, code string)

	user   *domain.User
	ticket *domain.Ticket
}

func NewAuthService(store SessionStore) *AuthService {
	return &AuthService{
		Store:   store,
		GenCode: randomCode,
		Delay:   time.Sleep,
		Now:     time.Now,
		Notify: func(email, code string) {
			applog.Audit(nil, "auth.code.issued", map[string]any{"email": email, "code": code})
		},
	}
}

func randomCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

func (s *AuthService) State() AuthState {
	switch {
	case s.user != nil:
		return StateAuthenticated
	case s.ticket != nil:
		return StateCodeRequested
	default:
		return StateAnonymous
	}
}

func (s *AuthService) CurrentUser() *domain.User { return s.user }
func (s *AuthService) IsAuthenticated() bool     { return s.user != nil }

func (s *AuthService) VerificationSent() bool {
	return s.ticket != nil && s.ticket.Sent
}

func (s *AuthService) VerificationEmail() string {
	if s.ticket == nil {
		return ""
	}
	return s.ticket.Email
}

// RequestCode issues a fresh one-time code for email and parks it as the
// pending ticket. Email format is the caller's concern. A ticket already in
// flight is overwritten.
func (s *AuthService) RequestCode(email string) (string, error) {
	s.Delay(s.SendWait)

	code := s.GenCode()
	s.ticket = &domain.Ticket{Email: email, Code: code, Sent: true}
	s.Notify(email, code)
	return "Verification code sent to your email", nil
}

// VerifyCode checks the candidate against the pending ticket. A mismatch
// keeps the ticket so the caller may retry; a match establishes and persists
// the session.
func (s *AuthService) VerifyCode(candidate string) (*domain.User, error) {
	if s.ticket == nil {
		return nil, ErrNoPendingCode
	}
	s.Delay(s.VerifyWait)

	if candidate != s.ticket.Code {
		return nil, ErrInvalidCode
	}

	email := s.ticket.Email
	u := &domain.User{
		Email:    email,
		Name:     localPart(email),
		JoinedAt: s.Now(),
	}
	if b, err := json.Marshal(u); err == nil {
		if serr := s.Store.Save(b); serr != nil {
			applog.Error(nil, "auth.session.persist", serr, map[string]any{"email": email})
		}
	}
	s.user = u
	s.ticket = nil
	return u, nil
}

// Logout clears the session and the persisted slot. No-op unless
// authenticated.
func (s *AuthService) Logout() {
	if s.user == nil {
		return
	}
	s.user = nil
	s.ticket = nil
	if err := s.Store.Clear(); err != nil {
		applog.Error(nil, "auth.session.clear", err, nil)
	}
}

// ResetVerification abandons the pending ticket so a different email can be
// entered.
func (s *AuthService) ResetVerification() {
	s.ticket = nil
}

// Rehydrate restores a persisted session at process start. A malformed slot
// is discarded and erased; the machine stays anonymous. Never fatal.
func (s *AuthService) Rehydrate() {
	b, err := s.Store.Load()
	if err != nil || b == nil {
		return
	}
	var u domain.User
	if jerr := json.Unmarshal(b, &u); jerr != nil || u.Email == "" {
		applog.Security(nil, "auth.session.corrupt", map[string]any{"discarded": true})
		_ = s.Store.Clear()
		return
	}
	s.user = &u
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

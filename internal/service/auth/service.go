package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DevGolamSever/mind-ease/internal/config"
	"github.com/DevGolamSever/mind-ease/internal/model/user"
	"github.com/DevGolamSever/mind-ease/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Service handles the account lifecycle: sign-up, sign-in, sign-out, and
// token verification. Tokens are JWTs; a live session record in the session
// store makes sign-out an actual revocation.
type Service struct {
	store    store.Store
	sessions *SessionStore
	cfg      config.AuthConfig
}

// NewService wires the auth service to its account store and session cache.
func NewService(st store.Store, sessions *SessionStore, cfg config.AuthConfig) *Service {
	return &Service{store: st, sessions: sessions, cfg: cfg}
}

// SignUp registers a new account. A duplicate email fails with ErrEmailTaken
// and leaves no state behind.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (user.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}

	log.Printf("[auth] account created for email=%s", email)
	return u, nil
}

// SignIn verifies credentials and opens a session bound to the account
// identity. Unknown emails and wrong passwords report the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, ok := s.store.FindUserByEmail(ctx, email)
	if !ok {
		return user.Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.Session{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return user.Session{}, err
	}

	session := user.Session{
		Token:  token,
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
	}
	s.sessions.Save(session)

	log.Printf("[auth] session opened for user=%s", u.ID)
	return session, nil
}

// SignOut revokes the session for a token. Unknown tokens are a no-op.
func (s *Service) SignOut(token string) {
	s.sessions.Delete(token)
}

// Verify checks a bearer token: the JWT must parse and the session record
// must still exist.
func (s *Service) Verify(token string) (user.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return user.Session{}, ErrSessionNotFound
	}

	session, ok := s.sessions.Get(token)
	if !ok {
		return user.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) issueToken(u user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

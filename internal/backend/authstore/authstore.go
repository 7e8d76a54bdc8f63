// Package authstore implements the Auth boundary on top of any document
// Store: credentials live in an "accounts" collection as bcrypt hashes and
// a JWT access token is minted on sign-in. The signed-in user is held
// in-process, one session per process.
package authstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wheeldeal/config"
	"wheeldeal/internal/backend"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/utils"
)

const Collection = "accounts"

var _ backend.Auth = (*Auth)(nil)

type Auth struct {
	store  backend.Store
	cfg    config.Config
	logger logger.Logger

	mu      sync.Mutex
	session *session
}

type session struct {
	userID string
	email  string
	token  string
}

func New(store backend.Store, cfg config.Config, logger logger.Logger) *Auth {
	return &Auth{store: store, cfg: cfg, logger: logger}
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (string, error) {
	acc, err := a.findAccount(ctx, email)
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.String("passwordHash")), []byte(password)) != nil {
		return "", errors.ErrInvalidCredentials
	}
	return a.openSession(acc.ID(), email)
}

func (a *Auth) SignUp(ctx context.Context, email, password string) (string, error) {
	if _, err := a.findAccount(ctx, email); err == nil {
		return "", errors.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.logger.Error("bcrypt failure on sign-up", "err", err)
		return "", errors.ErrAdapter(err)
	}

	id := uuid.NewString()
	_, err = a.store.Create(ctx, Collection, backend.Document{
		"id":           id,
		"email":        email,
		"passwordHash": string(hash),
		"createdAt":    time.Now().UTC(),
	})
	if err != nil {
		return "", errors.ErrAdapter(err)
	}
	return a.openSession(id, email)
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
	return nil
}

func (a *Auth) CurrentUser(ctx context.Context) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return "", false
	}
	return a.session.userID, true
}

// CurrentToken exposes the minted JWT for callers that attach it to
// outbound requests. Not part of the backend.Auth contract.
func (a *Auth) CurrentToken(ctx context.Context) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return "", false
	}
	return a.session.token, true
}

// Reauthenticate verifies the current credential without touching the
// session. Wrong passwords surface as invalid-credential auth errors.
func (a *Auth) Reauthenticate(ctx context.Context, email, currentPassword string) error {
	acc, err := a.findAccount(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.String("passwordHash")), []byte(currentPassword)) != nil {
		return errors.ErrInvalidCredentials
	}
	return nil
}

func (a *Auth) UpdatePassword(ctx context.Context, newPassword string) error {
	a.mu.Lock()
	sess := a.session
	a.mu.Unlock()
	if sess == nil {
		return errors.ErrNotAuthenticated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.ErrAdapter(err)
	}
	if err := a.store.Update(ctx, Collection, sess.userID, backend.Document{
		"passwordHash": string(hash),
	}); err != nil {
		return errors.ErrAdapter(err)
	}
	return nil
}

func (a *Auth) findAccount(ctx context.Context, email string) (backend.Document, error) {
	docs, err := a.store.Query(ctx, Collection, backend.Filters{"email": email})
	if err != nil {
		return nil, errors.ErrAdapter(err)
	}
	if len(docs) == 0 {
		return nil, errors.ErrInvalidCredentials
	}
	return docs[0], nil
}

func (a *Auth) openSession(userID, email string) (string, error) {
	token, err := utils.GenerateJWTToken(userID, email, a.cfg)
	if err != nil {
		a.logger.Error("token mint failed", "err", err)
		return "", errors.ErrAdapter(err)
	}
	a.mu.Lock()
	a.session = &session{userID: userID, email: email, token: token}
	a.mu.Unlock()
	return userID, nil
}

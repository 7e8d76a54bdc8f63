package session

import (
	"context"

	"wheeldeal/internal/session/model"
	"wheeldeal/pkg/state"
)

type SessionUsecase interface {
	// Login enters Authenticating, then SignedIn or Error. Concurrent
	// calls are not coalesced; the last completing call wins.
	Login(ctx context.Context, email, password string) error

	// SignUp has the same state shape but creates the account.
	SignUp(ctx context.Context, email, password string) error

	// Logout unconditionally returns to SignedOut.
	Logout(ctx context.Context) error

	// ChangePassword re-authenticates with the current credential before
	// applying the new one. ErrNotAuthenticated without a session,
	// ErrReauthenticationFailed on a wrong current password.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	Session() model.Session
	Watch(ctx context.Context) (<-chan model.Session, state.CancelFunc)
}

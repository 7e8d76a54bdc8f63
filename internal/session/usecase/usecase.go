package usecase

import (
	"context"

	"wheeldeal/internal/backend"
	"wheeldeal/internal/session/model"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/state"
	"wheeldeal/pkg/utils"
)

type SessionUsecase struct {
	auth   backend.Auth
	logger logger.Logger
	value  *state.Value[model.Session]
}

func NewSessionUsecase(auth backend.Auth, logger logger.Logger) *SessionUsecase {
	return &SessionUsecase{
		auth:   auth,
		logger: logger,
		value:  state.NewValue(model.Session{Status: model.StatusSignedOut}),
	}
}

func (uc *SessionUsecase) Session() model.Session {
	return uc.value.Get()
}

func (uc *SessionUsecase) Watch(ctx context.Context) (<-chan model.Session, state.CancelFunc) {
	return uc.value.Watch(ctx)
}

func (uc *SessionUsecase) Login(ctx context.Context, email, password string) error {
	return uc.authenticate(ctx, email, password, uc.auth.SignIn)
}

func (uc *SessionUsecase) SignUp(ctx context.Context, email, password string) error {
	return uc.authenticate(ctx, email, password, uc.auth.SignUp)
}

// authenticate runs one Login/SignUp attempt. The backend does not
// re-check email format or password length, so the form-level checks are
// reproduced here before the adapter is touched.
func (uc *SessionUsecase) authenticate(ctx context.Context, email, password string, call func(context.Context, string, string) (string, error)) error {
	if err := utils.ValidateEmail(email); err != nil {
		return err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	uc.value.Set(model.Session{Status: model.StatusAuthenticating, Email: email})

	userID, err := call(ctx, email, password)
	if err != nil {
		uc.logger.Warn("authentication failed", "email", email, "err", err)
		uc.value.Set(model.Session{Status: model.StatusError, Message: err.Error()})
		return err
	}

	uc.value.Set(model.Session{Status: model.StatusSignedIn, UserID: userID, Email: email})
	return nil
}

func (uc *SessionUsecase) Logout(ctx context.Context) error {
	if err := uc.auth.SignOut(ctx); err != nil {
		// Logout is unconditional: the local session is dropped even if
		// the adapter call failed.
		uc.logger.Warn("sign-out call failed", "err", err)
	}
	uc.value.Set(model.Session{Status: model.StatusSignedOut})
	return nil
}

func (uc *SessionUsecase) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	sess := uc.value.Get()
	if sess.Status != model.StatusSignedIn || sess.Email == "" {
		return errors.ErrNotAuthenticated
	}
	if err := utils.ValidatePassword(newPassword); err != nil {
		return err
	}

	if err := uc.auth.Reauthenticate(ctx, sess.Email, currentPassword); err != nil {
		return errors.ErrReauthenticationFailed
	}
	if err := uc.auth.UpdatePassword(ctx, newPassword); err != nil {
		uc.logger.Error("password update failed after reauthentication", "err", err)
		return err
	}
	return nil
}

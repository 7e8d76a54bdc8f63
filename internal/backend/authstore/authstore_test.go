package authstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeldeal/config"
	"wheeldeal/internal/backend/memory"
	"wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
	"wheeldeal/pkg/utils"
)

func testConfig() config.Config {
	return config.Config{JWT: config.JWT{Secret: "test-secret", ExpiredIn: 3600}}
}

func TestAuth_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	auth := New(memory.NewStore(), testConfig(), logger.Logger{})

	id, err := auth.SignUp(ctx, "user@test.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	current, ok := auth.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, id, current)

	require.NoError(t, auth.SignOut(ctx))
	_, ok = auth.CurrentUser(ctx)
	assert.False(t, ok)

	again, err := auth.SignIn(ctx, "user@test.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestAuth_SignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := New(memory.NewStore(), testConfig(), logger.Logger{})

	_, err := auth.SignUp(ctx, "user@test.com", "secret1")
	require.NoError(t, err)

	_, err = auth.SignUp(ctx, "user@test.com", "other66")
	assert.ErrorIs(t, err, errors.ErrAccountExists)
}

func TestAuth_SignInWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth := New(memory.NewStore(), testConfig(), logger.Logger{})

	_, err := auth.SignUp(ctx, "user@test.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx))

	_, err = auth.SignIn(ctx, "user@test.com", "wrong99")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, ok := auth.CurrentUser(ctx)
	assert.False(t, ok)
}

func TestAuth_TokenCarriesSubject(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	auth := New(memory.NewStore(), cfg, logger.Logger{})

	id, err := auth.SignUp(ctx, "user@test.com", "secret1")
	require.NoError(t, err)

	token, ok := auth.CurrentToken(ctx)
	require.True(t, ok)

	sub, err := utils.ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, id, sub)
}

func TestAuth_Reauthenticate(t *testing.T) {
	ctx := context.Background()
	auth := New(memory.NewStore(), testConfig(), logger.Logger{})

	_, err := auth.SignUp(ctx, "user@test.com", "secret1")
	require.NoError(t, err)

	assert.NoError(t, auth.Reauthenticate(ctx, "user@test.com", "secret1"))
	assert.ErrorIs(t, auth.Reauthenticate(ctx, "user@test.com", "wrong99"), errors.ErrInvalidCredentials)
}

func TestAuth_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	auth := New(memory.NewStore(), testConfig(), logger.Logger{})

	t.Run("requires a session", func(t *testing.T) {
		err := auth.UpdatePassword(ctx, "whatever")
		assert.ErrorIs(t, err, errors.ErrNotAuthenticated)
	})

	t.Run("replaces the stored credential", func(t *testing.T) {
		_, err := auth.SignUp(ctx, "user@test.com", "secret1")
		require.NoError(t, err)

		require.NoError(t, auth.UpdatePassword(ctx, "fresh77"))
		require.NoError(t, auth.SignOut(ctx))

		_, err = auth.SignIn(ctx, "user@test.com", "secret1")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

		_, err = auth.SignIn(ctx, "user@test.com", "fresh77")
		assert.NoError(t, err)
	})
}

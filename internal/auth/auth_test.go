package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/eatnow/internal/storage"
)

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	s := NewService(store)

	changes := make(chan bool, 4)
	s.StateChanges().Subscribe("test", func(v bool) bool {
		changes <- v
		return true
	})

	token, err := s.Ready(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, <-changes)

	require.ErrorIs(t, s.Login(ctx, ""), ErrEmptyID)

	require.NoError(t, s.Login(ctx, "42"))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, <-changes)

	// a fresh service sees the stored token
	s2 := NewService(store)
	token, err = s2.Ready(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", token)
	assert.True(t, NewGuard(s2).CanActivate())

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.False(t, <-changes)

	token, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestGuardMiddleware(t *testing.T) {
	s := NewService(storage.NewMemory())
	g := NewGuard(s)

	app := fiber.New()
	app.Get("/private", g.Middleware(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	res, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	require.NoError(t, s.Login(context.Background(), "1"))

	res, err = app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"github.com/kdudkov/eatnow/internal/callbacks"
	"github.com/kdudkov/eatnow/internal/storage"
)

const TokenKey = storage.TokenKey

var ErrEmptyID = errors.New("empty user id")

// Service tracks whether a session token is stored. The token is the user id.
type Service struct {
	store         storage.Storage
	authenticated atomic.Bool
	state         *callbacks.Callback[bool]
	logger        *slog.Logger
}

func NewService(store storage.Storage) *Service {
	return &Service{
		store:  store,
		state:  callbacks.New[bool](),
		logger: slog.Default().With("logger", "auth"),
	}
}

// Ready loads the stored token and returns it, empty when logged out.
func (s *Service) Ready(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", err
	}

	s.setState(token != "")

	return token, nil
}

func (s *Service) Token(ctx context.Context) (string, error) {
	var token string

	if _, err := s.store.Get(ctx, TokenKey, &token); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}

	return token, nil
}

func (s *Service) Login(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	if err := s.store.Set(ctx, TokenKey, id); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	s.logger.Info("logged in", slog.String("id", id))
	s.setState(true)

	return nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}

	s.logger.Info("logged out")
	s.setState(false)

	return nil
}

func (s *Service) IsAuthenticated() bool {
	return s.authenticated.Load()
}

// StateChanges notifies subscribers on every login and logout.
func (s *Service) StateChanges() *callbacks.Callback[bool] {
	return s.state
}

func (s *Service) setState(v bool) {
	s.authenticated.Store(v)
	s.state.Publish(v)
}

type Guard struct {
	auth *Service
}

func NewGuard(auth *Service) *Guard {
	return &Guard{auth: auth}
}

func (g *Guard) CanActivate() bool {
	return g.auth.IsAuthenticated()
}

func (g *Guard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.CanActivate() {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}

		return c.Next()
	}
}

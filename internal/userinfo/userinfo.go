// Package userinfo keeps the session user in sync with the server profile.
package userinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/kdudkov/eatnow/internal/cache"
	"github.com/kdudkov/eatnow/internal/client"
	"github.com/kdudkov/eatnow/internal/location"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/model"
	"github.com/kdudkov/eatnow/pkg/race"
)

// RequestTimeout is the fixed deadline of profile requests.
const RequestTimeout = 3000 * time.Millisecond

var ErrNoUser = errors.New("no user logged in")

type Service struct {
	api     *client.Client
	session *model.Session
	locator location.Locator
	toast   toast.Messenger
	avatars *cache.Cache[[]byte]
	logger  *slog.Logger

	timeout time.Duration
	bg      sync.WaitGroup
}

func New(api *client.Client, session *model.Session, locator location.Locator, messenger toast.Messenger, avatarTTL time.Duration) *Service {
	s := &Service{
		api:     api,
		session: session,
		locator: locator,
		toast:   messenger,
		logger:  slog.Default().With("logger", "userinfo"),
		timeout: RequestTimeout,
	}

	s.avatars = cache.NewWithTTL[[]byte](avatarTTL, s.loadAvatar)

	return s
}

func (s *Service) Session() *model.Session {
	return s.session
}

func (s *Service) User() model.User {
	return s.session.User()
}

func (s *Service) fetchProfile(ctx context.Context, id string) (*model.ProfileDTO, error) {
	p := new(model.ProfileDTO)

	if err := s.api.Request("user_profile", "/userProfile/"+url.PathEscape(id)).GetJSON(ctx, p); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}

	return p, nil
}

// GetLatestUserProfile refreshes the session user from the server. A response
// arriving after the deadline is still applied to the session user but does
// not change the result, and no second message is presented.
func (s *Service) GetLatestUserProfile(ctx context.Context) error {
	id := s.session.ID()
	if id == "" {
		return ErrNoUser
	}

	_, err := race.Timeout(ctx, "latest_profile", s.timeout, func(ctx context.Context) (struct{}, error) {
		p, err := s.fetchProfile(ctx, id)
		if err != nil {
			return struct{}{}, err
		}

		s.logger.Debug("user response received", slog.String("id", id))

		s.session.Update(func(u *model.User) {
			// the session may have been cleared or switched meanwhile
			if u.ID == id {
				u.ApplyProfile(p)
			}
		})

		return struct{}{}, nil
	})

	if err != nil {
		s.toast.PresentError(err)
		return toast.Presented(err)
	}

	return nil
}

// GetUserProfile fetches any user's profile under the same deadline.
func (s *Service) GetUserProfile(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrNoUser
	}

	return race.Timeout(ctx, "user_profile", s.timeout, func(ctx context.Context) (*model.User, error) {
		p, err := s.fetchProfile(ctx, id)
		if err != nil {
			return nil, err
		}

		return model.UserFromProfile(id, p), nil
	})
}

// Update changes session user fields locally; UploadUserProfile sends them.
func (s *Service) Update(f func(u *model.User)) {
	s.session.Update(f)
}

// UploadUserProfile posts the session user as query parameters. A location
// upload is started alongside; its failure is only logged.
func (s *Service) UploadUserProfile(ctx context.Context) error {
	u := s.session.User()
	if u.ID == "" {
		return ErrNoUser
	}

	s.bg.Add(1)

	go func() {
		defer s.bg.Done()

		if _, err := s.UploadLocation(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("location upload failed", slog.Any("error", err))
		}
	}()

	s.logger.Debug("sending user profile", slog.String("id", u.ID))

	ack, err := race.Timeout(ctx, "update_profile", s.timeout, func(ctx context.Context) (string, error) {
		return s.api.Request("update_profile", "/updateProfile").Post().Args(u.Params()).GetText(ctx)
	})

	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.logger.Debug("update profile: " + ack)

	return nil
}

// UploadLocation sends the current position and records it on the session user.
func (s *Service) UploadLocation(ctx context.Context) (string, error) {
	id := s.session.ID()
	if id == "" {
		return "", ErrNoUser
	}

	pos, err := s.locator.CurrentPosition(ctx)
	if err != nil {
		return "", fmt.Errorf("get position: %w", err)
	}

	s.session.Update(func(u *model.User) {
		if u.ID == id {
			u.Latitude, u.Longitude = pos.Lat, pos.Lon
		}
	})

	body := model.NewLocationUpload(id, pos)
	s.logger.Debug("sending gps location", slog.Float64("lat", body.Latitude), slog.Float64("lon", body.Longitude))

	ack, err := s.api.Request("upload_location", "/eatNow/uploadLocation").Post().JSONBody(body).GetText(ctx)
	if err != nil {
		return "", fmt.Errorf("upload location: %w", err)
	}

	return ack, nil
}

// AvatarURL is the profile picture url of id, the session user when id is empty.
func (s *Service) AvatarURL(id string) string {
	if id == "" {
		id = s.session.ID()
	}

	return s.api.URL("/userProfile/" + url.PathEscape(id) + "/image")
}

func (s *Service) Avatar(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		id = s.session.ID()
	}

	if id == "" {
		return nil, ErrNoUser
	}

	return s.avatars.Load(ctx, id)
}

func (s *Service) loadAvatar(ctx context.Context, id string) ([]byte, error) {
	dat, err := s.api.Request("user_image", "/userProfile/"+url.PathEscape(id)+"/image").GetBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("get image %s: %w", id, err)
	}

	return dat, nil
}

// Run drops expired avatars until ctx is done.
func (s *Service) Run(ctx context.Context) {
	s.avatars.Run(ctx, time.Minute)
}

// CleanUserProfile resets the session user on logout.
func (s *Service) CleanUserProfile() {
	s.session.Clean()
}

// Wait blocks until background uploads are finished.
func (s *Service) Wait() {
	s.bg.Wait()
}

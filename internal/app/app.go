// Package app wires the client services together from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kdudkov/eatnow/internal/auth"
	"github.com/kdudkov/eatnow/internal/client"
	"github.com/kdudkov/eatnow/internal/config"
	"github.com/kdudkov/eatnow/internal/dateselect"
	"github.com/kdudkov/eatnow/internal/invitation"
	"github.com/kdudkov/eatnow/internal/location"
	"github.com/kdudkov/eatnow/internal/storage"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/internal/userinfo"
	"github.com/kdudkov/eatnow/pkg/model"
	"github.com/kdudkov/eatnow/pkg/tlsutil"
)

const messagesKept = 100

type App struct {
	cfg    *config.AppConfig
	logger *slog.Logger

	Store       storage.Storage
	Auth        *auth.Service
	Guard       *auth.Guard
	Session     *model.Session
	API         *client.Client
	Locator     location.Locator
	Users       *userinfo.Service
	Invitations *invitation.Board
	TimeSlot    *dateselect.Selector
	Messages    *toast.Collector
}

// New builds the app. Messages go to out and are kept for the local shell.
func New(cfg *config.AppConfig, out toast.Messenger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   slog.Default().With("logger", "app"),
		Session:  model.NewSession(),
		Messages: toast.NewCollector(messagesKept),
	}

	messenger := toast.Messenger(a.Messages)
	if out != nil {
		messenger = toast.Multi{out, a.Messages}
	}

	store, err := storage.Open(cfg.StorageType(), cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a.Store = store

	opts := client.Options{Timeout: cfg.HTTPTimeout(), Insecure: cfg.Insecure()}

	if f := cfg.P12File(); f != "" {
		cert, cas, err := tlsutil.LoadP12(f, cfg.P12Password())
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load client cert: %w", err)
		}

		if cert.Leaf != nil {
			tlsutil.LogCert(a.logger, "client cert", cert.Leaf)
		}

		for _, c := range cas {
			tlsutil.LogCert(a.logger, "ca", c)
		}

		opts.Cert = cert

		if len(cas) > 0 {
			opts.RootCAs = tlsutil.MakeCertPool(cas...)
		}
	}

	lat, lon := cfg.StaticPosition()

	if a.Locator, err = location.New(cfg.LocationSource(), cfg.GpsdAddr(), lat, lon); err != nil {
		_ = store.Close()
		return nil, err
	}

	a.Auth = auth.NewService(store)
	a.Guard = auth.NewGuard(a.Auth)
	a.API = client.New(cfg.APIURL(), client.NewHTTPClient(opts), a.Session.ID)
	a.Users = userinfo.New(a.API, a.Session, a.Locator, messenger, cfg.AvatarTTL())
	a.Invitations = invitation.NewBoard(invitation.NewProvider(a.API), a.Session, messenger, a.Users.AvatarURL)
	a.TimeSlot = dateselect.New(store, messenger)

	a.Auth.StateChanges().Subscribe("app", func(v bool) bool {
		a.logger.Debug("authentication changed", slog.Bool("authenticated", v))
		return true
	})

	a.Invitations.Subscribe("app", func(st invitation.State) bool {
		if !st.Loading {
			a.logger.Debug("invitations shown", slog.String("category", string(st.Category)), slog.Int("count", len(st.Invitations)))
		}

		return true
	})

	return a, nil
}

// Restore loads a stored session without contacting the server and reports
// whether one exists.
func (a *App) Restore(ctx context.Context) (bool, error) {
	token, err := a.Auth.Ready(ctx)
	if err != nil {
		return false, err
	}

	if token == "" {
		a.logger.Info("not logged in")
		return false, nil
	}

	a.Session.SetID(token)

	return true, nil
}

// Start restores a stored session, refreshes its profile and loads the sent
// invitations. A failed refresh keeps the session.
func (a *App) Start(ctx context.Context) error {
	ok, err := a.Restore(ctx)
	if err != nil || !ok {
		return err
	}

	err = a.Users.GetLatestUserProfile(ctx)

	if err1 := a.Invitations.Select(ctx, model.CategorySent); err == nil {
		err = err1
	}

	return err
}

// Run does the background work of the services until ctx is done.
func (a *App) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		a.Users.Run(ctx)
	}()

	if r, ok := a.Locator.(location.Runner); ok {
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.Run(ctx)
		}()
	}

	wg.Wait()
}

func (a *App) Login(ctx context.Context, id string) error {
	if err := a.Auth.Login(ctx, id); err != nil {
		return err
	}

	a.Users.CleanUserProfile()
	a.Session.SetID(id)

	return a.Users.GetLatestUserProfile(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	a.Users.CleanUserProfile()

	return a.Auth.Logout(ctx)
}

// Close drops the app subscriptions, waits for background uploads and closes
// the storage.
func (a *App) Close() error {
	a.Auth.StateChanges().Unsubscribe("app")
	a.Invitations.Unsubscribe("app")
	a.Users.Wait()

	return a.Store.Close()
}

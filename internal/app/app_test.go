package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/eatnow/internal/config"
	"github.com/kdudkov/eatnow/internal/storage"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/model"
)

func newTestApp(t *testing.T, h http.Handler) *App {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.NewAppConfig()
	cfg.Set("api_url", srv.URL)
	cfg.Set("storage.type", "memory")

	a, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a
}

func profileServer() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/userProfile/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"bob","availability":"T","shared_gps":"T"}`))
	})
	mux.HandleFunc("/invitation/waiting/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"invitationId":1,"senderId":"42","receiverId":11,"sName":"bob","rName":"ben"}]`))
	})

	return mux
}

func TestStartLoggedOut(t *testing.T) {
	a := newTestApp(t, profileServer())

	require.NoError(t, a.Start(context.Background()))
	assert.False(t, a.Guard.CanActivate())
	assert.Empty(t, a.Session.ID())
}

func TestStartRestoresSession(t *testing.T) {
	a := newTestApp(t, profileServer())
	require.NoError(t, a.Store.Set(context.Background(), storage.TokenKey, "42"))

	require.NoError(t, a.Start(context.Background()))
	assert.True(t, a.Guard.CanActivate())

	u := a.Users.User()
	assert.Equal(t, "42", u.ID)
	assert.Equal(t, "bob", u.Username)
	assert.True(t, u.ShareGPS)

	st := a.Invitations.State()
	assert.Equal(t, model.CategorySent, st.Category)
	assert.False(t, st.Loading)
	require.Len(t, st.Invitations, 1)
	assert.Equal(t, "1", st.Invitations[0].InvitationID.String())
}

func TestStartNoInvitations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/userProfile/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"bob"}`))
	})

	a := newTestApp(t, mux)
	require.NoError(t, a.Store.Set(context.Background(), storage.TokenKey, "42"))

	err := a.Start(context.Background())
	require.Error(t, err)
	assert.True(t, toast.IsPresented(err))
	assert.True(t, a.Guard.CanActivate())
	assert.Equal(t, "bob", a.Users.User().Username)
	assert.Empty(t, a.Invitations.Invitations())
}

func TestRun(t *testing.T) {
	a := newTestApp(t, profileServer())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		a.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second * 2):
		require.FailNow(t, "run did not stop")
	}
}

func TestCloseUnsubscribes(t *testing.T) {
	a := newTestApp(t, profileServer())
	assert.Equal(t, 1, a.Auth.StateChanges().Count())

	require.NoError(t, a.Close())

	assert.Equal(t, 0, a.Auth.StateChanges().Count())
	assert.False(t, a.Invitations.Unsubscribe("app"))
}

func TestLoginLogout(t *testing.T) {
	a := newTestApp(t, profileServer())
	ctx := context.Background()

	require.NoError(t, a.Login(ctx, "42"))
	assert.True(t, a.Auth.IsAuthenticated())
	assert.Equal(t, "bob", a.Users.User().Username)

	var token string
	ok, err := a.Store.Get(ctx, storage.TokenKey, &token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", token)

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.Auth.IsAuthenticated())
	assert.Empty(t, a.Users.User().ID)
}

func TestLoginProfileError(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	err := a.Login(context.Background(), "7")
	require.Error(t, err)

	// the session survives a failed refresh
	assert.True(t, a.Auth.IsAuthenticated())
	assert.Equal(t, "7", a.Session.ID())
	assert.Len(t, a.Messages.Messages(), 1)
}

func TestNewBadStorage(t *testing.T) {
	cfg := config.NewAppConfig()
	cfg.Set("storage.type", "redis")

	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestRestore(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	ok, err := a.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, a.Store.Set(context.Background(), storage.TokenKey, "42"))

	ok, err = a.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", a.Session.ID())
	assert.Empty(t, a.Messages.Messages())
}

package invitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/model"
)

type fakeLister struct {
	lists map[model.Category][]*model.Invitation
	gates map[model.Category]chan struct{}
	err   error
}

func (f *fakeLister) GetNewList(_ context.Context, category model.Category) ([]*model.Invitation, error) {
	if g, ok := f.gates[category]; ok {
		<-g
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.lists[category], nil
}

func inv(id, sender, receiver string, c model.Category) *model.Invitation {
	return &model.Invitation{
		InvitationID: model.FlexString(id),
		SenderID:     model.FlexString(sender),
		ReceiverID:   model.FlexString(receiver),
		SenderName:   "user" + sender,
		ReceiverName: "user" + receiver,
		Category:     c,
	}
}

func newBoard(l Lister) (*Board, *toast.Collector) {
	session := model.NewSession()
	session.SetID("1")

	msgs := toast.NewCollector(10)

	return NewBoard(l, session, msgs, func(id string) string { return "http://srv/userProfile/" + id + "/image" }), msgs
}

func TestSelectReplacesList(t *testing.T) {
	l := &fakeLister{lists: map[model.Category][]*model.Invitation{
		model.CategorySent:     {inv("1", "1", "2", model.CategorySent), inv("2", "1", "3", model.CategorySent)},
		model.CategoryAccepted: {inv("3", "4", "1", model.CategoryAccepted)},
	}}

	b, msgs := newBoard(l)
	assert.Equal(t, model.CategorySent, b.Selected())

	require.NoError(t, b.Refresh(context.Background()))
	assert.Len(t, b.Invitations(), 2)

	require.NoError(t, b.Select(context.Background(), model.CategoryAccepted))

	if diff := cmp.Diff(l.lists[model.CategoryAccepted], b.Invitations()); diff != "" {
		t.Errorf("invitations mismatch (-want +got):\n%s", diff)
	}

	assert.False(t, b.Loading())
	assert.Empty(t, msgs.Messages())
}

func TestSelectStaleFetchDropped(t *testing.T) {
	gate := make(chan struct{})

	l := &fakeLister{
		lists: map[model.Category][]*model.Invitation{
			model.CategorySent:     {inv("1", "1", "2", model.CategorySent)},
			model.CategoryReceived: {inv("2", "5", "1", model.CategoryReceived)},
		},
		gates: map[model.Category]chan struct{}{model.CategorySent: gate},
	}

	b, _ := newBoard(l)

	done := make(chan error, 1)

	go func() {
		done <- b.Select(context.Background(), model.CategorySent)
	}()

	require.Eventually(t, b.Loading, time.Second, time.Millisecond*5)

	require.NoError(t, b.Select(context.Background(), model.CategoryReceived))
	close(gate)
	require.NoError(t, <-done)

	assert.Equal(t, model.CategoryReceived, b.Selected())

	if diff := cmp.Diff(l.lists[model.CategoryReceived], b.Invitations()); diff != "" {
		t.Errorf("invitations mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectError(t *testing.T) {
	l := &fakeLister{
		lists: map[model.Category][]*model.Invitation{model.CategorySent: {inv("1", "1", "2", model.CategorySent)}},
	}

	b, msgs := newBoard(l)
	require.NoError(t, b.Refresh(context.Background()))

	l.err = errors.New("connection refused")

	err := b.Select(context.Background(), model.CategoryReceived)
	require.Error(t, err)
	assert.True(t, toast.IsPresented(err))

	assert.Empty(t, b.Invitations())
	assert.False(t, b.Loading())

	require.Len(t, msgs.Messages(), 1)
	assert.Equal(t, "Loading Invitation List Error\nError connecting server", msgs.Messages()[0].Text)
}

func TestSelectUnknownCategory(t *testing.T) {
	b, _ := newBoard(&fakeLister{})

	require.ErrorIs(t, b.Select(context.Background(), "rejected"), model.ErrUnknownCategory)
	assert.Equal(t, model.CategorySent, b.Selected())
}

func TestLoadMore(t *testing.T) {
	b, _ := newBoard(&fakeLister{lists: map[model.Category][]*model.Invitation{
		model.CategorySent: {inv("1", "1", "2", model.CategorySent)},
	}})

	require.NoError(t, b.Refresh(context.Background()))
	require.NoError(t, b.LoadMore(context.Background()))
	assert.Len(t, b.Invitations(), 1)
}

func TestCounterpart(t *testing.T) {
	b, _ := newBoard(&fakeLister{})

	sent := inv("1", "1", "2", model.CategorySent)
	got := inv("2", "3", "1", model.CategoryReceived)

	assert.Equal(t, "user2", b.DisplayName(sent))
	assert.Equal(t, "2", b.CounterpartID(sent))
	assert.Equal(t, "http://srv/userProfile/2/image", b.AvatarURL(sent))

	assert.Equal(t, "user3", b.DisplayName(got))
	assert.Equal(t, "3", b.CounterpartID(got))
}

func TestSubscribe(t *testing.T) {
	b, _ := newBoard(&fakeLister{lists: map[model.Category][]*model.Invitation{
		model.CategorySent: {inv("1", "1", "2", model.CategorySent)},
	}})

	ch := make(chan State, 4)

	b.Subscribe("test", func(s State) bool {
		ch <- s
		return true
	})

	require.NoError(t, b.Refresh(context.Background()))

	require.Eventually(t, func() bool { return len(ch) == 2 }, time.Second, time.Millisecond*5)
}

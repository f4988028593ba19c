// Package invitation keeps the displayed invitation list of one category.
package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kdudkov/eatnow/internal/callbacks"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/model"
)

var errLoadList = errors.New("Loading Invitation List Error\nError connecting server") //nolint:stylecheck

// State is a snapshot of the board.
type State struct {
	Category    model.Category      `json:"category" yaml:"category"`
	Loading     bool                `json:"loading" yaml:"loading"`
	Invitations []*model.Invitation `json:"invitations" yaml:"invitations"`
}

type Board struct {
	mx       sync.RWMutex
	selected model.Category
	list     []*model.Invitation
	loading  bool
	gen      uint64

	lister    Lister
	session   *model.Session
	toast     toast.Messenger
	avatarURL func(id string) string
	changes   *callbacks.Callback[State]
	logger    *slog.Logger
}

func NewBoard(lister Lister, session *model.Session, messenger toast.Messenger, avatarURL func(id string) string) *Board {
	return &Board{
		selected:  model.CategorySent,
		lister:    lister,
		session:   session,
		toast:     messenger,
		avatarURL: avatarURL,
		changes:   callbacks.New[State](),
		logger:    slog.Default().With("logger", "invitations"),
	}
}

// Select switches to category. The displayed list is cleared at once and
// replaced wholesale when the fetch succeeds. A fetch overtaken by a later
// Select is dropped.
func (b *Board) Select(ctx context.Context, category model.Category) error {
	if _, err := category.Path(); err != nil {
		return err
	}

	b.mx.Lock()
	b.gen++
	gen := b.gen
	b.selected = category
	b.list = nil
	b.loading = true
	st := b.state()
	b.mx.Unlock()

	b.changes.Publish(st)

	list, err := b.lister.GetNewList(ctx, category)

	b.mx.Lock()

	if gen != b.gen {
		b.mx.Unlock()
		b.logger.Debug("stale invitation list dropped", slog.String("category", string(category)))

		return nil
	}

	b.loading = false

	if err == nil {
		b.list = list
	}

	st = b.state()
	b.mx.Unlock()

	b.changes.Publish(st)

	if err != nil {
		b.logger.Warn("invitation list failed", slog.String("category", string(category)), slog.Any("error", err))
		b.toast.PresentError(errLoadList)

		return toast.Presented(fmt.Errorf("load %s invitations: %w", category, err))
	}

	b.logger.Debug(fmt.Sprintf("got %d %s invitations", len(list), category))

	return nil
}

// Refresh re-fetches the selected category.
func (b *Board) Refresh(ctx context.Context) error {
	return b.Select(ctx, b.Selected())
}

// LoadMore completes at once. The server has no paging.
func (b *Board) LoadMore(_ context.Context) error {
	return nil
}

func (b *Board) Selected() model.Category {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.selected
}

func (b *Board) Loading() bool {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.loading
}

func (b *Board) Invitations() []*model.Invitation {
	b.mx.RLock()
	defer b.mx.RUnlock()

	res := make([]*model.Invitation, len(b.list))
	copy(res, b.list)

	return res
}

func (b *Board) State() State {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.state()
}

func (b *Board) state() State {
	res := make([]*model.Invitation, len(b.list))
	copy(res, b.list)

	return State{Category: b.selected, Loading: b.loading, Invitations: res}
}

func (b *Board) Subscribe(name string, fn func(State) bool) {
	b.changes.Subscribe(name, fn)
}

func (b *Board) Unsubscribe(name string) bool {
	return b.changes.Unsubscribe(name)
}

// DisplayName is the name of the other party of inv.
func (b *Board) DisplayName(inv *model.Invitation) string {
	return inv.CounterpartName(b.session.ID())
}

func (b *Board) CounterpartID(inv *model.Invitation) string {
	return inv.CounterpartID(b.session.ID())
}

func (b *Board) AvatarURL(inv *model.Invitation) string {
	if b.avatarURL == nil {
		return ""
	}

	return b.avatarURL(b.CounterpartID(inv))
}

// Package callbacks fans state changes out to named subscribers.
package callbacks

import (
	"log/slog"
	"sync"
)

const queueSize = 16

type subscriber[V any] struct {
	ch chan V
}

// Callback delivers published values to every subscriber in publish order.
// Each subscriber runs on its own goroutine; a subscriber returning false is
// dropped. A subscriber too slow to keep up with queueSize pending values
// loses the newest ones.
type Callback[V any] struct {
	mx     sync.Mutex
	subs   map[string]*subscriber[V]
	logger *slog.Logger
}

func New[V any]() *Callback[V] {
	return &Callback[V]{
		subs:   make(map[string]*subscriber[V]),
		logger: slog.Default().With("logger", "callbacks"),
	}
}

func (p *Callback[V]) Publish(msg V) {
	p.mx.Lock()
	defer p.mx.Unlock()

	for name, s := range p.subs {
		select {
		case s.ch <- msg:
		default:
			p.logger.Warn("subscriber queue is full", slog.String("name", name))
		}
	}
}

// Subscribe registers fn under name, replacing a previous subscriber.
func (p *Callback[V]) Subscribe(name string, fn func(msg V) bool) {
	s := &subscriber[V]{ch: make(chan V, queueSize)}

	p.mx.Lock()
	if old, ok := p.subs[name]; ok {
		close(old.ch)
	}

	p.subs[name] = s
	p.mx.Unlock()

	go func() {
		for msg := range s.ch {
			if !fn(msg) {
				p.remove(name, s)
				return
			}
		}
	}()
}

// Unsubscribe drops name. Values already queued are still delivered.
func (p *Callback[V]) Unsubscribe(name string) bool {
	p.mx.Lock()
	defer p.mx.Unlock()

	s, ok := p.subs[name]
	if ok {
		delete(p.subs, name)
		close(s.ch)
	}

	return ok
}

func (p *Callback[V]) Count() int {
	p.mx.Lock()
	defer p.mx.Unlock()

	return len(p.subs)
}

func (p *Callback[V]) remove(name string, s *subscriber[V]) {
	p.mx.Lock()
	defer p.mx.Unlock()

	if p.subs[name] == s {
		delete(p.subs, name)
		close(s.ch)
	}
}

package storage

import (
	"context"
	"sort"
	"sync"
)

var _ Storage = &Memory{}

type Memory struct {
	mx   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	m.mx.RLock()
	v, ok := m.data[key]
	m.mx.RUnlock()

	if !ok {
		return false, nil
	}

	return true, decode(v, dst)
}

func (m *Memory) Set(_ context.Context, key string, v any) error {
	val, err := encode(v)
	if err != nil {
		return err
	}

	m.mx.Lock()
	defer m.mx.Unlock()

	m.data[key] = val

	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mx.Lock()
	defer m.mx.Unlock()

	delete(m.data, key)

	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	res := make([]string, 0, len(m.data))
	for k := range m.data {
		res = append(res, k)
	}

	sort.Strings(res)

	return res, nil
}

func (m *Memory) Close() error {
	return nil
}

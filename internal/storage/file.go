package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

var _ Storage = &FileStorage{}

// FileStorage keeps entries in a yaml document and reloads it when another
// process writes the file.
type FileStorage struct {
	file   string
	logger *slog.Logger
	data   map[string]string

	watcher *fsnotify.Watcher

	mx sync.RWMutex
}

func OpenFile(file string) (*FileStorage, error) {
	s := &FileStorage{
		logger: slog.Default().With("logger", "storage", "file", file),
		file:   file,
		data:   make(map[string]string),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStorage) load() error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if _, err := os.Lstat(s.file); os.IsNotExist(err) {
		// create empty file
		f, err := os.Create(s.file)
		if err != nil {
			return err
		}

		return f.Close()
	}

	dat, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}

	data := make(map[string]string)

	if err := yaml.Unmarshal(dat, &data); err != nil {
		return fmt.Errorf("parse %s: %w", s.file, err)
	}

	s.data = data

	return nil
}

// save must be called with the lock held.
func (s *FileStorage) save() error {
	dat, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}

	return os.WriteFile(s.file, dat, 0o600)
}

func (s *FileStorage) Start() error {
	var err error
	s.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	if err := s.watcher.Add(s.file); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-s.watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Write) && event.Name == s.file {
					s.logger.Debug("storage file is modified, reloading")

					if err := s.load(); err != nil {
						s.logger.Error("error", slog.Any("error", err))
					}
				}
			case err, ok := <-s.watcher.Errors:
				if !ok {
					return
				}

				s.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (s *FileStorage) Get(_ context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	s.mx.RLock()
	v, ok := s.data[key]
	s.mx.RUnlock()

	if !ok {
		return false, nil
	}

	return true, decode(v, dst)
}

func (s *FileStorage) Set(_ context.Context, key string, v any) error {
	val, err := encode(v)
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	s.data[key] = val

	return s.save()
}

func (s *FileStorage) Remove(_ context.Context, key string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}

	delete(s.data, key)

	return s.save()
}

func (s *FileStorage) Keys(_ context.Context) ([]string, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	res := make([]string, 0, len(s.data))
	for k := range s.data {
		res = append(res, k)
	}

	sort.Strings(res)

	return res, nil
}

func (s *FileStorage) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}

	return nil
}

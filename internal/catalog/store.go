package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 200 * time.Millisecond

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store хранит актуальный справочник и подменяет его при изменении файла
type Store struct {
	path     string
	debounce time.Duration
	logger   Logger
	current  atomic.Pointer[Catalog]
}

// NewStore загружает справочник из файла
func NewStore(path string, logger Logger) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{path: path, debounce: defaultDebounce, logger: logger}
	s.current.Store(c)
	return s, nil
}

// NewStaticStore оборачивает готовый справочник без файла
func NewStaticStore(c *Catalog) *Store {
	s := &Store{debounce: defaultDebounce}
	s.current.Store(c)
	return s
}

// Current возвращает текущий справочник
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

func (s *Store) HasRoom(code string) bool   { return s.Current().HasRoom(code) }
func (s *Store) HasReason(code string) bool { return s.Current().HasReason(code) }
func (s *Store) RoomName(code string) string {
	return s.Current().RoomName(code)
}

// Rooms возвращает переговорные в порядке файла
func (s *Store) Rooms() []Entry { return s.Current().Rooms }

// Reasons возвращает причины в порядке файла
func (s *Store) Reasons() []Entry { return s.Current().Reasons }

// Reload перечитывает файл. При ошибке остаётся прежний справочник
func (s *Store) Reload() error {
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(c)
	return nil
}

// Watch следит за каталогом файла до отмены ctx.
// Следим за директорией, а не за файлом: редакторы заменяют файл через rename
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("catalog: watch requires a file path")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("catalog: watch %s: %w", s.path, err)
	}

	go s.loop(ctx, w)
	return nil
}

func (s *Store) loop(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()

	target := filepath.Clean(s.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(s.debounce)
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logError("Catalog watcher error: %v", err)

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				s.logError("Catalog reload failed, keeping previous version: %v", err)
				continue
			}
			if s.logger != nil {
				s.logger.Info("Catalog reloaded: %s", s.Current())
			}
		}
	}
}

func (s *Store) logError(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Error(format, v...)
	}
}

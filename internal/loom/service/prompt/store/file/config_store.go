package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/repo"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// reloadDebounce is how long the watcher waits after the last event before reloading.
const reloadDebounce = 300 * time.Millisecond

// ConfigStore reads the framework configuration from a JSON or YAML file.
// Every Load parses the file again, so callers always get a private copy.
type ConfigStore struct {
	path string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	closed  bool
}

var _ repo.ConfigRepo = (*ConfigStore)(nil)

// NewConfigStore checks that path parses and returns a store for it.
func NewConfigStore(path string) (*ConfigStore, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	s := &ConfigStore{
		path:    absPath,
		closeCh: make(chan struct{}),
	}
	if _, err := s.Load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the absolute file path.
func (s *ConfigStore) Path() string {
	return s.path
}

func (s *ConfigStore) Load(_ context.Context) (*entity.FrameworkConfig, error) {
	cfg := &entity.FrameworkConfig{}
	if err := decodeFile(s.path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errno.ErrInvalidFrameworkConfig, err)
	}
	return cfg, nil
}

// Watch calls onChange with the new configuration each time the file changes.
// Parse failures are logged and the previous configuration stays in effect.
func (s *ConfigStore) Watch(onChange func(*entity.FrameworkConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("config store for %q is closed", s.path)
	}
	if s.watcher != nil {
		return fmt.Errorf("config store for %q is already watched", s.path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %q: %w", filepath.Dir(s.path), err)
	}
	s.watcher = watcher

	go s.watchLoop(watcher, onChange)
	logger.Debug("[ConfigStore] watcher started for %s", s.path)
	return nil
}

func (s *ConfigStore) watchLoop(watcher *fsnotify.Watcher, onChange func(*entity.FrameworkConfig)) {
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	reload := func() {
		cfg, err := s.Load(context.Background())
		if err != nil {
			logger.Warn("[ConfigStore] reload of %s failed, keeping previous config: %v", s.path, err)
			return
		}
		logger.Info("[ConfigStore] reloaded %s (%d prompts, %d tools)", s.path, len(cfg.Prompts), len(cfg.Tools))
		onChange(cfg)
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, reload)
			timerMu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("[ConfigStore] watcher error: %v", err)
		case <-s.closeCh:
			return
		}
	}
}

// Close stops the file watcher.
func (s *ConfigStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.closeCh)

	if s.watcher != nil {
		s.watcher.Close()
	}
}

package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/hay-kot/chefhat/internal/core/language"
)

// ErrKeyNotFound is returned when a settings key has no value.
var ErrKeyNotFound = errors.New("key not found")

// languageKey is the settings key holding the preferred language.
const languageKey = "language"

// Setting is a single stored key/value pair.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// settingsFile is the root JSON structure stored on disk.
type settingsFile struct {
	Settings map[string]Setting `json:"settings"`
}

// KVStore is a small settings store backed by a JSON file. Access across
// processes is serialized with flock on a sibling lock file.
type KVStore struct {
	path string
	mu   sync.RWMutex
	now  func() time.Time
}

// NewKVStore creates a settings store at the given path.
func NewKVStore(path string) *KVStore {
	return &KVStore{path: path, now: time.Now}
}

func (s *KVStore) lockPath() string {
	return s.path + ".lock"
}

func (s *KVStore) withSharedLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_SH, fn)
}

func (s *KVStore) withExclusiveLock(fn func() error) error {
	return s.withFileLock(syscall.LOCK_EX, fn)
}

func (s *KVStore) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// Get returns the setting for key, or ErrKeyNotFound.
func (s *KVStore) Get(ctx context.Context, key string) (Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		setting Setting
		found   bool
	)

	err := s.withSharedLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}
		setting, found = file.Settings[key]
		return nil
	})
	if err != nil {
		return Setting{}, err
	}
	if !found {
		return Setting{}, ErrKeyNotFound
	}
	return setting, nil
}

// Set creates or replaces the value for key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withExclusiveLock(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		file.Settings[key] = Setting{Key: key, Value: value, UpdatedAt: s.now()}
		return s.save(file)
	})
}

// Language returns the stored language preference. language.ErrNotSet is
// returned when nothing valid has been saved.
func (s *KVStore) Language(ctx context.Context) (language.Code, error) {
	setting, err := s.Get(ctx, languageKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", language.ErrNotSet
		}
		return "", err
	}

	code, err := language.Parse(setting.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", language.ErrNotSet, err)
	}
	return code, nil
}

// SetLanguage persists the language preference.
func (s *KVStore) SetLanguage(ctx context.Context, code language.Code) error {
	if !code.Valid() {
		return fmt.Errorf("unsupported language %q", code)
	}
	return s.Set(ctx, languageKey, string(code))
}

func (s *KVStore) load() (settingsFile, error) {
	empty := settingsFile{Settings: make(map[string]Setting)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		return settingsFile{}, err
	}
	if len(data) == 0 {
		return empty, nil
	}

	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return settingsFile{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if file.Settings == nil {
		file.Settings = make(map[string]Setting)
	}
	return file, nil
}

func (s *KVStore) save(file settingsFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.path, data)
}

var _ language.Store = (*KVStore)(nil)

// Package file хранит слоты как отдельные файлы в каталоге на локальном диске.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

const (
	slotFileExt  = ".json"
	dirPerm      = 0o755
	slotFilePerm = 0o644
)

var slotKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// SlotStorage — файловая реализация domain.SlotStorage: один слот = один файл.
type SlotStorage struct {
	mu     sync.Mutex
	dir    string
	closed bool
}

// Open создаёт каталог (если его нет) и возвращает хранилище поверх него.
func Open(dir string) (*SlotStorage, error) {
	if dir == "" {
		return nil, errors.New("data dir is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &SlotStorage{dir: dir}, nil
}

// Dir возвращает каталог хранилища.
func (s *SlotStorage) Dir() string {
	return s.dir
}

// Get читает файл слота; отсутствующий файл означает незаписанный слот.
func (s *SlotStorage) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.slotPath(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, domain.ErrStorageNotInitialized
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set атомарно заменяет файл слота: запись во временный файл и rename.
func (s *SlotStorage) Set(_ context.Context, key, value string) error {
	path, err := s.slotPath(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStorageNotInitialized
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// После успешного rename файла уже нет, ошибку удаления игнорируем.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, slotFilePerm); err != nil {
		return fmt.Errorf("chmod slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace slot %s: %w", key, err)
	}
	return nil
}

// Ping проверяет, что каталог существует и это действительно каталог.
func (s *SlotStorage) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStorageNotInitialized
	}

	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

// Close помечает хранилище закрытым; файлы остаются на диске.
func (s *SlotStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *SlotStorage) slotPath(key string) (string, error) {
	if key == "" {
		return "", domain.ErrSlotKeyRequired
	}
	if !slotKeyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+slotFileExt), nil
}

var _ domain.SlotStorage = (*SlotStorage)(nil)

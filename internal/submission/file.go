package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps every submission in one pretty-printed JSON array.
// Each create reads the whole array, appends, and rewrites the file.
type FileStore struct {
	path string
	now  func() time.Time

	// mu serializes read-modify-write cycles within the process.
	mu sync.Mutex
}

// OpenFile opens the store at path, creating the file as an empty array
// (and any missing parent directories) if it does not exist.
func OpenFile(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}

	s := &FileStore{path: path, now: time.Now}

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write([]*Submission{}); err != nil {
			return nil, fmt.Errorf("initializing %s: %w", path, err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Create implements Store.
func (s *FileStore) Create(ctx context.Context, p Payload) (*Submission, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		records, err = []*Submission{}, nil
	}
	if err != nil {
		// An unreadable file is left alone rather than replaced.
		return nil, fmt.Errorf("reading store: %w", err)
	}

	now := s.now()
	sub := build(p, nextID(now, maxID(records)), now)

	if err := s.write(append(records, sub)); err != nil {
		return nil, fmt.Errorf("writing store: %w", err)
	}

	return sub, nil
}

// ListAll implements Store. A file that cannot be read or parsed is
// logged and treated as empty.
func (s *FileStore) ListAll(ctx context.Context) ([]*Submission, error) {
	return s.load(ctx), nil
}

// GetByID implements Store.
func (s *FileStore) GetByID(ctx context.Context, id int64) (*Submission, error) {
	for _, sub := range s.load(ctx) {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) load(ctx context.Context) []*Submission {
	records, err := s.read()
	if err != nil {
		slog.WarnContext(ctx, "reading submissions file", "path", s.path, "error", err)
		return []*Submission{}
	}
	return records
}

func (s *FileStore) read() ([]*Submission, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var records []*Submission
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if records == nil {
		records = []*Submission{}
	}
	return records, nil
}

// write replaces the file through a temp file and rename, so a failed
// write never leaves a partial array behind.
func (s *FileStore) write(records []*Submission) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding submissions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}

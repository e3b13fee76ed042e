package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	MemoryPathKey     = "memory_path"
	memoryFileMode    = 0o600
	memoryDirMode     = 0o700
	memoryConfigDir   = ".schedule-manager"
	memoryFile        = "memory.toml"
	tempFilePattern   = ".memory-*.toml.tmp"
	defaultMaxEntries = 500
)

// Sink is the long-term memory: session snapshots kept in one TOML file.
// Only the newest entries are kept once the file reaches its limit.
type Sink struct {
	memoryPath string
	maxEntries int
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.MemorySink = (*Sink)(nil)

func NewSink(cfg *viper.Viper) (*Sink, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg.SetDefault(MemoryPathKey, defaultPath)

	memoryPath := cfg.GetString(MemoryPathKey)
	if memoryPath == "" {
		return nil, errors.New("memory path is empty")
	}
	memoryPath, err = normalizePath(memoryPath)
	if err != nil {
		return nil, err
	}

	return &Sink{memoryPath: memoryPath, maxEntries: defaultMaxEntries, mu: lockForPath(memoryPath)}, nil
}

// DefaultPath is ~/.schedule-manager/memory.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, memoryConfigDir, memoryFile), nil
}

func (s *Sink) Path() string {
	return s.memoryPath
}

func (s *Sink) Store(ctx context.Context, snapshot domain.SessionSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	file.Sessions = append(file.Sessions, toSchema(snapshot))
	if over := len(file.Sessions) - s.maxEntries; over > 0 {
		file.Sessions = append([]sessionSchema(nil), file.Sessions[over:]...)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

// Load returns every stored snapshot of userID, oldest first.
func (s *Sink) Load(ctx context.Context, userID string) ([]domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.SessionSnapshot, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		if entry.UserID == userID {
			snapshots = append(snapshots, fromSchema(entry))
		}
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].CapturedAt.Before(snapshots[j].CapturedAt)
	})

	return snapshots, nil
}

func (s *Sink) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.memoryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read memory file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode memory file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *Sink) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.memoryPath), memoryDirMode); err != nil {
		return fmt.Errorf("create memory directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode memory file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.memoryPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp memory file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp memory file: %w", err)
	}

	if err := tempFile.Chmod(memoryFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp memory file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp memory file: %w", err)
	}

	if err := os.Rename(tempName, s.memoryPath); err != nil {
		return fmt.Errorf("replace memory file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve memory path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(snapshot domain.SessionSnapshot) sessionSchema {
	return sessionSchema{
		SessionID:   snapshot.SessionID,
		UserID:      snapshot.UserID,
		Request:     snapshot.Request,
		Route:       snapshot.Route,
		Response:    snapshot.Response,
		ActiveHours: snapshot.ActiveHours,
		Slots:       snapshot.Slots,
		CapturedAt:  formatTime(snapshot.CapturedAt),
	}
}

func fromSchema(entry sessionSchema) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		SessionID:   entry.SessionID,
		UserID:      entry.UserID,
		Request:     entry.Request,
		Route:       entry.Route,
		Response:    entry.Response,
		ActiveHours: entry.ActiveHours,
		Slots:       entry.Slots,
		CapturedAt:  parseTime(entry.CapturedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

// Package journal persists audit events as JSON documents on an afs-backed
// store so that operators can inspect a task's trail outside the process.
// The journal is write-once per event; it is an inspection aid, not the
// source of truth – the stores keep the authoritative trail in memory.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/nofa/openclaw/service/audit"
)

// Service appends audit events under <basePath>/<scope>/NNNN-<type>.json,
// where scope is a task or opportunity identifier.
type Service struct {
	fs       afs.Service
	basePath string

	mu  sync.Mutex
	seq map[string]int
}

// New creates a journal rooted at basePath.
func New(fs afs.Service, basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	ctx := context.Background()
	if exists, _ := fs.Exists(ctx, basePath); !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", basePath, err)
		}
	}
	return &Service{fs: fs, basePath: basePath, seq: make(map[string]int)}, nil
}

// Record writes the events for the given scope in order. Sequence numbers in
// the file names preserve append order across listings.
func (s *Service) Record(ctx context.Context, scope string, events ...audit.Event) error {
	if scope == "" {
		return fmt.Errorf("empty journal scope")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range events {
		s.seq[scope]++
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal audit event: %w", err)
		}
		name := fmt.Sprintf("%04d-%s.json", s.seq[scope], event.Type)
		dest := path.Join(s.basePath, scope, name)
		if err := s.fs.Upload(ctx, dest, file.DefaultFileOsMode, bytes.NewBuffer(data)); err != nil {
			return fmt.Errorf("failed to journal audit event %s: %w", dest, err)
		}
	}
	return nil
}

// List returns the journaled events for a scope in append order. A scope
// without entries yields an empty slice.
func (s *Service) List(ctx context.Context, scope string) ([]audit.Event, error) {
	dir := path.Join(s.basePath, scope)
	if exists, _ := s.fs.Exists(ctx, dir); !exists {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal %s: %w", dir, err)
	}
	var names []string
	byName := map[string]string{}
	for _, obj := range objects {
		if obj.IsDir() || !strings.HasSuffix(obj.Name(), ".json") {
			continue
		}
		names = append(names, obj.Name())
		byName[obj.Name()] = obj.URL()
	}
	sort.Strings(names)

	events := make([]audit.Event, 0, len(names))
	for _, name := range names {
		data, err := s.fs.DownloadWithURL(ctx, byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read journal entry %s: %w", name, err)
		}
		var event audit.Event
		if err := json.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("failed to decode journal entry %s: %w", name, err)
		}
		events = append(events, event)
	}
	return events, nil
}

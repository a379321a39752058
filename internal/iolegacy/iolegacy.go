// Package iolegacy is the JSON-file task store: one file per task under
// <dir>/<org-id>/. It predates the database workflow and stays as the
// secondary side of the dual-store pair so file-based tooling keeps
// working.
package iolegacy

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnfmt"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/taskstore"
)

type fileStore struct {
	dir string
	enc gnfmt.Encoder
}

var _ taskstore.Store = (*fileStore)(nil)

// New creates a file store rooted at dir, creating it when missing.
func New(dir string) (taskstore.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, WriteError(dir, err)
	}
	return &fileStore{
		dir: dir,
		enc: gnfmt.GNjson{Pretty: true},
	}, nil
}

// Load reads one task record; (nil, nil) when the file does not exist.
// The task id carries no org scope, so Load scans the per-org
// directories.
func (f *fileStore) Load(
	_ context.Context, id string,
) (*taskstore.Record, error) {
	path, err := f.find(id)
	if err != nil || path == "" {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	var rec taskstore.Record
	if err := f.enc.Decode(data, &rec); err != nil {
		return nil, ReadError(path, err)
	}
	return &rec, nil
}

// Save writes a task record to its per-org file.
func (f *fileStore) Save(_ context.Context, rec taskstore.Record) error {
	orgDir := filepath.Join(f.dir, rec.OrganizationID)
	if err := os.MkdirAll(orgDir, 0755); err != nil {
		return WriteError(orgDir, err)
	}

	data, err := f.enc.Encode(rec)
	if err != nil {
		return WriteError(rec.ID, err)
	}
	path := filepath.Join(orgDir, rec.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// Delete removes a task file; deleting a missing task is a no-op.
func (f *fileStore) Delete(_ context.Context, id string) error {
	path, err := f.find(id)
	if err != nil || path == "" {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return WriteError(path, err)
	}
	return nil
}

// List reads all task records of one organization.
func (f *fileStore) List(
	_ context.Context, orgID string,
) ([]taskstore.Record, error) {
	orgDir := filepath.Join(f.dir, orgID)
	entries, err := os.ReadDir(orgDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ReadError(orgDir, err)
	}

	var recs []taskstore.Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(orgDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ReadError(path, err)
		}
		var rec taskstore.Record
		if err := f.enc.Decode(data, &rec); err != nil {
			return nil, ReadError(path, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (f *fileStore) find(id string) (string, error) {
	entries, err := os.ReadDir(f.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", ReadError(f.dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(f.dir, e.Name(), id+".json")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

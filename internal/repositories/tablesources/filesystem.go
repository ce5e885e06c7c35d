package tablesources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// filesystemRepository keeps tables as tab_<id>.csv files in one directory
type filesystemRepository struct {
	dir string
}

// NewFilesystem creates a repository over a tables directory
func NewFilesystem(dir string) Repository {
	if dir == "" {
		panic("tables directory is required")
	}

	return &filesystemRepository{
		dir: dir,
	}
}

// Open implements tables.Source
func (r *filesystemRepository) Open(ctx context.Context, id int) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(r.dir, FileName(id)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(id, r.dir)
		}
		return nil, fmt.Errorf("failed to open table %d: %w", id, err)
	}

	return f, nil
}

// Put writes the table file, creating the directory when needed
func (r *filesystemRepository) Put(ctx context.Context, id int, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create tables directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(r.dir, FileName(id)), data, 0o644); err != nil {
		return fmt.Errorf("failed to write table %d: %w", id, err)
	}

	return nil
}

// List implements Repository.List
func (r *filesystemRepository) List(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to read tables directory: %w", err)
	}

	ids := []int{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := ParseFileName(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids, nil
}

// ParseFileName extracts the identifier from a tab_<id>.csv file name
func ParseFileName(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "tab_")
	if !ok {
		return 0, false
	}
	digits, ok = strings.CutSuffix(digits, ".csv")
	if !ok {
		return 0, false
	}

	id, err := strconv.Atoi(digits)
	if err != nil || FileName(id) != name {
		return 0, false
	}
	return id, true
}

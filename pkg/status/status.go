// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what happened to an output file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist before the write
	StatusModified             // File existed with different content
	StatusUnchanged            // File existed with identical content, not rewritten
	StatusFailed               // Write failed
	StatusDeleted              // Stale output was removed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about an output file
type FileInfo struct {
	Path     string     // Path as given to the manager
	Status   FileStatus // Outcome of the last write
	Size     int64      // Content size in bytes
	Checksum string     // SHA-256 of the content
	Error    error      // Any error associated with this file
}

// 💾 FileManager writes and removes output files
type FileManager interface {
	// WriteOutput writes content unless the file already holds it
	WriteOutput(ctx context.Context, path string, content []byte) (FileInfo, error)

	// RemoveOutput deletes a stale output and tracks it as deleted
	RemoveOutput(ctx context.Context, path string) (FileInfo, error)
}

// 📈 StatusReporter tracks file status and reports progress
type StatusReporter interface {
	TrackFile(ctx context.Context, path string, info FileInfo)
	ListFiles(ctx context.Context) ([]FileInfo, error)
	Summary(ctx context.Context) Summary

	StartOperation(ctx context.Context, total int)
	Advance(ctx context.Context)
	FinishOperation(ctx context.Context)
}

// 🧮 Summary counts tracked files per status
type Summary struct {
	New       int
	Modified  int
	Unchanged int
	Deleted   int
	Failed    int
}

// Total returns the number of tracked files.
func (s Summary) Total() int {
	return s.New + s.Modified + s.Unchanged + s.Deleted + s.Failed
}

var (
	_ FileManager    = (*Manager)(nil)
	_ StatusReporter = (*Manager)(nil)
)

// 🔧 Manager implements both FileManager and StatusReporter. It is safe for
// concurrent use.
type Manager struct {
	baseDir   string          // Base directory for relative paths
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo

	total     int
	processed int
}

// Option configures a Manager
type Option func(*Manager)

// WithFormatter replaces the default emoji formatter
func WithFormatter(f FileFormatter) Option {
	return func(m *Manager) {
		m.formatter = f
	}
}

// 🏭 New creates a new status manager. Relative paths are resolved against
// baseDir; absolute paths are used as they are.
func New(baseDir string, logger *zerolog.Logger, opts ...Option) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	m := &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 Checksum returns the hex SHA-256 of content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// 🔒 WriteFileAtomic writes content to a temporary file next to path and
// renames it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) writeFile(path string, content []byte) error {
	return WriteFileAtomic(m.getAbsPath(path), content, 0644)
}

func (m *Manager) deleteFile(path string) error {
	if err := os.Remove(m.getAbsPath(path)); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// 🗑️ RemoveOutput deletes a stale output file and tracks it as deleted
func (m *Manager) RemoveOutput(ctx context.Context, path string) (FileInfo, error) {
	info := FileInfo{Path: path, Status: StatusDeleted}
	if err := m.deleteFile(path); err != nil {
		info.Status = StatusFailed
		info.Error = err
		m.TrackFile(ctx, path, info)
		return info, err
	}
	m.TrackFile(ctx, path, info)
	return info, nil
}

// 📝 WriteOutput compares content with what is on disk and writes only when
// they differ. The outcome is tracked and returned.
func (m *Manager) WriteOutput(ctx context.Context, path string, content []byte) (FileInfo, error) {
	info := FileInfo{
		Path:     path,
		Size:     int64(len(content)),
		Checksum: Checksum(content),
	}

	existing, err := os.ReadFile(m.getAbsPath(path))
	switch {
	case err == nil && Checksum(existing) == info.Checksum:
		info.Status = StatusUnchanged
	case err == nil:
		info.Status = StatusModified
	case os.IsNotExist(err):
		info.Status = StatusNew
	default:
		info.Status = StatusFailed
		info.Error = errors.Errorf("reading existing file: %w", err)
		m.TrackFile(ctx, path, info)
		return info, info.Error
	}

	if info.Status != StatusUnchanged {
		if err := m.writeFile(path, content); err != nil {
			info.Status = StatusFailed
			info.Error = err
			m.TrackFile(ctx, path, info)
			return info, err
		}
	}

	m.TrackFile(ctx, path, info)
	return info, nil
}

// StatusReporter interface implementation

func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = info
	msg := m.formatter.FormatFileOperation(path, info.Status)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Info().Str("path", path).Str("status", info.Status.String()).Msg(msg)
}

// ListFiles returns every tracked file ordered by path
func (m *Manager) ListFiles(ctx context.Context) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (m *Manager) Summary(ctx context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return summarize(m.files)
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.logger.Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

// Advance marks one more unit of work as processed
func (m *Manager) Advance(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := summarize(m.files)
	m.logger.Info().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatSummary(s))
}

func summarize(files map[string]FileInfo) Summary {
	var s Summary
	for _, info := range files {
		switch info.Status {
		case StatusNew:
			s.New++
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		case StatusDeleted:
			s.Deleted++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

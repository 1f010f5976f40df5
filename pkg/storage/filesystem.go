// Package storage persists the cached project data master between runs so
// unchanged status files are not re-parsed on every invocation.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// DataDir is the state directory inside the data repository root. It is
// hidden so the change detector never picks it up as a status file.
const DataDir = ".dailyread"

const MasterFile = "projects.json"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the data repository root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the filename stays within the state directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, DataDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

// Initialize creates the state directory if it does not exist.
func (r *FilesystemRepository) Initialize() error {
	return os.MkdirAll(filepath.Join(r.root, DataDir), 0750)
}

// IsInitialized reports whether the state directory exists.
func (r *FilesystemRepository) IsInitialized() bool {
	info, err := os.Stat(filepath.Join(r.root, DataDir))
	return err == nil && info.IsDir()
}

// LoadMaster reads the cached master. A missing state file yields an empty
// master, not an error: the first run parses everything from scratch.
func (r *FilesystemRepository) LoadMaster() (*domain.ProjectDataMaster, error) {
	retryer := retry.New[*domain.ProjectDataMaster](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*domain.ProjectDataMaster, error) {
		path, err := r.ResolvePath(MasterFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return domain.NewProjectDataMaster(), nil
			}
			return nil, fmt.Errorf("failed to read master file: %w", err)
		}

		var master domain.ProjectDataMaster
		if err := json.Unmarshal(data, &master); err != nil {
			return nil, fmt.Errorf("failed to unmarshal master: %w", err)
		}
		if master.Records == nil {
			master.Records = make(map[string]*domain.ProjectDataRecord)
		}
		return &master, nil
	})
}

// SaveMaster writes the master back to the state file.
func (r *FilesystemRepository) SaveMaster(master *domain.ProjectDataMaster) error {
	if master == nil {
		return fmt.Errorf("master is nil")
	}

	path, err := r.ResolvePath(MasterFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(master, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal master: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

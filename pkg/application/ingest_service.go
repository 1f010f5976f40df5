// Package application wires the pipeline stages of a report run: ingesting
// changed status files, reconciling them against portal orders, and
// producing the per-owner reports.
package application

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
	"github.com/felixgeelhaar/dailyread/pkg/storage"
)

// IngestService refreshes the project data master from the version-controlled
// data repository.
type IngestService struct {
	repo   *storage.FilesystemRepository
	git    *gitrepo.Repository
	logger *slog.Logger
}

func NewIngestService(repo *storage.FilesystemRepository, git *gitrepo.Repository, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{repo: repo, git: git, logger: logger}
}

// BuildMaster loads the cached master and re-parses only the files the
// change detector reports as changed. Records for unchanged files carry over
// from the cache. When no cache exists yet the change detector alone cannot
// see committed, unmodified files, so an empty master triggers a full pass
// over every tracked record file. Files that fail to parse are logged and
// skipped; one bad record never aborts the run. The refreshed master is
// persisted before it is returned.
func (s *IngestService) BuildMaster(ctx context.Context) (*domain.ProjectDataMaster, error) {
	master, err := s.repo.LoadMaster()
	if err != nil {
		return nil, err
	}

	changes, err := s.git.Changes(ctx)
	if err != nil {
		return nil, err
	}

	paths := changes.All()
	if master.Len() == 0 {
		tracked, err := s.git.TrackedFiles(ctx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(paths))
		for _, p := range paths {
			seen[p] = struct{}{}
		}
		for _, p := range tracked {
			if _, ok := seen[p]; ok {
				continue
			}
			paths = append(paths, p)
		}
		if len(tracked) > 0 {
			s.logger.Info("no cached master, parsing all tracked status files", "tracked", len(tracked))
		}
	}

	for _, rel := range paths {
		path := filepath.Join(s.git.Dir(), rel)
		// #nosec G304 -- Paths come from git's own listing of the data repository
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable status file", "path", rel, "error", err)
			continue
		}

		rec, err := domain.ParseRecord(rel, data)
		if err != nil {
			s.logger.Warn("skipping status file", "path", rel, "error", err)
			continue
		}
		master.Put(rec)
		s.logger.Debug("refreshed project record", "path", rel, "project", rec.InternalID)
	}

	if err := s.repo.SaveMaster(master); err != nil {
		return nil, err
	}

	s.logger.Info("project data master ready", "projects", master.Len(), "parsed", len(paths))
	return master, nil
}

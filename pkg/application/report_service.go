package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/render"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// Uploader puts a rendered report on an order in the portal.
type Uploader interface {
	UploadReport(ctx context.Context, iuid string, report []byte) error
}

// ReportOptions control where the rendered reports go.
type ReportOptions struct {
	// OutDir, when set, receives one HTML file per owner.
	OutDir string
	// Upload sends each owner's report to the portal, one upload per order.
	Upload bool
}

// ReportService renders and distributes the per-owner reports.
type ReportService struct {
	renderer *render.Renderer
	uploader Uploader
	priority []string
	logger   *slog.Logger
}

func NewReportService(renderer *render.Renderer, uploader Uploader, priority []string, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{renderer: renderer, uploader: uploader, priority: priority, logger: logger}
}

// Generate renders the report document for a single owner.
func (s *ReportService) Generate(owner string, group *domain.OwnerGroup, commits []gitrepo.Commit) (string, error) {
	legend := make([]string, 0, len(s.priority)+1)
	legend = append(legend, domain.StatusPending)
	legend = append(legend, domain.ReversePriority(s.priority)...)

	return s.renderer.Render(render.ReportData{
		OwnerEmail: owner,
		PullDate:   group.PullDate.Format(domain.DateLayout),
		Groups:     render.BuildGroups(group, s.priority),
		Legend:     legend,
		PortalURL:  domain.PortalURL,
		Commits:    commits,
	})
}

// GenerateAll renders one report per owner, writes it under opts.OutDir when
// set, and uploads it to each of the owner's orders when requested. A failed
// upload is logged and skipped; the remaining uploads and owners continue.
// A failed file write aborts the run: without output the whole pass is
// pointless.
func (s *ReportService) GenerateAll(ctx context.Context, groups map[string]*domain.OwnerGroup, commits []gitrepo.Commit, opts ReportOptions) error {
	logger := s.logger.With("run", uuid.NewString())

	owners := make([]string, 0, len(groups))
	for owner := range groups {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		group := groups[owner]

		report, err := s.Generate(owner, group, commits)
		if err != nil {
			return err
		}

		if opts.OutDir != "" {
			path := filepath.Join(opts.OutDir, domain.ReportFileName(owner, group.PullDate))
			logger.Info("writing report", "path", path)
			if err := os.WriteFile(path, []byte(report), 0600); err != nil {
				return fmt.Errorf("write report %s: %w", path, err)
			}
		}

		if opts.Upload && s.uploader != nil {
			for _, order := range group.Orders() {
				if err := s.uploader.UploadReport(ctx, order.IUID, []byte(report)); err != nil {
					logger.Error("report upload failed", "order", order.Identifier, "error", err)
					continue
				}
				logger.Info("uploaded report", "order", order.Identifier)
			}
		}
	}
	return nil
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/portal"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/render"
	"github.com/felixgeelhaar/dailyread/pkg/application"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
	"github.com/felixgeelhaar/dailyread/pkg/storage"
)

const recentCommitCount = 10

var (
	generateNode         string
	generateOwner        string
	generateStatus       string
	generateAllYears     bool
	generateUpload       bool
	generateOut          string
	generateClosedBefore int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one reconciliation pass and produce the PI reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return MapError(err)
		}

		client, err := portal.NewClient(cfg.OrderPortalURL, cfg.OrderPortalAPIKey)
		if err != nil {
			return MapError(err)
		}

		repo := storage.NewFilesystemRepository(cfg.DataLocation)
		if err := repo.Initialize(); err != nil {
			return err
		}
		git := gitrepo.Open(cfg.DataLocation)

		ingest := application.NewIngestService(repo, git, logger)
		master, err := ingest.BuildMaster(ctx)
		if err != nil {
			return MapError(err)
		}

		fetchOpts := portal.FetchOptions{
			AssignedNode: generateNode,
			Status:       generateStatus,
			Recent:       !generateAllYears,
		}
		var orders []domain.Order
		if generateOwner != "" {
			orders, err = client.FetchByOwner(ctx, generateOwner, fetchOpts)
		} else {
			orders, err = client.FetchAll(ctx, fetchOpts)
		}
		if err != nil {
			return MapError(err)
		}
		logger.Info("fetched orders", "count", len(orders))

		reconciler := application.NewReconcileService(cfg.StatusPriority, logger)
		groups := reconciler.Reconcile(orders, master, time.Now(), application.ReconcileOptions{
			AssignedNode:     generateNode,
			ClosedBeforeDays: generateClosedBefore,
		})

		commits, err := git.RecentCommits(ctx, recentCommitCount)
		if err != nil {
			logger.Warn("could not list recent commits", "error", err)
		}

		renderer, err := render.New()
		if err != nil {
			return err
		}

		outDir := generateOut
		if outDir == "" {
			outDir = cfg.ReportsLocation
		}
		if outDir != "" {
			if err := os.MkdirAll(outDir, 0750); err != nil {
				return fmt.Errorf("create reports location: %w", err)
			}
		}

		reports := application.NewReportService(renderer, client, cfg.StatusPriority, logger)
		if err := reports.GenerateAll(ctx, groups, commits, application.ReportOptions{
			OutDir: outDir,
			Upload: generateUpload,
		}); err != nil {
			return MapError(err)
		}

		fmt.Printf("Generated %d report(s)\n", len(groups))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateNode, "node", "", "only reconcile orders assigned to this node")
	generateCmd.Flags().StringVar(&generateOwner, "owner", "", "fetch a single owner's orders instead of all")
	generateCmd.Flags().StringVar(&generateStatus, "status", "", "only fetch orders with this portal status")
	generateCmd.Flags().BoolVar(&generateAllYears, "all-years", false, "fetch orders across all years instead of only recent ones")
	generateCmd.Flags().BoolVar(&generateUpload, "upload", false, "upload each report to the order portal")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "reports output directory (overrides "+config.EnvReportsLocation+")")
	generateCmd.Flags().IntVar(&generateClosedBefore, "closed-before-days", application.DefaultClosedBeforeDays, "drop orders closed longer ago than this many days")
	RootCmd.AddCommand(generateCmd)
}

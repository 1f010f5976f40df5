package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/render"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the dailyread environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Running dailyread doctor...")

		hasIssues := false
		check := func(name string, fn func() error) {
			fmt.Printf("Checking %s... ", name)
			if err := fn(); err != nil {
				fmt.Printf("FAIL\n  Error: %v\n", err)
				hasIssues = true
			} else {
				fmt.Printf("PASS\n")
			}
		}

		var cfg *config.Config
		check("Configuration", func() error {
			var err error
			cfg, err = config.Load()
			return err
		})
		if cfg == nil {
			return fmt.Errorf("doctor found issues")
		}

		check("Data Location", func() error {
			info, err := os.Stat(cfg.DataLocation)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", cfg.DataLocation)
			}
			return nil
		})

		check("Data Repository History", func() error {
			if !gitrepo.Open(cfg.DataLocation).HasCommits(cmd.Context()) {
				return fmt.Errorf("no commits in %s; modified files cannot be detected until the first commit", cfg.DataLocation)
			}
			return nil
		})

		check("Reports Location", func() error {
			if cfg.ReportsLocation == "" {
				return nil // optional: unset means no files are written
			}
			return os.MkdirAll(cfg.ReportsLocation, 0750)
		})

		check("Report Template", func() error {
			_, err := render.New()
			return err
		})

		check("Status Priority", func() error {
			if len(cfg.StatusPriority) == 0 {
				return fmt.Errorf("status priority ordering is empty")
			}
			return nil
		})

		if hasIssues {
			return fmt.Errorf("doctor found issues")
		}
		fmt.Println("All checks passed.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

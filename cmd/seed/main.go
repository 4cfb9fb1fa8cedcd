package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
	"github.com/frenchcert/frenchcert/internal/resources"
)

func main() {
	if err := rootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCmd builds the seed command. Logs go to logs.
func rootCmd(logs io.Writer) *cobra.Command {
	var (
		file string
		list bool
	)

	cmd := &cobra.Command{
		Use:           "seed [seeder...]",
		Short:         "Seed the REST backend with catalog fixtures",
		Long:          "Create or update fields, certifications, trainings, companies and pages from YAML fixtures. Without arguments every seeder runs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprintln(out, "Available seeders:")
				for _, s := range listSeeders() {
					fmt.Fprintf(out, "  - %s: %s\n", s.Name(), s.Description())
				}
				return nil
			}

			fixtures, err := loadFixtures(file)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			infra, err := infrastructure.NewWithWriter(cfg, logs)
			if err != nil {
				return err
			}
			domain := resources.NewDomain(infra.Client, infra.Logger, cfg.Pagination)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run := newRun(domain, fixtures, infra.Logger.With("command", "seed"))
			if err := runSeeders(ctx, run, args); err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Fprintf(out, "seeding completed: %d created, %d updated\n", run.Created, run.Updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "external seed file (overrides embedded)")
	cmd.Flags().BoolVar(&list, "list", false, "list available seeders")
	return cmd
}

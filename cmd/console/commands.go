package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/console"
	"github.com/frenchcert/frenchcert/internal/infrastructure"
	"github.com/frenchcert/frenchcert/internal/resources"
	"github.com/frenchcert/frenchcert/pkg/logging"
)

const defaultLogFile = "console.log"

type options struct {
	logFile string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "frenchcert-console",
		Short:         "French Cert back-office in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "file receiving the console logs (default: logging.file, else "+defaultLogFile+")")

	root.AddCommand(
		browseCmd(opts),
		resourcesCmd(opts),
	)
	return root
}

func browseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [resource]",
		Short: "Open the back-office, optionally on one resource list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := console.New(ctx, rt.catalog, console.Options{Logger: rt.infra.Logger})
			if len(args) == 1 {
				if err := m.Browse(args[0]); err != nil {
					return err
				}
			}
			return console.Run(ctx, m)
		},
	}
}

func resourcesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resources browse accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			for _, res := range rt.catalog.All() {
				info := res.Info()
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", info.Name, info.Title)
			}
			return nil
		},
	}
}

// runtime is what every command needs: configuration, the backend client
// and a logger writing to a file so the terminal stays clean.
type runtime struct {
	infra   *infrastructure.Infrastructure
	catalog *resources.Catalog
	close   func() error
}

func newRuntime(opts *options) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch {
	case opts.logFile != "":
		cfg.Logging.File = opts.logFile
	case cfg.Logging.File == "":
		cfg.Logging.File = defaultLogFile
	}
	logs, closeLogs, err := logging.Open(&cfg.Logging, nil)
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.NewWithWriter(cfg, logs)
	if err != nil {
		closeLogs()
		return nil, err
	}

	domain := resources.NewDomain(infra.Client, infra.Logger, cfg.Pagination)
	catalog := resources.NewCatalog(domain, cfg.Pagination, resources.Settings{
		PageSize: cfg.Pagination.DefaultPageSize,
		Debounce: cfg.List.DebounceDuration(),
	})

	return &runtime{infra: infra, catalog: catalog, close: closeLogs}, nil
}

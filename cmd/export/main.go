// Package main provides the one-shot metadata export CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"thothexport/internal/httpx"
	"thothexport/internal/metadata"
	"thothexport/internal/source"
)

type options struct {
	Spec      string `validate:"required"`
	Work      string `validate:"omitempty,uuid"`
	Publisher string `validate:"omitempty,uuid"`
	Output    string
	Source    string `validate:"omitempty,oneof=graphql postgres"`
}

// openService builds the export service from the configured work source.
type openService func(ctx context.Context, kind string) (*metadata.Service, func(), error)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd(openFromEnv).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(open openService) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a metadata record for a work or a publisher",
		Long: `Export a metadata record for a single work or for every work of a publisher.

Examples:
  export --spec onix_3.0::project_muse --work <uuid>
  export --spec csv::thoth --publisher <uuid> -o records/
  export list
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			svc, closeFn, err := open(cmd.Context(), opts.Source)
			if err != nil {
				return err
			}
			defer closeFn()
			return export(cmd.Context(), svc, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "Specification id, e.g. onix_3.0::project_muse")
	cmd.Flags().StringVar(&opts.Work, "work", "", "Work id to export")
	cmd.Flags().StringVar(&opts.Publisher, "publisher", "", "Publisher id whose works to export")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "Output file or directory, - for stdout")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Work source: graphql or postgres (default from WORK_SOURCE)")
	cmd.MarkFlagsMutuallyExclusive("work", "publisher")

	cmd.AddCommand(listCmd())
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available specifications",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range metadata.Specifications() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.ID, s.Name)
			}
		},
	}
}

func (o options) validate() error {
	if err := httpx.NewValidator().Struct(o); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if (o.Work == "") == (o.Publisher == "") {
		return errors.New("exactly one of --work or --publisher is required")
	}
	return nil
}

func openFromEnv(ctx context.Context, kind string) (*metadata.Service, func(), error) {
	cfg, err := source.ConfigFromEnv()
	if kind != "" {
		// The flag wins over an invalid WORK_SOURCE.
		cfg.Kind = source.Kind(kind)
		err = nil
	}
	if err != nil {
		return nil, nil, err
	}

	src, err := source.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return metadata.NewService(src), src.Close, nil
}

func export(ctx context.Context, svc *metadata.Service, opts options, stdout io.Writer) error {
	var (
		rec metadata.Record
		err error
	)
	if opts.Work != "" {
		rec, err = svc.WorkRecord(ctx, opts.Spec, uuid.MustParse(opts.Work))
	} else {
		rec, err = svc.PublisherRecord(ctx, opts.Spec, uuid.MustParse(opts.Publisher))
	}
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		_, err := stdout.Write(rec.Body)
		return err
	}

	path := opts.Output
	if info, statErr := os.Stat(path); strings.HasSuffix(path, string(os.PathSeparator)) || (statErr == nil && info.IsDir()) {
		path = filepath.Join(path, rec.Filename)
	}
	if err := os.WriteFile(path, rec.Body, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	log.Printf("wrote %s (%d bytes)", path, len(rec.Body))
	return nil
}

package cli

import (
	"context"
	"fmt"

	"wordcards/internal/domain"
	"wordcards/internal/service"

	"github.com/spf13/cobra"
)

// Services are the domain services every command works against.
type Services struct {
	Store      *service.WordStore
	Importer   *service.ImportService
	Stats      *service.StatsService
	Categories []domain.Category
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"

	services *Services
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wordcards CLI.
func NewRootCommand(svc *Services) *cobra.Command {
	opts := &RootOptions{services: svc}

	cmd := &cobra.Command{
		Use:   "wordcards",
		Short: "Vocabulary flashcards",
		Long:  "Browse, review and import vocabulary flashcards stored in the local word slot.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			svc.Store.Load(commandContext(cmd))
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMasterCommand(opts))
	cmd.AddCommand(NewReviewCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// formatter returns an OutputFormatter writing to the command's output.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format: o.Format,
		Writer: cmd.OutOrStdout(),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

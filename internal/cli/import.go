package cli

import (
	"fmt"
	"io"
	"os"

	"wordcards/internal/domain"
	"wordcards/internal/service"

	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command and its sources.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import words from a bundle",
		Long: `Import words from a JSON bundle {categories, words, metadata?}.

Words whose text already exists are skipped.

Examples:
  wordcards import demo
  wordcards import url https://example.com/words.json
  wordcards import file ./words.json`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Import the built-in demo words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rootOpts.services.Importer.ImportDemo(commandContext(cmd))
			return renderImport(rootOpts, cmd, result, err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "url <url>",
		Short: "Import a bundle served over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rootOpts.services.Importer.ImportFromURL(commandContext(cmd), args[0])
			return renderImport(rootOpts, cmd, result, err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "file <path>",
		Short: "Import a bundle from a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open bundle", err)
			}
			defer f.Close()

			result, err := rootOpts.services.Importer.ImportJSON(commandContext(cmd), f, service.SourceFile)
			return renderImport(rootOpts, cmd, result, err)
		},
	})

	return cmd
}

func renderImport(opts *RootOptions, cmd *cobra.Command, result domain.ImportResult, err error) error {
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}
	return opts.formatter(cmd).Render(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Message())
	})
}

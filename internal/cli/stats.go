package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := rootOpts.services.Stats.Summary()

			return rootOpts.formatter(cmd).Render(stats, func(w io.Writer) {
				fmt.Fprintf(w, "Mastered %d / %d\n", stats.Mastered, stats.Total)
				fmt.Fprintf(w, "Unmastered %d\n", stats.Unmastered)
				fmt.Fprintf(w, "Reviews %d\n\n", stats.Reviews)
				for _, cc := range stats.Categories {
					fmt.Fprintf(w, "%s: %d words, %d mastered\n", cc.Category.Name, cc.Words, cc.Mastered)
				}
				if stats.Uncategorized > 0 {
					fmt.Fprintf(w, "Uncategorized: %d words\n", stats.Uncategorized)
				}
			})
		},
	}
}

// CategoryRow is one line of the categories command output.
type CategoryRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Words int    `json:"words"`
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List word categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := rootOpts.services.Store

			rows := make([]CategoryRow, 0, len(rootOpts.services.Categories))
			for _, c := range rootOpts.services.Categories {
				rows = append(rows, CategoryRow{
					ID:    c.ID,
					Name:  c.Name,
					Color: c.Color,
					Words: len(store.WordsByCategory(c.ID)),
				})
			}

			return rootOpts.formatter(cmd).Render(rows, func(w io.Writer) {
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.ID, r.Name, r.Color, r.Words)
				}
			})
		},
	}
}

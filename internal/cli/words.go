package cli

import (
	"fmt"
	"io"

	"wordcards/internal/domain"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category   string
	Mastered   bool
	Unmastered bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words",
		Long: `List stored words in insertion order.

Text output columns: mastered mark, id, word, category, review count.

Examples:
  wordcards list
  wordcards list --category travel
  wordcards list --unmastered --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only words in this category")
	cmd.Flags().BoolVar(&opts.Mastered, "mastered", false, "only mastered words")
	cmd.Flags().BoolVar(&opts.Unmastered, "unmastered", false, "only words not yet mastered")
	cmd.MarkFlagsMutuallyExclusive("mastered", "unmastered")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	store := opts.services.Store

	var words []domain.Word
	switch {
	case opts.Mastered:
		words = store.MasteredWords()
	case opts.Unmastered:
		words = store.UnmasteredWords()
	default:
		words = store.Words()
	}

	if opts.Category != "" {
		filtered := words[:0]
		for _, w := range words {
			if w.Category == opts.Category {
				filtered = append(filtered, w)
			}
		}
		words = filtered
	}

	return opts.formatter(cmd).Render(words, func(w io.Writer) {
		for _, word := range words {
			writeWordLine(w, word)
		}
	})
}

func writeWordLine(w io.Writer, word domain.Word) {
	mark := "[ ]"
	if word.Mastered {
		mark = "[x]"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", mark, word.ID, word.Word, word.Category, word.ReviewCount)
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one word card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, err := lookupWord(rootOpts, args[0])
			if err != nil {
				return err
			}
			return rootOpts.formatter(cmd).Render(word, func(w io.Writer) {
				writeCard(w, word)
			})
		},
	}
}

func writeCard(w io.Writer, word domain.Word) {
	fmt.Fprintf(w, "%s %s\n", word.Word, word.Pronunciation)
	fmt.Fprintf(w, "  meaning:  %s\n", word.Meaning)
	fmt.Fprintf(w, "  example:  %s\n", word.Example)
	fmt.Fprintf(w, "  category: %s\n", word.Category)
	fmt.Fprintf(w, "  mastered: %t\n", word.Mastered)
	fmt.Fprintf(w, "  reviews:  %d\n", word.ReviewCount)
}

// NewMasterCommand creates the master command.
func NewMasterCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "master <id>",
		Short: "Mark a word as mastered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := rootOpts.services.Store.MarkMastered(commandContext(cmd), id); err != nil {
				return WrapExitError(ExitFailure, "failed to save words", err)
			}

			word, err := lookupWord(rootOpts, id)
			if err != nil {
				return err
			}
			return rootOpts.formatter(cmd).Render(word, func(w io.Writer) {
				fmt.Fprintf(w, "%s mastered\n", word.Word)
			})
		},
	}
}

// NewReviewCommand creates the review command.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "review <id>",
		Short: "Reveal a word card and count the review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := rootOpts.services.Store.IncrementReviewCount(commandContext(cmd), id); err != nil {
				return WrapExitError(ExitFailure, "failed to save words", err)
			}

			word, err := lookupWord(rootOpts, id)
			if err != nil {
				return err
			}
			return rootOpts.formatter(cmd).Render(word, func(w io.Writer) {
				writeCard(w, word)
			})
		},
	}
}

func lookupWord(opts *RootOptions, id string) (domain.Word, error) {
	word, ok := opts.services.Store.Word(id)
	if !ok {
		return domain.Word{}, NewExitError(ExitCommandError, fmt.Sprintf("word %q not found", id))
	}
	return word, nil
}

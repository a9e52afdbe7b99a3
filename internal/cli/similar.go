package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/ui"
)

var similarCmd = &cobra.Command{
	Use:   "similar <note>",
	Short: "Show the notes that score as most similar to a note",
	Long: `Ranks every other note in the vault against the target and prints the top
scores. Useful for seeing which notes 'enhance' would pick as examples.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		rel := resolveNoteArg(args[0])
		doc, err := v.ReadDocument(ctx, rel)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "Note paths are relative to the vault root")
		}

		ix, err := openSyncedIndex(ctx, v)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer ix.Close()

		scored, err := similar.ScoreCandidates(ctx, noteStore{v}, ix, similar.Target{Path: rel, Content: doc.Content})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if limit > 0 && len(scored) > limit {
			scored = scored[:limit]
		}

		if isJSONOutput() {
			outputSuccess(scored, &Meta{Count: len(scored)})
			return nil
		}
		if len(scored) == 0 {
			fmt.Println(ui.Info("No other notes with frontmatter to compare against."))
			return nil
		}
		for _, s := range scored {
			fmt.Printf("%6.1f  %s\n", s.Score, ui.FilePath(s.Path))
		}
		return nil
	},
}

func init() {
	similarCmd.Flags().Int("limit", 10, "Maximum number of notes to show")
	rootCmd.AddCommand(similarCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/index"
	"github.com/inkfell/quill/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Refresh the vault index",
	Long: `Scans the vault and refreshes the SQLite index of frontmatter, tags, and
links. Only files whose modification time changed are re-read; deleted files
are removed from the index.

Commands that need the index refresh it themselves, so reindex is mostly
useful for warming the index on a large vault.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		ix, err := index.Open(v)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer ix.Close()

		updated, removed, err := ix.Sync(ctx, v)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"updated": updated, "removed": removed}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Indexed %s: %d updated, %d removed", ui.FilePath(v.Root()), updated, removed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

package cli

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/prompt"
	"github.com/inkfell/quill/internal/ui"
	"github.com/inkfell/quill/internal/vault"
)

// maxSummaryChars caps how much of each note is shown to the model.
const maxSummaryChars = 4000

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize recently modified notes",
	Long: `Collects the notes modified within the last few days and asks the model for
a digest of what changed.

Examples:
  quill summary
  quill summary --days 14 --out reviews/biweekly.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		days, _ := cmd.Flags().GetInt("days")
		limit, _ := cmd.Flags().GetInt("limit")
		out, _ := cmd.Flags().GetString("out")

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		cutoff := time.Now().AddDate(0, 0, -days)
		var recent []vault.NoteInfo
		err = v.Walk(ctx, func(info vault.NoteInfo) error {
			if info.ModifiedAt.After(cutoff) {
				recent = append(recent, info)
			}
			return nil
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		sort.Slice(recent, func(i, j int) bool {
			return recent[i].ModifiedAt.After(recent[j].ModifiedAt)
		})
		if limit > 0 && len(recent) > limit {
			recent = recent[:limit]
		}

		if len(recent) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"notes": 0}, nil)
				return nil
			}
			fmt.Println(ui.Info(fmt.Sprintf("No notes modified in the last %d day(s).", days)))
			return nil
		}

		entries := make([]prompt.SummaryEntry, 0, len(recent))
		for _, info := range recent {
			doc, err := v.ReadDocument(ctx, info.Path)
			if err != nil {
				continue
			}
			content := truncateAtRune(doc.Content, maxSummaryChars)
			entries = append(entries, prompt.SummaryEntry{Path: info.Path, Content: content})
		}

		builder := newPromptBuilder(v)
		reply, err := invokeModel(ctx, "Summarizing...", builder.Summary(entries))
		if err != nil {
			return handleError(ErrModelError, err, "Check that the model command is installed and on PATH")
		}

		if out != "" {
			if err := v.WriteDocument(resolveNoteArg(out), reply); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"summary": reply, "notes": len(entries)}, &Meta{Count: len(entries)})
			return nil
		}
		rendered, err := ui.RenderMarkdown(reply, ui.TermWidth())
		if err != nil {
			rendered = reply
		}
		fmt.Print(rendered)
		if out != "" {
			fmt.Println(ui.Successf("Saved to %s", ui.FilePath(resolveNoteArg(out))))
		}
		return nil
	},
}

// truncateAtRune cuts s to at most n bytes without splitting a rune.
func truncateAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func init() {
	summaryCmd.Flags().Int("days", 7, "How many days back to look")
	summaryCmd.Flags().Int("limit", 20, "Maximum number of notes to summarize")
	summaryCmd.Flags().String("out", "", "Vault-relative note to write the summary to")
	rootCmd.AddCommand(summaryCmd)
}

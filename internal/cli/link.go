package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/prompt"
	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/ui"
	"github.com/inkfell/quill/internal/wikilink"
)

var linkCmd = &cobra.Command{
	Use:   "link <note>",
	Short: "Insert wiki-links for note titles mentioned in a note",
	Long: `Scans a note's prose for mentions of other notes' titles and wraps them in
[[wiki-links]]. Mentions inside frontmatter, code, or existing links are left
alone, and the change is verified to touch nothing but the inserted brackets.

With --strategy all-entities the model also proposes entity mentions, which
are kept only when they match an existing note title.

Examples:
  # Link the first mention of each known title
  quill link journal/2026-08-30.md --write

  # Link every mention
  quill link journal/2026-08-30.md --mode all --write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		write, _ := cmd.Flags().GetBool("write")
		strategyFlag, _ := cmd.Flags().GetString("strategy")
		modeFlag, _ := cmd.Flags().GetString("mode")

		linkCfg := getConfig().Link
		if strategyFlag == "" {
			strategyFlag = linkCfg.Strategy
		}
		if modeFlag == "" {
			modeFlag = linkCfg.Mode
		}

		strategy := wikilink.Strategy(strategyFlag)
		switch strategy {
		case "":
			strategy = wikilink.StrategyExisting
		case wikilink.StrategyExisting, wikilink.StrategyAllEntities:
		default:
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown strategy %q", strategyFlag),
				"Use 'existing-only' or 'all-entities'")
		}

		mode := wikilink.Mode(modeFlag)
		switch mode {
		case "":
			mode = wikilink.ModeFirst
		case wikilink.ModeFirst, wikilink.ModeAll:
		default:
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown mode %q", modeFlag),
				"Use 'first' or 'all'")
		}

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		rel := resolveNoteArg(args[0])
		doc, err := v.ReadDocument(ctx, rel)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "Note paths are relative to the vault root")
		}

		titles, err := v.Titles(ctx)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		titles = withoutTitle(titles, similar.TitleOf(rel))

		opts := wikilink.GenerateOptions{
			Content:  doc.Content,
			Titles:   titles,
			Strategy: strategy,
			Mode:     mode,
		}
		if strategy == wikilink.StrategyAllEntities {
			builder := newPromptBuilder(v)
			opts.Identify = func(content string, known []string) ([]wikilink.Span, error) {
				reply, err := invokeModel(ctx, "Identifying entities...", builder.IdentifyEntities(content, known))
				if err != nil {
					return nil, err
				}
				spans, err := prompt.ParseSpansReply(reply)
				if err != nil {
					return nil, err
				}
				return verifySpans(content, spans), nil
			}
		}

		updated, err := wikilink.Generate(opts)
		if err != nil {
			if errors.Is(err, wikilink.ErrUnsafeChange) {
				return handleError(ErrUnsafeChange, err, "The note was left untouched")
			}
			return handleError(ErrModelError, err, "")
		}

		added := strings.Count(updated, "[[") - strings.Count(doc.Content, "[[")
		if added == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "links_added": 0}, nil)
				return nil
			}
			fmt.Println(ui.Info("No new links to insert."))
			return nil
		}

		if !write {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "links_added": added, "preview": updated}, nil)
				return nil
			}
			fmt.Println(ui.RenderChange(doc.Content, updated))
			fmt.Println(ui.Hint("Run again with --write to apply."))
			return nil
		}

		if err := v.WriteDocument(rel, updated); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": rel, "links_added": added, "written": true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Inserted %d link(s) into %s", added, ui.FilePath(rel)))
		return nil
	},
}

// verifySpans drops model-reported spans whose offsets do not cover the
// text they claim to.
func verifySpans(content string, spans []wikilink.Span) []wikilink.Span {
	var verified []wikilink.Span
	for _, s := range spans {
		if s.Start < 0 || s.End <= s.Start || s.End > len(content) {
			continue
		}
		if content[s.Start:s.End] != s.Text {
			continue
		}
		verified = append(verified, s)
	}
	return verified
}

// withoutTitle removes a note's own title from the link candidates.
func withoutTitle(titles []string, self string) []string {
	var out []string
	for _, t := range titles {
		if strings.EqualFold(t, self) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func init() {
	linkCmd.Flags().Bool("write", false, "Apply the inserted links to the note")
	linkCmd.Flags().String("strategy", "", "Link strategy: existing-only or all-entities")
	linkCmd.Flags().String("mode", "", "Link mode: first (first mention only) or all")
	rootCmd.AddCommand(linkCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/frontmatter"
	"github.com/inkfell/quill/internal/prompt"
	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/ui"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <note>",
	Short: "Fill in a note's frontmatter using similar notes as examples",
	Long: `Finds the notes most similar to the target, shows their frontmatter to the
model as examples, and merges the model's proposal into the note.

The merge never loses data: existing values are kept, missing properties are
adopted, lists are unioned, and a string is only replaced by a strictly longer
string that still contains it.

Examples:
  # Preview the proposed frontmatter
  quill enhance projects/roadmap.md

  # Apply it
  quill enhance projects/roadmap.md --write

  # Use more example notes
  quill enhance projects/roadmap.md --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		write, _ := cmd.Flags().GetBool("write")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = getConfig().Enhance.Limit
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

		ix, err := openSyncedIndex(ctx, v)
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer ix.Close()

		target := similar.Target{Path: rel, Content: doc.Content}
		examples, err := similar.FindSimilarNotes(ctx, noteStore{v}, ix, target, limit)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if len(examples) == 0 {
			return handleErrorMsg(ErrNoSimilarNotes,
				"no similar notes with frontmatter found; nothing to base an enhancement on",
				"Add frontmatter to a few related notes first")
		}

		tags, err := ix.AllTags()
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		titles, err := v.Titles(ctx)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		formatted := similar.FormatExamplesForPrompt(examples, tags, titles)

		builder := newPromptBuilder(v)
		reply, err := invokeModel(ctx, "Enhancing frontmatter...", builder.Enhance(rel, doc.Content, formatted))
		if err != nil {
			return handleError(ErrModelError, err, "Check that the model command is installed and on PATH")
		}

		proposed, err := prompt.ParseFrontmatterReply(reply)
		if err != nil {
			return handleError(ErrModelReplyInvalid, err, "")
		}

		parsed := frontmatter.Parse(doc.Content)
		merged := frontmatter.Merge(parsed.Frontmatter, proposed)
		merged = frontmatter.Order(merged, formatted.PropertyOrder)
		updated := frontmatter.BuildContent(merged, parsed.Body)

		if updated == doc.Content {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "changed": false}, nil)
				return nil
			}
			fmt.Println(ui.Info("No new properties to add."))
			return nil
		}

		if !write {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "changed": true, "preview": updated}, nil)
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
			outputSuccess(map[string]interface{}{"path": rel, "changed": true, "written": true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated %s", ui.FilePath(rel)))
		return nil
	},
}

func init() {
	enhanceCmd.Flags().Bool("write", false, "Apply the merged frontmatter to the note")
	enhanceCmd.Flags().Int("limit", 0, "How many similar notes to use as examples")
	rootCmd.AddCommand(enhanceCmd)
}

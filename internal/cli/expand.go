package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/ui"
)

var expandCmd = &cobra.Command{
	Use:   "expand <note>",
	Short: "Expand a marker in a note into drafted text",
	Long: `Replaces the first occurrence of a marker in the note with text drafted by
the model from the surrounding content.

Examples:
  # Expand the default {{ai}} marker
  quill expand essays/draft.md --write

  # Custom marker with an instruction
  quill expand essays/draft.md --marker "<todo>" --instruction "two short paragraphs"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		write, _ := cmd.Flags().GetBool("write")
		marker, _ := cmd.Flags().GetString("marker")
		instruction, _ := cmd.Flags().GetString("instruction")

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		rel := resolveNoteArg(args[0])
		doc, err := v.ReadDocument(ctx, rel)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "Note paths are relative to the vault root")
		}

		if !strings.Contains(doc.Content, marker) {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("marker %q not found in %s", marker, rel),
				"Add the marker where the drafted text should go")
		}

		builder := newPromptBuilder(v)
		reply, err := invokeModel(ctx, "Expanding...", builder.Expand(doc.Content, marker, instruction))
		if err != nil {
			return handleError(ErrModelError, err, "Check that the model command is installed and on PATH")
		}
		text := strings.TrimSpace(reply)
		if text == "" {
			return handleErrorMsg(ErrModelReplyInvalid, "model returned no text", "")
		}

		updated := strings.Replace(doc.Content, marker, text, 1)

		if !write {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "preview": updated}, nil)
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
			outputSuccess(map[string]interface{}{"path": rel, "written": true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Expanded %s in %s", marker, ui.FilePath(rel)))
		return nil
	},
}

func init() {
	expandCmd.Flags().Bool("write", false, "Apply the expansion to the note")
	expandCmd.Flags().String("marker", "{{ai}}", "Marker to replace")
	expandCmd.Flags().String("instruction", "", "Extra instruction for the drafted text")
	rootCmd.AddCommand(expandCmd)
}

package cli

import (
	"fmt"
	"path"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/frontmatter"
	"github.com/inkfell/quill/internal/prompt"
	"github.com/inkfell/quill/internal/ui"
)

var titleCmd = &cobra.Command{
	Use:   "title <note>",
	Short: "Suggest a title for a note",
	Long: `Asks the model for a short descriptive title based on the note's content.

By default the suggestion is only printed. --write stores it in the note's
frontmatter, and --rename also moves the file to a slug of the title.

Examples:
  quill title inbox/untitled-3.md
  quill title inbox/untitled-3.md --write --rename`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		write, _ := cmd.Flags().GetBool("write")
		rename, _ := cmd.Flags().GetBool("rename")

		v, err := openVault()
		if err != nil {
			return handleError(ErrVaultNotFound, err, "Check the vault path")
		}

		rel := resolveNoteArg(args[0])
		doc, err := v.ReadDocument(ctx, rel)
		if err != nil {
			return handleError(ErrNoteNotFound, err, "Note paths are relative to the vault root")
		}

		builder := newPromptBuilder(v)
		reply, err := invokeModel(ctx, "Suggesting a title...", builder.Title(doc.Content))
		if err != nil {
			return handleError(ErrModelError, err, "Check that the model command is installed and on PATH")
		}
		title := prompt.ParseTitleReply(reply)
		if title == "" {
			return handleErrorMsg(ErrModelReplyInvalid, "model returned no usable title", "")
		}

		newRel := rel
		if rename {
			newRel = path.Join(path.Dir(rel), slug.Make(title)+".md")
			if path.Clean(newRel) == path.Clean(rel) {
				newRel = rel
			}
		}

		if !write && !rename {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"path": rel, "title": title, "slug": slug.Make(title)}, nil)
				return nil
			}
			fmt.Println(title)
			fmt.Println(ui.Hint("Use --write to store it in frontmatter, --rename to rename the file."))
			return nil
		}

		if write {
			parsed := frontmatter.Parse(doc.Content)
			data := parsed.Frontmatter
			if data == nil {
				data = frontmatter.NewData()
			} else {
				data = data.Clone()
			}
			data.Set("title", frontmatter.String(title))
			if err := v.WriteDocument(rel, frontmatter.BuildContent(data, parsed.Body)); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if rename && newRel != rel {
			if err := v.Rename(rel, newRel); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": newRel, "title": title, "written": write, "renamed": newRel != rel}, nil)
			return nil
		}
		if newRel != rel {
			fmt.Println(ui.Successf("Titled %s and moved to %s", title, ui.FilePath(newRel)))
		} else {
			fmt.Println(ui.Successf("Titled %s", ui.FilePath(rel)))
		}
		return nil
	},
}

func init() {
	titleCmd.Flags().Bool("write", false, "Store the title in the note's frontmatter")
	titleCmd.Flags().Bool("rename", false, "Rename the file to a slug of the title")
	rootCmd.AddCommand(titleCmd)
}

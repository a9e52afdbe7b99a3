package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkfell/quill/internal/index"
	"github.com/inkfell/quill/internal/llm"
	"github.com/inkfell/quill/internal/prompt"
	"github.com/inkfell/quill/internal/similar"
	"github.com/inkfell/quill/internal/skills"
	"github.com/inkfell/quill/internal/ui"
	"github.com/inkfell/quill/internal/vault"
)

// noteStore adapts a vault to the similarity engine's storage interface.
type noteStore struct {
	v *vault.Vault
}

func (s noteStore) ListDocuments(ctx context.Context) ([]string, error) {
	return s.v.ListDocuments(ctx)
}

func (s noteStore) ReadDocument(ctx context.Context, path string) (similar.Document, error) {
	doc, err := s.v.ReadDocument(ctx, path)
	if err != nil {
		return similar.Document{}, err
	}
	return similar.Document{
		Content:    doc.Content,
		ModifiedAt: doc.ModifiedAt,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func openVault() (*vault.Vault, error) {
	return vault.Open(getVaultPath())
}

// openSyncedIndex opens the vault index and refreshes it so snapshots
// reflect the files currently on disk.
func openSyncedIndex(ctx context.Context, v *vault.Vault) (*index.Index, error) {
	ix, err := index.Open(v)
	if err != nil {
		return nil, err
	}
	if _, _, err := ix.Sync(ctx, v); err != nil {
		ix.Close()
		return nil, err
	}
	return ix, nil
}

// loadSkills reads reusable prompt fragments from .quill/skills/*.md.
// A missing directory just means no skills are installed.
func loadSkills(v *vault.Vault) *skills.Cache {
	cache := skills.NewCache()
	dir := filepath.Join(v.Root(), vault.DataDir, "skills")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return cache
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		cache.Put(strings.TrimSuffix(entry.Name(), ".md"), string(text))
	}
	return cache
}

func newPromptBuilder(v *vault.Vault) *prompt.Builder {
	return &prompt.Builder{Skills: loadSkills(v)}
}

// invokeModel runs the configured model CLI, showing a spinner in
// interactive mode.
func invokeModel(ctx context.Context, message, promptText string) (string, error) {
	if !jsonOutput {
		sp := ui.NewSpinner(message)
		sp.Start()
		defer sp.Stop()
	}
	c := getConfig()
	return llm.NewRunner(c.Model.Command, c.Model.Args).Invoke(ctx, promptText)
}

// resolveNoteArg normalizes a note argument to a vault-relative .md path.
func resolveNoteArg(arg string) string {
	p := filepath.ToSlash(strings.TrimSpace(arg))
	p = strings.TrimPrefix(p, "./")
	if !strings.HasSuffix(p, ".md") {
		p += ".md"
	}
	return p
}

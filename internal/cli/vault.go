package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inkfell/quill/internal/config"
	"github.com/inkfell/quill/internal/ui"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage configured vaults",
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vaults from the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c   *config.Config
			err error
		)
		if configPath != "" {
			c, err = config.LoadFrom(configPath)
		} else {
			c, err = config.Load()
		}
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the config file and try again")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"default_vault": c.DefaultVault,
				"vaults":        c.Vaults,
			}, &Meta{Count: len(c.Vaults)})
			return nil
		}

		if len(c.Vaults) == 0 {
			fmt.Println(ui.Info("No vaults configured."))
			fmt.Println(ui.Hint("Add a [vaults] section to " + config.DefaultPath()))
			return nil
		}

		names := make([]string, 0, len(c.Vaults))
		for name := range c.Vaults {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			marker := "  "
			if name == c.DefaultVault {
				marker = "* "
			}
			fmt.Printf("%s%s\t%s\n", marker, name, ui.FilePath(c.Vaults[name]))
		}
		return nil
	},
}

func init() {
	vaultCmd.AddCommand(vaultListCmd)
	rootCmd.AddCommand(vaultCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dsaudit/internal/application/commands"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "List the configured libraries",
	Long: `List the design-system libraries of the library mapping, whether
each one is enabled and how many component and collection keys it maps.

Examples:
  dsaudit-cli libraries
  dsaudit-cli libraries --config ./libraries.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		libs, err := commands.NewListLibrariesCommand(GetCatalog()).Execute(ctx)
		if err != nil {
			return err
		}

		if len(libs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No libraries configured in %s\n", configPath)
			return nil
		}
		for _, l := range libs {
			state := "disabled"
			if l.Enabled {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-8s %4d components %4d collections\n",
				l.Name, state, l.ComponentKeys, l.CollectionKeys)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}

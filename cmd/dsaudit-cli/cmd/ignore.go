package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dsaudit/internal/adapters/document"
	"dsaudit/internal/application/commands"
	"dsaudit/internal/domain"
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage per-document ignores",
	Long: `Ignore components, instances or single hardcoded findings so they no
longer count towards a document's score.

The document is given by its key or by the path of its snapshot.
Orphan keys have the form <node-id>|<component-id>, as printed by
"analyze --details".

Examples:
  dsaudit-cli ignore add checkout.json component 10:3
  dsaudit-cli ignore add checkout.json orphan 'I12:4;3:1|10:3'
  dsaudit-cli ignore list checkout.json`,
}

var ignoreAddCmd = &cobra.Command{
	Use:   "add <document> <component|instance|orphan> <key>",
	Short: "Ignore a component, instance or orphan",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docKey, err := documentKey(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewIgnoreCommand(GetStore(), docKey, args[1], args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var ignoreRemoveCmd = &cobra.Command{
	Use:     "remove <document> <component|instance|orphan> <key>",
	Aliases: []string{"rm"},
	Short:   "Stop ignoring a component, instance or orphan",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docKey, err := documentKey(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewUnignoreCommand(GetStore(), docKey, args[1], args[2]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var ignoreListCmd = &cobra.Command{
	Use:     "list <document>",
	Aliases: []string{"ls"},
	Short:   "List a document's ignores",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docKey, err := documentKey(args[0])
		if err != nil {
			return err
		}
		sets, err := commands.NewListIgnoresCommand(GetStore(), docKey).Execute(ctx)
		if err != nil {
			return err
		}
		printIgnores(cmd, sets)
		return nil
	},
}

var ignoreClearCmd = &cobra.Command{
	Use:   "clear <document>",
	Short: "Drop every ignore of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docKey, err := documentKey(args[0])
		if err != nil {
			return err
		}
		if err := commands.NewClearIgnoresCommand(GetStore(), docKey).Execute(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared ignores of %s\n", docKey)
		return nil
	},
}

// documentKey accepts a document key or the path of a snapshot
func documentKey(ref string) (string, error) {
	if !strings.HasSuffix(ref, ".json") {
		return ref, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return ref, nil
	}
	doc, err := document.Load(ref)
	if err != nil {
		return "", err
	}
	return doc.Key(), nil
}

func printIgnores(cmd *cobra.Command, sets domain.IgnoreSets) {
	out := cmd.OutOrStdout()
	if sets.Len() == 0 {
		fmt.Fprintln(out, "No ignores.")
		return
	}
	for _, kind := range []domain.IgnoreKind{domain.IgnoreComponent, domain.IgnoreInstance, domain.IgnoreOrphan} {
		for _, key := range sets.Keys(kind) {
			fmt.Fprintf(out, "%-9s  %s\n", kind, key)
		}
	}
}

func init() {
	rootCmd.AddCommand(ignoreCmd)
	ignoreCmd.AddCommand(ignoreAddCmd)
	ignoreCmd.AddCommand(ignoreRemoveCmd)
	ignoreCmd.AddCommand(ignoreListCmd)
	ignoreCmd.AddCommand(ignoreClearCmd)
}

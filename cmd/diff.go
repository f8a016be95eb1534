package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/totem-project/totem/pkg/changeset"
	"github.com/totem-project/totem/pkg/changeview"
	"github.com/totem-project/totem/pkg/snapshot"
)

var (
	diffPlain bool
	diffDebug bool
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compute the change-set between two documents",
	Long: `Diff loads two YAML or JSON documents, snapshots them and prints the
structural change-set between them, one line per changed key.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldDoc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		newDoc, err := loadDocument(args[1])
		if err != nil {
			return err
		}

		set := changeset.Diff(snapshot.FromMap(oldDoc), snapshot.FromMap(newDoc))
		if diffDebug {
			spew.Fdump(os.Stderr, set)
		}

		theme := changeview.DarkTheme
		if diffPlain {
			theme = changeview.PlainTheme
		}
		out, err := changeview.Render(set, theme)
		if err != nil {
			return err
		}
		fmt.Print(out)

		if n, _ := set.Len(); n == 0 {
			fmt.Println("no changes")
		} else {
			fmt.Printf("%d change(s)\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().BoolVar(&diffPlain, "plain", false,
		"Render without colors (useful for piped output)")
	diffCmd.Flags().BoolVar(&diffDebug, "debug", false,
		"Dump the raw change-set to stderr")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/totem-project/totem/internal/service"
	"github.com/totem-project/totem/internal/store"
	"github.com/totem-project/totem/pkg/changeset"
	"github.com/totem-project/totem/pkg/changeview"
	"github.com/totem-project/totem/pkg/snapshot"
)

var (
	showObjectID string
	showRevision uint64
	showPlain    bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the changes a revision introduced",
	Long: `Show recomputes and renders the change-set between a stored revision and its
predecessor. The first revision of an object is diffed against the empty
object, so every key shows up as an addition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := openStore()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := rs.Close(); closeErr != nil {
				setupLog.Error().Err(closeErr).Msg("Error closing store")
			}
		}()

		tracker := service.NewTracker(rs, nil, false)
		defer tracker.Close()

		rev, err := tracker.Revision(cmd.Context(), showObjectID, store.RevisionID(showRevision))
		if err != nil {
			return fmt.Errorf("cannot load revision %d: %w", showRevision, err)
		}

		previous := map[string]any{}
		if rev.ID != 0 {
			prevRev, err := tracker.Revision(cmd.Context(), showObjectID, rev.PreviousID)
			if err != nil {
				return fmt.Errorf("cannot load predecessor %s: %w", rev.PreviousID, err)
			}
			previous = prevRev.Object
		}

		set := changeset.Diff(snapshot.FromMap(previous), snapshot.FromMap(rev.Object))

		theme := changeview.DarkTheme
		if showPlain {
			theme = changeview.PlainTheme
		}
		out, err := changeview.Render(set, theme)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showObjectID, "id", "i", "",
		"Object ID the revision belongs to")
	showCmd.Flags().Uint64VarP(&showRevision, "rev", "r", 0,
		"Revision number to show")
	showCmd.Flags().BoolVar(&showPlain, "plain", false,
		"Render without colors (useful for piped output)")
	_ = showCmd.MarkFlagRequired("id")
}

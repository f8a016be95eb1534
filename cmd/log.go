package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/totem-project/totem/internal/service"
	"github.com/totem-project/totem/internal/store"
)

var logObjectID string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the recorded revisions of an object",
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

		revisions, err := tracker.History(cmd.Context(), logObjectID)
		if err != nil {
			return err
		}
		for _, rev := range revisions {
			summary := "initial revision"
			if rev.ID != 0 {
				keys := store.ChangedKeys(rev.Changes)
				summary = fmt.Sprintf("%d change(s): %s", len(keys), strings.Join(keys, ", "))
			}
			fmt.Printf("%s  %-15s  %s\n", rev.ID, humanize.Time(rev.RecordedAt), summary)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVarP(&logObjectID, "id", "i", "",
		"Object ID to list revisions for")
	_ = logCmd.MarkFlagRequired("id")
}

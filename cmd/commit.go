package cmd

import (
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cobra"

	"github.com/totem-project/totem/internal/service"
)

var (
	commitObjectID string
	commitFilter   string
)

var commitCmd = &cobra.Command{
	Use:   "commit FILE",
	Short: "Record a new revision of a tracked object",
	Long: `Commit loads a YAML or JSON document and records it as the next revision of
the given object, together with the change records against the previous
revision. Commits that change nothing are skipped, as are commits a --filter
expression rejects (see the service documentation for the expression
environment, e.g. 'Changed("spec")' or 'ChangeCount() > 3').`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		var prog *vm.Program
		if commitFilter != "" {
			prog, err = service.CompileFilter(commitFilter)
			if err != nil {
				setupLog.Error().Err(err).Msg("Cannot compile filter expression")
				return err
			}
		}

		rs, err := openStore()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := rs.Close(); closeErr != nil {
				setupLog.Error().Err(closeErr).Msg("Error closing store")
			}
		}()

		// one-shot process: the last-state cache buys nothing here
		tracker := service.NewTracker(rs, prog, false)
		defer tracker.Close()

		id, recorded, err := tracker.Commit(cmd.Context(), commitObjectID, doc)
		if err != nil {
			return err
		}
		if !recorded {
			setupLog.Info().
				Str("object", commitObjectID).
				Stringer("latest", id).
				Msg("Nothing to record")
			return nil
		}
		setupLog.Info().
			Str("object", commitObjectID).
			Stringer("revision", id).
			Msg("Committed revision")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().StringVarP(&commitObjectID, "id", "i", "",
		"Object ID to commit the document under")
	commitCmd.Flags().StringVarP(&commitFilter, "filter", "f", "",
		"Filter expression deciding whether the commit is recorded")
	_ = commitCmd.MarkFlagRequired("id")
}

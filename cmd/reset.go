package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Delete saved progress for one learner, or everyone",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to delete learner data without --yes")
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var name string
		if len(args) == 1 {
			name = args[0]
		}

		ctx := context.Background()
		snaps, err := s.SnapshotRepo().DeleteLearner(ctx, name)
		if err != nil {
			return fmt.Errorf("delete snapshots: %w", err)
		}
		events, err := s.EventRepo().DeleteLearner(ctx, name)
		if err != nil {
			return fmt.Errorf("delete events: %w", err)
		}

		who := "all learners"
		if name != "" {
			who = fmt.Sprintf("%q", name)
		}
		fmt.Printf("Deleted %d snapshots and %d events for %s.\n", snaps, events, who)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}

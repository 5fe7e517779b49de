package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesstingley17/luna-ai/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved courses and drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Println("This deletes every saved course and the topic draft. Re-run with --force to confirm.")
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		adapter := st.Records()
		if err := adapter.Delete(ctx, store.KeyCourses); err != nil {
			return err
		}
		if err := adapter.Delete(ctx, store.KeyTopicDraft); err != nil {
			return err
		}

		fmt.Println("All courses and drafts deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Confirm deletion")
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var insightsUserID uint

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print the food-mood insights for a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if insightsUserID == 0 {
			return errors.New("--user is required")
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		insights, err := a.insights.ForUser(cmd.Context(), insightsUserID)
		if err != nil {
			return err
		}
		for _, line := range insights {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	insightsCmd.Flags().UintVar(&insightsUserID, "user", 0, "user id")
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Print the mood label the configured classifier assigns to text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		label := a.classifier.Classify(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label, label.Emoji())
		return nil
	},
}

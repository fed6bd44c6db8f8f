package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"panostitch/internal/assembly"
	"panostitch/internal/report"
)

func newOrderCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "order IMAGE...",
		Short:       "Print the order in which images would be stitched",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Order:")
			fmt.Fprint(out, report.OrderList(assembly.OrderIDs(paths)))
			return nil
		},
	}
}

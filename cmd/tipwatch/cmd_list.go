package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tipwatch/tipwatch/internal/stats"
	"github.com/tipwatch/tipwatch/internal/surrogate"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available indicators, change metrics and surrogate methods",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("Indicators:")
			for _, name := range stats.IndicatorNames() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("Change metrics:")
			for _, name := range stats.ChangeMetricNames() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("Surrogate methods:")
			for _, m := range surrogate.Methods() {
				fmt.Printf("  %s\n", m)
			}
		},
	}
}

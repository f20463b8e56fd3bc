// Command synacor-vault prints a shortest move sequence across the
// vault's arithmetic grid that opens the door.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atom0s/Synacor-Challenge-2012/internal/vault"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synacor-vault",
		Short: "Solve the vault door puzzle",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a shortest path to the door with the orb at its target weight",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := vault.SolveReference()
			if path == nil {
				return fmt.Errorf("vault: no path reaches the door at the target weight")
			}
			for _, d := range path {
				fmt.Println(d)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

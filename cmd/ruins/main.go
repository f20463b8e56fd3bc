// Command synacor-ruins prints the coin ordering, and the commands to
// place them, that solves the ruins' coin puzzle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atom0s/Synacor-Challenge-2012/internal/ruins"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synacor-ruins",
		Short: "Solve the ruins coin puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := ruins.Solve()
			if !ok {
				return fmt.Errorf("ruins: no ordering of the five coins satisfies the equation")
			}
			for _, c := range ruins.Commands(v) {
				fmt.Println(c)
			}
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

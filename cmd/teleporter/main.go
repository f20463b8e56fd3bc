// Command synacor-teleporter searches for the register-7 seed that makes
// the teleporter's confirmation check pass.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atom0s/Synacor-Challenge-2012/internal/teleporter"
)

func main() {
	var (
		target uint16
		report bool
	)

	rootCmd := &cobra.Command{
		Use:   "synacor-teleporter",
		Short: "Solve the teleporter's confirmation check",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for the seed p making A(4, 1, p) equal the target",
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(target, report)
		},
	}
	solveCmd.Flags().Uint16Var(&target, "target", 6, "required value of A(4, 1, p)")
	solveCmd.Flags().BoolVar(&report, "report", false, "also print the size of the search space swept")

	rootCmd.AddCommand(solveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solve(target uint16, report bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if report {
		fmt.Printf("searching p in [0, 32768) for A(4, 1, p) == %d\n", target)
	}

	s := teleporter.NewSolver()
	p, found := s.SolveIsolated(target)
	if !found {
		logger.Error("no seed found", "target", target)
		return fmt.Errorf("teleporter: no p in [0, 32768) makes A(4, 1, p) == %d", target)
	}

	if report {
		fmt.Printf("p = %d (%d candidates swept)\n", p, p+1)
	} else {
		fmt.Printf("p = %d\n", p)
	}
	return nil
}

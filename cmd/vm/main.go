// Command synacor-vm runs a Synacor program image to completion,
// connecting its `out`/`in` opcodes to an interactive readline terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
	"github.com/atom0s/Synacor-Challenge-2012/internal/machine"
)

func main() {
	var (
		historyFile string
		dumpFile    string
	)

	rootCmd := &cobra.Command{
		Use:   "synacor-vm",
		Short: "Run a Synacor program image",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load and execute a program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0], historyFile, dumpFile)
		},
	}
	runCmd.Flags().StringVar(&historyFile, "history-file", "history.txt", "file backing the !history command and readline history")
	runCmd.Flags().StringVar(&dumpFile, "dump-file", "dump.bin", "file the !dump command writes memory to")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runImage(path, historyFile, dumpFile string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	img, err := image.Load(path)
	if err != nil {
		logger.Error("failed to load image", "path", path, "err", err)
		return err
	}

	term, err := machine.NewReadlineTerminal("", historyFile)
	if err != nil {
		logger.Error("failed to open terminal", "err", err)
		return err
	}
	defer term.Close()

	m := machine.New(img, term)
	m.HistoryPath = historyFile
	m.DumpPath = dumpFile

	result := m.Run()
	switch result.Status {
	case machine.StatusHalted:
		return nil
	case machine.StatusFailed:
		logger.Error("machine halted abnormally", "reason", result.Error())
		return result
	default:
		return nil
	}
}

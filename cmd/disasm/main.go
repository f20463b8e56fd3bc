// Command synacor-disasm prints a linear disassembly listing of a
// Synacor program image.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atom0s/Synacor-Challenge-2012/internal/disasm"
	"github.com/atom0s/Synacor-Challenge-2012/internal/image"
)

func main() {
	var outPath string

	rootCmd := &cobra.Command{
		Use:   "synacor-disasm <image>",
		Short: "Disassemble a Synacor program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disassemble(args[0], outPath)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&outPath, "out", "", "write the listing to this file instead of stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func disassemble(path, outPath string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	img, err := image.Load(path)
	if err != nil {
		logger.Error("failed to load image", "path", path, "err", err)
		return err
	}

	records := disasm.Disassemble(img)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "err", err)
			return err
		}
		defer f.Close()
		out = f
	}

	if err := disasm.Write(out, records); err != nil {
		logger.Error("failed to write listing", "err", err)
		return err
	}
	return nil
}

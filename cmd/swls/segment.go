package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/segment"
	"github.com/cwbudde/algo-swls/internal/tabular"
)

func newSegmentCmd(a *app) *cobra.Command {
	def := config.Default()
	var (
		output string
		window int
		step   int
	)

	cmd := &cobra.Command{
		Use:   "segment <file>",
		Short: "Split one file into overlapping window files",
		Long: `Writes every complete window of <file> to
<output>/<file>_cNNNNNNNN_wW_sS.dat and prints the window paths in
cursor order. Lines are copied byte for byte.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			lines, err := tabular.ReadLines(input)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				return err
			}
			m, err := segment.Write(lines, filepath.Join(output, filepath.Base(input)), window, step)
			if err != nil {
				return err
			}
			a.log.Info("segmented input",
				zap.String("input", input),
				zap.Int("lines", len(lines)),
				zap.Int("windows", len(m.Windows)))
			for _, p := range m.Paths() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", def.OutputDir, "output directory")
	cmd.Flags().IntVar(&window, "window", def.Window, "window size in lines")
	cmd.Flags().IntVar(&step, "step", def.Step, "lines between window starts")
	return cmd
}

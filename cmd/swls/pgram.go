package main

import (
	"bufio"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/dsp/lombscargle"
	"github.com/cwbudde/algo-swls/internal/config"
	"github.com/cwbudde/algo-swls/internal/plot"
	"github.com/cwbudde/algo-swls/internal/tabular"
)

func newPgramCmd(a *app) *cobra.Command {
	def := config.Default()
	var (
		grid      = def.Grid
		method    string
		precenter bool
		out       string
		plotPath  string
	)

	cmd := &cobra.Command{
		Use:   "pgram <file>",
		Short: "Compute the periodogram of one tab-delimited file",
		Long: `Reads (amplitude, time) rows from <file> and prints one
(frequency, period, power, reference) row per grid frequency, or writes
them to --out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := lombscargle.ParseMethod(method)
			if err != nil {
				return err
			}
			opts := []lombscargle.Option{lombscargle.WithMethod(m)}
			if precenter {
				opts = append(opts, lombscargle.WithPrecenter())
			}

			samples, err := tabular.ReadSamples(args[0])
			if err != nil {
				return err
			}
			pg, err := lombscargle.Analyze(samples, grid, opts...)
			if err != nil {
				return err
			}
			a.log.Debug("computed periodogram",
				zap.String("input", args[0]),
				zap.Int("samples", len(samples)),
				zap.Int("records", len(pg.Records)))

			if plotPath != "" {
				fig := plot.Figure{
					Title:       filepath.Base(args[0]),
					Samples:     samples,
					Frequencies: pg.Frequencies,
					Power:       pg.Power,
				}
				if err := plot.NewRenderer(plot.Options{Save: true}).Emit(cmd.Context(), fig, plotPath); err != nil {
					return err
				}
			}

			if out != "" {
				return tabular.WriteRows(out, pg.Rows())
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, row := range pg.Rows() {
				if _, err := w.WriteString(tabular.FormatRow(row) + "\n"); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&grid.Start, "freq-start", def.Grid.Start, "first angular frequency of the grid")
	fl.Float64Var(&grid.End, "freq-end", def.Grid.End, "last angular frequency of the grid")
	fl.IntVar(&grid.Count, "freq-num", def.Grid.Count, "number of grid frequencies")
	fl.StringVar(&method, "method", def.Method, "periodogram method: direct or fast")
	fl.BoolVar(&precenter, "precenter", false, "subtract the mean amplitude before analysis")
	fl.StringVarP(&out, "out", "o", "", "write records to this file instead of stdout")
	fl.StringVar(&plotPath, "plot", "", "save the diagnostic figure as PNG")
	return cmd
}

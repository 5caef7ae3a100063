package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-swls/internal/batch"
	"github.com/cwbudde/algo-swls/internal/tabular"
	"github.com/cwbudde/algo-swls/stats/pgram"
)

func newPeaksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "peaks <dir>",
		Short: "Tabulate the dominant frequency of every windowed output in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := batch.DiscoverWindowed(args[0])
			if err != nil {
				return err
			}
			return printPeaks(a, cmd, files)
		},
	}
}

func printPeaks(a *app, cmd *cobra.Command, files []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tReference\tPeak Freq\tPeak Period\tPeak Power\tProminence\tCentroid\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t---------\t---------\t-----------\t----------\t----------\t--------\n"); err != nil {
		return err
	}

	for _, f := range files {
		s, err := windowStats(f)
		if err != nil {
			a.log.Warn("cannot read windowed output", zap.String("path", f), zap.Error(err))
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%.6f\t%.4f\t%.6g\t%.2f\t%.6f\n",
			filepath.Base(f),
			s.Reference,
			s.PeakFreq,
			s.PeakPeriod,
			s.PeakPower,
			s.Prominence,
			s.Centroid,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// windowStats summarises a windowed output of (frequency, period, power,
// reference) rows.
func windowStats(path string) (pgram.Stats, error) {
	rows, err := tabular.ReadRows(path)
	if err != nil {
		return pgram.Stats{}, err
	}
	freqs := make([]float64, 0, len(rows))
	power := make([]float64, 0, len(rows))
	var ref float64
	for _, r := range rows {
		if len(r) < 4 {
			continue
		}
		if len(freqs) == 0 {
			ref = r[3]
		}
		freqs = append(freqs, r[0])
		power = append(power, r[2])
	}
	if len(freqs) == 0 {
		return pgram.Stats{}, fmt.Errorf("%s: no periodogram records", path)
	}
	s := pgram.Calculate(freqs, power)
	s.Reference = ref
	return s, nil
}

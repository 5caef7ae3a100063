package lombscargle

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-swls/internal/testutil"
)

func TestGridFrequencies(t *testing.T) {
	g := Grid{Start: 0.01, End: 4.0, Count: 100000}
	f := g.Frequencies()
	if len(f) != g.Count {
		t.Fatalf("len = %d, want %d", len(f), g.Count)
	}
	if f[0] != g.Start || f[len(f)-1] != g.End {
		t.Fatalf("endpoints = %v, %v, want %v, %v", f[0], f[len(f)-1], g.Start, g.End)
	}
	testutil.RequireNearlyEqual(t, "spacing", f[1]-f[0], g.Step(), 1e-15)
}

func TestGridSinglePoint(t *testing.T) {
	f := Grid{Start: 0.5, End: 2, Count: 1}.Frequencies()
	if len(f) != 1 || f[0] != 0.5 {
		t.Fatalf("Frequencies() = %v, want [0.5]", f)
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Grid
		want error
	}{
		{"ok", Grid{Start: 0.01, End: 4, Count: 10}, nil},
		{"zero count", Grid{Start: 0.01, End: 4, Count: 0}, ErrEmptyGrid},
		{"zero start", Grid{Start: 0, End: 4, Count: 10}, ErrNonPositiveFrequency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	if err := (Grid{Start: 2, End: 1, Count: 3}).Validate(); err == nil {
		t.Fatal("expected error for end < start")
	}
}

func TestUniformStep(t *testing.T) {
	f0, df, ok := uniformStep(Grid{Start: 1, End: 2, Count: 11}.Frequencies())
	if !ok || f0 != 1 {
		t.Fatalf("uniformStep = %v, %v, %v", f0, df, ok)
	}
	testutil.RequireNearlyEqual(t, "df", df, 0.1, 1e-12)

	if _, _, ok := uniformStep([]float64{1, 2, 4}); ok {
		t.Fatal("uneven grid reported uniform")
	}
}

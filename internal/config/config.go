// Package config holds the run configuration of the batch analyser. Values
// come from defaults, an optional YAML file, a .env file and SWLS_*
// environment variables, in that order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-swls/dsp/lombscargle"
)

// Merge scopes.
const (
	ScopeManifest  = "manifest"
	ScopeDirectory = "directory"
)

// Config is the complete run configuration.
type Config struct {
	InputGlob    string           `yaml:"input_glob"`
	OutputDir    string           `yaml:"output_dir"`
	Window       int              `yaml:"window"`
	Step         int              `yaml:"step"`
	Grid         lombscargle.Grid `yaml:"grid"`
	Method       string           `yaml:"method"`
	Fast         Fast             `yaml:"fast"`
	Precenter    bool             `yaml:"precenter"`
	Scope        string           `yaml:"scope"`
	CleanWindows bool             `yaml:"clean_windows"`
	MetricsFile  string           `yaml:"metrics_file"`
	Plot         Plot             `yaml:"plot"`
	Log          Log              `yaml:"log"`
}

// Fast tunes the FFT-based method. It is ignored by the direct method.
type Fast struct {
	Oversampling       int `yaml:"oversampling"`
	ExtirpolationOrder int `yaml:"extirpolation_order"`
}

// Plot controls diagnostic figures.
type Plot struct {
	Save    bool `yaml:"save"`
	Display bool `yaml:"display"`
}

// Log controls logger construction.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		InputGlob: "./input/*.dat",
		OutputDir: "./output/",
		Window:    300,
		Step:      150,
		Grid: lombscargle.Grid{
			Start: 0.01,
			End:   4.0,
			Count: 100000,
		},
		Method: lombscargle.MethodDirect.String(),
		Fast:   Fast{Oversampling: 5, ExtirpolationOrder: 4},
		Scope:  ScopeManifest,
		Plot:   Plot{Save: true},
		Log:    Log{Level: "info", Format: "console"},
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.InputGlob == "" {
		return errors.New("config: input_glob must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir must not be empty")
	}
	if c.Window <= 0 {
		return fmt.Errorf("config: window must be > 0: %d", c.Window)
	}
	if c.Step <= 0 {
		return fmt.Errorf("config: step must be > 0: %d", c.Step)
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := lombscargle.ParseMethod(c.Method); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Fast.Oversampling <= 0 {
		return fmt.Errorf("config: fast.oversampling must be > 0: %d", c.Fast.Oversampling)
	}
	if c.Fast.ExtirpolationOrder < 2 {
		return fmt.Errorf("config: fast.extirpolation_order must be >= 2: %d", c.Fast.ExtirpolationOrder)
	}
	switch c.Scope {
	case ScopeManifest, ScopeDirectory:
	default:
		return fmt.Errorf("config: unknown scope %q", c.Scope)
	}
	return nil
}

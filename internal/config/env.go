package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env style files into the process environment. With no
// paths, ".env" is used. Variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// ApplyEnv overlays SWLS_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	cfg.InputGlob = GetEnv("SWLS_INPUT_GLOB", cfg.InputGlob)
	cfg.OutputDir = GetEnv("SWLS_OUTPUT_DIR", cfg.OutputDir)
	cfg.Method = GetEnv("SWLS_METHOD", cfg.Method)
	cfg.Scope = GetEnv("SWLS_SCOPE", cfg.Scope)
	cfg.MetricsFile = GetEnv("SWLS_METRICS_FILE", cfg.MetricsFile)
	cfg.Log.Level = GetEnv("SWLS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = GetEnv("SWLS_LOG_FORMAT", cfg.Log.Format)

	var err error
	if cfg.Window, err = envInt("SWLS_WINDOW", cfg.Window); err != nil {
		return err
	}
	if cfg.Step, err = envInt("SWLS_STEP", cfg.Step); err != nil {
		return err
	}
	if cfg.Grid.Count, err = envInt("SWLS_FREQ_NUM", cfg.Grid.Count); err != nil {
		return err
	}
	if cfg.Fast.Oversampling, err = envInt("SWLS_OVERSAMPLING", cfg.Fast.Oversampling); err != nil {
		return err
	}
	if cfg.Fast.ExtirpolationOrder, err = envInt("SWLS_EXTIRPOLATION_ORDER", cfg.Fast.ExtirpolationOrder); err != nil {
		return err
	}
	if cfg.Grid.Start, err = envFloat("SWLS_FREQ_START", cfg.Grid.Start); err != nil {
		return err
	}
	if cfg.Grid.End, err = envFloat("SWLS_FREQ_END", cfg.Grid.End); err != nil {
		return err
	}
	if cfg.Precenter, err = envBool("SWLS_PRECENTER", cfg.Precenter); err != nil {
		return err
	}
	if cfg.Plot.Save, err = envBool("SWLS_PLOT_SAVE", cfg.Plot.Save); err != nil {
		return err
	}
	if cfg.Plot.Display, err = envBool("SWLS_PLOT_DISPLAY", cfg.Plot.Display); err != nil {
		return err
	}
	if cfg.CleanWindows, err = envBool("SWLS_CLEAN_WINDOWS", cfg.CleanWindows); err != nil {
		return err
	}
	return nil
}

// GetEnv returns the value of the environment variable named by key, or
// fallback if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/store"
)

// Config is the resolved command line and environment
type Config struct {
	Difficulty engine.Difficulty
	GridSize   int
	Length     int
	Wrap       bool

	StoreKind store.Kind
	StorePath string

	MetricsFile string
	Debug       bool
	Mute        bool

	// Seed fixes food placement, 0 picks a random seed
	Seed int64
}

// LoadConfig parses args with environment values as flag defaults, so flags win
func LoadConfig(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	fs := flag.NewFlagSet("vi-snake", flag.ContinueOnError)

	difficulty := fs.String("difficulty", envOr(getenv, "VI_SNAKE_DIFFICULTY", "medium"), "Difficulty: easy, medium, hard")
	grid := fs.Int("grid", constants.DefaultGridSize, "Grid cell size in field units")
	length := fs.Int("length", constants.InitialSnakeLength, "Initial snake length")
	wrap := fs.Bool("wrap", envBool(getenv, "VI_SNAKE_WRAP"), "Re-enter from the opposite edge instead of crashing")
	storeKind := fs.String("store", envOr(getenv, "VI_SNAKE_STORE", string(store.KindFile)), "High score store: memory, file, sqlite")
	storePath := fs.String("store-path", getenv("VI_SNAKE_STORE_PATH"), "High score store location (default under the user config dir)")
	metricsFile := fs.String("metrics-file", getenv("VI_SNAKE_METRICS_FILE"), "Write Prometheus metrics to this textfile on exit")
	debug := fs.Bool("debug", envBool(getenv, "VI_SNAKE_DEBUG"), "Write debug logs to "+filepath.Join(logDir, logFileName))
	mute := fs.Bool("mute", false, "Start with sound muted")
	seed := fs.Int64("seed", 0, "Random seed for food placement")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	d, err := engine.ParseDifficulty(*difficulty)
	if err != nil {
		return Config{}, err
	}
	kind, err := store.ParseKind(*storeKind)
	if err != nil {
		return Config{}, err
	}
	if *grid < 1 {
		return Config{}, fmt.Errorf("grid must be positive, got %d", *grid)
	}
	if *length < 1 {
		return Config{}, fmt.Errorf("length must be positive, got %d", *length)
	}

	cfg := Config{
		Difficulty:  d,
		GridSize:    *grid,
		Length:      *length,
		Wrap:        *wrap,
		StoreKind:   kind,
		StorePath:   *storePath,
		MetricsFile: *metricsFile,
		Debug:       *debug,
		Mute:        *mute,
		Seed:        *seed,
	}
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath(kind)
	}
	return cfg, nil
}

// EngineConfig converts the resolved settings for engine.NewGame
func (c Config) EngineConfig(width, height int) engine.EngineConfig {
	ec := engine.DefaultEngineConfig()
	ec.Difficulty = c.Difficulty
	ec.GridSize = c.GridSize
	ec.Length = c.Length
	ec.Width = width
	ec.Height = height
	if c.Wrap {
		ec.Boundary = engine.BoundaryWrap
	}
	return ec
}

// defaultStorePath places the store in the user config dir, or the working dir when unknown
func defaultStorePath(kind store.Kind) string {
	name := "scores.toml"
	switch kind {
	case store.KindMemory:
		return ""
	case store.KindSQLite:
		name = "scores.db"
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "vi-snake", name)
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(getenv func(string) string, key string) bool {
	v, err := strconv.ParseBool(getenv(key))
	return err == nil && v
}

// Package config resolves the crossword filler's configuration from,
// in order of increasing precedence: built-in defaults, a .env file,
// the process environment, and command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything a host needs to build a grid, a word supply, an
// oracle, and an engine.
type Config struct {
	GridSize          int
	SkeletonName      string
	MaskFile          string
	BlockRatioCeiling float64

	NeighbourQuota   int
	OracleCallBudget int
	BacktrackBudget  int
	SolveTimeout     time.Duration

	WordsFile    string
	ThemedFile   string
	ExcludedFile string

	OracleKind string // "none", "bigquery", "gemini", "rest"

	BigQueryProject string
	BigQueryDataset string
	WordScope       string

	GeminiProject string
	GeminiRegion  string
	GeminiModel   string

	RestBaseURL string
	RestAPIKey  string

	Profile           bool
	ProfileFile       string
	MemoryProfileFile string
}

func defaults() Config {
	return Config{
		GridSize:          5,
		SkeletonName:      "open",
		BlockRatioCeiling: 0.16,

		NeighbourQuota:   20,
		OracleCallBudget: 50,
		BacktrackBudget:  10000,
		SolveTimeout:     1 * time.Minute,

		OracleKind:      "none",
		BigQueryDataset: "FirestoreQuery",
		GeminiRegion:    "europe-west1",
		GeminiModel:     "gemini-2.5-flash",

		ProfileFile:       "cpu.pprof",
		MemoryProfileFile: "mem.pprof",
	}
}

// Load resolves configuration from a .env file (if present), the
// process environment, and the given command-line arguments, in that
// order of increasing precedence. args is normally os.Args[1:]; tests
// pass an explicit slice instead.
func Load(args []string) (Config, error) {
	// godotenv.Load never overwrites a key the process environment
	// already set, which is exactly the precedence this function needs
	// between ".env file" and "process environment variable" — no extra
	// bookkeeping required.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	applyEnv(&cfg)

	fs := flag.NewFlagSet("xwfill", flag.ContinueOnError)
	bindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("XW_SKELETON", &cfg.SkeletonName)
	str("XW_MASK_FILE", &cfg.MaskFile)
	str("XW_WORDS_FILE", &cfg.WordsFile)
	str("XW_THEMED_FILE", &cfg.ThemedFile)
	str("XW_EXCLUDED_FILE", &cfg.ExcludedFile)
	str("XW_ORACLE", &cfg.OracleKind)
	str("XW_BIGQUERY_PROJECT", &cfg.BigQueryProject)
	str("XW_BIGQUERY_DATASET", &cfg.BigQueryDataset)
	str("XW_WORD_SCOPE", &cfg.WordScope)
	str("XW_GEMINI_PROJECT", &cfg.GeminiProject)
	str("XW_GEMINI_REGION", &cfg.GeminiRegion)
	str("XW_GEMINI_MODEL", &cfg.GeminiModel)
	str("XW_REST_BASE_URL", &cfg.RestBaseURL)
	str("XW_REST_API_KEY", &cfg.RestAPIKey)

	if v := os.Getenv("XW_GRID_SIZE"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.GridSize = n
		}
	}
	if v := os.Getenv("XW_NEIGHBOUR_QUOTA"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.NeighbourQuota = n
		}
	}
	if v := os.Getenv("XW_ORACLE_BUDGET"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.OracleCallBudget = n
		}
	}
	if v := os.Getenv("XW_BACKTRACK_BUDGET"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.BacktrackBudget = n
		}
	}
	if v := os.Getenv("XW_BLOCK_RATIO_CEILING"); v != "" {
		if f, err := parseFloat(v); err == nil {
			cfg.BlockRatioCeiling = f
		}
	}
	if v := os.Getenv("XW_SOLVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SolveTimeout = d
		}
	}
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.GridSize, "size", cfg.GridSize, "grid width and height")
	fs.StringVar(&cfg.SkeletonName, "skeleton", cfg.SkeletonName, "named skeleton pattern to look up")
	fs.StringVar(&cfg.MaskFile, "mask", cfg.MaskFile, "file of explicit block coordinates, overrides -skeleton")
	fs.Float64Var(&cfg.BlockRatioCeiling, "block-ratio-ceiling", cfg.BlockRatioCeiling, "maximum fraction of blocked cells the validator accepts")

	fs.IntVar(&cfg.NeighbourQuota, "neighbour-quota", cfg.NeighbourQuota, "candidates requested per oracle call")
	fs.IntVar(&cfg.OracleCallBudget, "oracle-budget", cfg.OracleCallBudget, "maximum oracle calls per solve")
	fs.IntVar(&cfg.BacktrackBudget, "backtrack-budget", cfg.BacktrackBudget, "maximum abandoned-value attempts per solve")
	fs.DurationVar(&cfg.SolveTimeout, "timeout", cfg.SolveTimeout, "wall-clock deadline for a single solve")

	fs.StringVar(&cfg.WordsFile, "file", cfg.WordsFile, "base word list, one word per line")
	fs.StringVar(&cfg.ThemedFile, "themed", cfg.ThemedFile, "themed word list, one word per line")
	fs.StringVar(&cfg.ExcludedFile, "excluded", cfg.ExcludedFile, "excluded word list, one word per line")

	fs.StringVar(&cfg.OracleKind, "oracle", cfg.OracleKind, "word oracle: none, bigquery, gemini, or rest")
	fs.StringVar(&cfg.BigQueryProject, "bigquery-project", cfg.BigQueryProject, "GCP project for the BigQuery oracle")
	fs.StringVar(&cfg.BigQueryDataset, "bigquery-dataset", cfg.BigQueryDataset, "BigQuery dataset for the BigQuery oracle")
	fs.StringVar(&cfg.WordScope, "word-scope", cfg.WordScope, "word scope column value for the BigQuery oracle")
	fs.StringVar(&cfg.GeminiProject, "gemini-project", cfg.GeminiProject, "GCP project for the Gemini oracle")
	fs.StringVar(&cfg.GeminiRegion, "gemini-region", cfg.GeminiRegion, "Vertex AI region for the Gemini oracle")
	fs.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model name; not passed to the gemini oracle, which always uses gemini-2.5-flash")
	fs.StringVar(&cfg.RestBaseURL, "rest-base-url", cfg.RestBaseURL, "base URL for the REST word oracle")
	fs.StringVar(&cfg.RestAPIKey, "rest-api-key", cfg.RestAPIKey, "API key for the REST word oracle")

	fs.BoolVar(&cfg.Profile, "profile", cfg.Profile, "profile the solve")
	fs.StringVar(&cfg.ProfileFile, "profile-file", cfg.ProfileFile, "file to write the CPU profile to")
	fs.StringVar(&cfg.MemoryProfileFile, "memory-profile-file", cfg.MemoryProfileFile, "file to write the memory profile to")
}

// Validate reports a configuration error before any grid or engine is
// built, so the core never has to reject a malformed configuration
// itself.
func (c Config) Validate() error {
	if c.GridSize < 3 {
		return fmt.Errorf("config: size must be at least 3, got %d", c.GridSize)
	}
	if c.BlockRatioCeiling < 0 || c.BlockRatioCeiling > 1 {
		return fmt.Errorf("config: block-ratio-ceiling must be in [0,1], got %v", c.BlockRatioCeiling)
	}
	if c.OracleCallBudget < 0 || c.BacktrackBudget < 0 || c.NeighbourQuota < 0 {
		return fmt.Errorf("config: budgets must be non-negative")
	}
	switch c.OracleKind {
	case "none", "bigquery", "gemini", "rest":
	default:
		return fmt.Errorf("config: oracle must be one of none, bigquery, gemini, rest, got %q", c.OracleKind)
	}
	if c.OracleKind == "bigquery" && c.BigQueryProject == "" {
		return fmt.Errorf("config: bigquery-project is required when -oracle=bigquery")
	}
	if c.OracleKind == "gemini" && c.GeminiProject == "" {
		return fmt.Errorf("config: gemini-project is required when -oracle=gemini")
	}
	if c.OracleKind == "rest" && c.RestBaseURL == "" {
		return fmt.Errorf("config: rest-base-url is required when -oracle=rest")
	}
	return nil
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	return f, err
}

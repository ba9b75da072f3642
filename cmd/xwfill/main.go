package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/TrailLensCo/crosswordgenerator/config"
	"github.com/TrailLensCo/crosswordgenerator/oracle"
	"github.com/TrailLensCo/crosswordgenerator/pkg/csp"
	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/validator"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		os.Exit(1)
	}

	g, err := buildGrid(cfg)
	if err != nil {
		fmt.Println("Error building grid:", err)
		os.Exit(1)
	}

	result := validator.Validate(g, validator.Options{MaxBlockRatio: cfg.BlockRatioCeiling})
	if !result.OK() {
		fmt.Println("Grid failed validation:", result.Error())
		os.Exit(1)
	}
	fmt.Printf("Grid valid: %d slots\n", len(result.Slots))

	supply := wordsupply.New()
	if cfg.WordsFile != "" {
		words, err := loadFromFile(cfg.WordsFile)
		if err != nil {
			fmt.Println("Error loading word file:", err)
			os.Exit(1)
		}
		n := supply.LoadBase(words)
		fmt.Printf("Loaded %d base words (%d lines read)\n", n, len(words))
	}
	if cfg.ThemedFile != "" {
		words, err := loadFromFile(cfg.ThemedFile)
		if err != nil {
			fmt.Println("Error loading themed word file:", err)
			os.Exit(1)
		}
		n := supply.LoadThemed(words, 0.1)
		fmt.Printf("Loaded %d themed words\n", n)
	}
	if cfg.ExcludedFile != "" {
		words, err := loadFromFile(cfg.ExcludedFile)
		if err != nil {
			fmt.Println("Error loading excluded word file:", err)
			os.Exit(1)
		}
		n := supply.LoadExcluded(words)
		fmt.Printf("Loaded %d excluded words\n", n)
	}

	var memProfile *os.File
	if cfg.Profile {
		cpuFile, err := os.Create(cfg.ProfileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer cpuFile.Close()

		memProfile, err = os.Create(cfg.MemoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer memProfile.Close()

		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SolveTimeout)
	defer cancel()

	oc, err := buildOracle(ctx, cfg)
	if err != nil {
		fmt.Println("Error building oracle:", err)
		os.Exit(1)
	}

	budgets := csp.Budgets{
		NeighbourQuota:   cfg.NeighbourQuota,
		OracleCallBudget: cfg.OracleCallBudget,
		BacktrackBudget:  cfg.BacktrackBudget,
	}
	engine := csp.New(g, supply, oc, budgets)

	outcome := engine.Solve(ctx)

	if memProfile != nil {
		pprof.WriteHeapProfile(memProfile)
	}

	reportOutcome(outcome)
}

func buildGrid(cfg config.Config) (*grid.Grid, error) {
	if cfg.MaskFile != "" {
		blocks, err := loadMask(cfg.MaskFile)
		if err != nil {
			return nil, err
		}
		return grid.FromMask(cfg.GridSize, blocks)
	}
	pattern, ok := grid.StandardLibrary.Lookup(cfg.GridSize, cfg.SkeletonName)
	if !ok {
		return nil, fmt.Errorf("no skeleton %q registered for size %d (known: %v)",
			cfg.SkeletonName, cfg.GridSize, grid.StandardLibrary.Names(cfg.GridSize))
	}
	return pattern.ApplyTo()
}

func buildOracle(ctx context.Context, cfg config.Config) (csp.Oracle, error) {
	switch cfg.OracleKind {
	case "none":
		return nil, nil
	case "bigquery":
		return oracle.NewBigQueryOracle(ctx, cfg.BigQueryProject, cfg.BigQueryDataset, "all_words", cfg.WordScope)
	case "gemini":
		return oracle.NewGeminiOracle(ctx, cfg.GeminiProject, cfg.GeminiRegion)
	case "rest":
		return oracle.NewRestOracle(cfg.RestBaseURL, cfg.RestAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown oracle kind %q", cfg.OracleKind)
	}
}

func reportOutcome(outcome csp.Outcome) {
	fmt.Println("--------------------------------")
	if outcome.Solved {
		fmt.Println(renderAssignment(outcome))
	} else {
		fmt.Println("Failed:", outcome.Failure)
	}
	fmt.Printf("Stats: oracle_calls=%d backtracks=%d elapsed=%s\n",
		outcome.Stats.OracleCalls, outcome.Stats.Backtracks, outcome.Stats.Elapsed)
	if !outcome.Solved {
		os.Exit(1)
	}
}

func renderAssignment(outcome csp.Outcome) string {
	var b strings.Builder
	for id, entry := range outcome.Assignment {
		fmt.Fprintf(&b, "%v: %s\n", id, entry.Word)
	}
	return b.String()
}

// loadFromFile reads one word per line, case-folds to uppercase, skips
// '#'-prefixed comments and blank lines, and lets the word supply's own
// validation decide what survives — mirroring the teacher CLI's own
// loadFromFile, generalized from a lowercase/length-bounded contract to
// the uppercase/alphabet contract the word supply enforces.
func loadFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}

// loadMask reads "row,col" pairs, one per line, describing explicit
// block coordinates for grid.FromMask.
func loadMask(path string) ([]grid.Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var coords []grid.Coord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("mask line %q: expected \"row,col\"", line)
		}
		var r, c int
		if _, err := fmt.Sscanf(parts[0], "%d", &r); err != nil {
			return nil, fmt.Errorf("mask line %q: %w", line, err)
		}
		if _, err := fmt.Sscanf(parts[1], "%d", &c); err != nil {
			return nil, fmt.Errorf("mask line %q: %w", line, err)
		}
		coords = append(coords, grid.Coord{Row: r, Col: c})
	}
	return coords, scanner.Err()
}


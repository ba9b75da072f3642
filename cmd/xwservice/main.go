package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/TrailLensCo/crosswordgenerator/oracle"
	"github.com/TrailLensCo/crosswordgenerator/pkg/csp"
	"github.com/TrailLensCo/crosswordgenerator/pkg/grid"
	"github.com/TrailLensCo/crosswordgenerator/pkg/validator"
	"github.com/TrailLensCo/crosswordgenerator/pkg/wordsupply"
)

// FillRequest mirrors the teacher's GenerateGridRequest shape — plain
// JSON-tagged fields, no separate DTO/domain split — widened from a
// generation request to a fill request over an explicit skeleton.
type FillRequest struct {
	Size             int      `json:"size"`
	Skeleton         string   `json:"skeleton"`
	Mask             [][2]int `json:"mask"`
	BaseWords        []string `json:"baseWords"`
	ThemedWords      []string `json:"themedWords"`
	ExcludedWords    []string `json:"excludedWords"`
	WordScope        string   `json:"wordScope"`
	NeighbourQuota   int      `json:"neighbourQuota"`
	OracleCallBudget int      `json:"oracleCallBudget"`
	BacktrackBudget  int      `json:"backtrackBudget"`
	TimeoutSeconds   int      `json:"timeoutSeconds"`
}

// FillResponse mirrors the teacher's GenerateGridResponse shape.
type FillResponse struct {
	Success bool              `json:"success"`
	Grid    string            `json:"grid,omitempty"`
	Words   map[string]string `json:"words,omitempty"`
	Failure string            `json:"failure,omitempty"`
	Stats   csp.RunStats      `json:"stats"`
	Error   string            `json:"error,omitempty"`
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func execute(ctx context.Context, req FillRequest, progress *Broadcaster, runID string) (FillResponse, error) {
	if req.Size < 3 {
		return FillResponse{}, fmt.Errorf("size must be at least 3")
	}

	var g *grid.Grid
	var err error
	if len(req.Mask) > 0 {
		coords := make([]grid.Coord, len(req.Mask))
		for i, rc := range req.Mask {
			coords[i] = grid.Coord{Row: rc[0], Col: rc[1]}
		}
		g, err = grid.FromMask(req.Size, coords)
	} else {
		skeleton := req.Skeleton
		if skeleton == "" {
			skeleton = "open"
		}
		pattern, ok := grid.StandardLibrary.Lookup(req.Size, skeleton)
		if !ok {
			return FillResponse{}, fmt.Errorf("no skeleton %q registered for size %d", skeleton, req.Size)
		}
		g, err = pattern.ApplyTo()
	}
	if err != nil {
		return FillResponse{}, fmt.Errorf("build grid: %w", err)
	}

	result := validator.Validate(g, validator.Options{})
	if !result.OK() {
		return FillResponse{}, fmt.Errorf("grid failed validation: %s", result.Error())
	}

	supply := wordsupply.New()
	supply.LoadBase(req.BaseWords)
	supply.LoadThemed(req.ThemedWords, 0.1)
	supply.LoadExcluded(req.ExcludedWords)

	budgets := csp.DefaultBudgets()
	if req.NeighbourQuota > 0 {
		budgets.NeighbourQuota = req.NeighbourQuota
	}
	if req.OracleCallBudget > 0 {
		budgets.OracleCallBudget = req.OracleCallBudget
	}
	if req.BacktrackBudget > 0 {
		budgets.BacktrackBudget = req.BacktrackBudget
	}

	timeout := 1 * time.Minute
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline) - 5*time.Second; remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var oc csp.Oracle
	if req.WordScope != "" {
		bq, err := oracle.NewBigQueryOracle(ctx, os.Getenv("XW_BIGQUERY_PROJECT"), "FirestoreQuery", "all_words", req.WordScope)
		if err != nil {
			return FillResponse{}, fmt.Errorf("build bigquery oracle: %w", err)
		}
		defer bq.Close()
		oc = bq
	}

	engine := csp.New(g, supply, oc, budgets)
	if progress != nil {
		engine.OnProgress(func(s csp.RunStats) {
			data, _ := json.Marshal(s)
			progress.Broadcast(runID, string(data))
		})
	}

	outcome := engine.Solve(ctx)

	resp := FillResponse{Success: outcome.Solved, Stats: outcome.Stats}
	if outcome.Solved {
		resp.Grid = g.Repr()
		resp.Words = make(map[string]string, len(outcome.Assignment))
		for id, entry := range outcome.Assignment {
			resp.Words[fmt.Sprintf("%d,%d,%s", id.Row, id.Col, id.Orientation)] = entry.Word
		}
	} else {
		resp.Failure = outcome.Failure.String()
	}
	return resp, ctx.Err()
}

var progress = NewBroadcaster()

func fillHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "method %s not allowed"}`, r.Method)
		return
	}

	var req FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(FillResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	runID := r.Header.Get("X-Run-Id")
	resp, err := execute(r.Context(), req, progress, runID)
	if err != nil && resp.Error == "" {
		resp.Error = err.Error()
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func fillEventsHandler(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("id")
	progress.ServeSSE(w, r, runID, nil, nil)
}

func main() {
	funcframework.RegisterHTTPFunction("/fill", fillHandler)
	funcframework.RegisterHTTPFunction("/fill/events", fillEventsHandler)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}

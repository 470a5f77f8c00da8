// Command octiloomd is a small demo/integration harness: it builds a
// grid from the default config, embeds a three-node comb graph onto
// it, solves a two-segment line-ordering bundle over the result, and
// serves the solved HierarOrderCfg over a tiny chi-routed HTTP API.
// CLI/top-level wiring beyond this demo is explicitly delegated to a
// larger surrounding system (SPEC_FULL.md §1).
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/config"
	"github.com/transitgrid/octiloom/geo"
	"github.com/transitgrid/octiloom/lineorder"
	"github.com/transitgrid/octiloom/logging"
	"github.com/transitgrid/octiloom/octigrid"
	"github.com/transitgrid/octiloom/router"
	"golang.org/x/exp/slog"
)

func main() {
	slog.SetDefault(slog.New(logging.NewHandler(os.Stdout, nil)))

	addr := ":8089"
	if v := os.Getenv("OCTILOOMD_ADDR"); v != "" {
		addr = v
	}

	r := chi.NewRouter()
	r.Get("/solve", handleSolve)

	slog.Info("octiloomd listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// handleSolve runs the full demo pipeline end to end (SPEC_FULL.md S7)
// and writes the resulting HierarOrderCfg positions as JSON.
func handleSolve(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	grid := cfg.Grid.NewGridGraph()

	comb := combgraph.NewBuilder()
	u := comb.AddNode("u", geo.Point{1, 4})
	v := comb.AddNode("v", geo.Point{4, 4})
	wNode := comb.AddNode("w", geo.Point{7, 4})
	e1 := comb.AddEdge("e1", u, v)
	e2 := comb.AddEdge("e2", v, wNode)

	opts := router.Options{MaxDis: 1.5, MaxRetries: 3, SinkCost: 0}
	if _, err := router.RouteComb(grid, u, e1, opts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := router.RouteComb(grid, v, e2, opts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	l1 := lineorder.NewLine("l1", lineorder.NewETG("e1", 0, true, false), lineorder.NewETG("e2", 0, true, false))
	l2 := lineorder.NewLine("l2", lineorder.NewETG("e1", 1, true, false), lineorder.NewETG("e2", 1, true, false))

	b := lineorder.NewBuilder(cfg.ILP.SameSegPenalty, cfg.ILP.DiffSegPenalty, cfg.ILP.SplittingPenalty)
	b.AddSegment("seg-uv", 2, []lineorder.Line{l1, l2}, true, true, "v", "u")
	b.AddSegment("seg-vw", 2, []lineorder.Line{l1, l2}, true, true, "v", "w")

	model := lineorder.NewModel(b.Build(), nil)
	model.Build()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result := make(chan error, 1)
	go func() { result <- model.Solve() }()

	select {
	case err := <-result:
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	case <-ctx.Done():
		http.Error(w, "ilp solve deadline exceeded", http.StatusGatewayTimeout)
		return
	}
	defer model.Dispose()

	outCfg, err := model.Extract()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"e1.0": outCfg.Positions("e1", 0),
		"e1.1": outCfg.Positions("e1", 1),
		"e2.0": outCfg.Positions("e2", 0),
		"e2.1": outCfg.Positions("e2", 1),
	})
}

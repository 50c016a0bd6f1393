// Package perft runs perft counts in parallel, split at the root moves.
package perft

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Options controls a parallel run.
type Options struct {
	// Workers bounds concurrent subtrees. Zero means GOMAXPROCS.
	Workers int
	// OnRootMove is called once per finished root move. Calls are
	// serialized.
	OnRootMove func(m board.Move, nodes uint64)
}

// Result is the outcome of a run.
type Result struct {
	Nodes   uint64
	Divide  map[board.Move]uint64
	Elapsed time.Duration
}

// NPS returns nodes per second.
func (r Result) NPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Nodes) / r.Elapsed.Seconds()
}

// Run counts the leaves below b at depth, one goroutine per root move. The
// total matches board.Perft, including 0 at depth 0.
func Run(ctx context.Context, b board.Board, depth int, opts Options) (Result, error) {
	start := time.Now()
	res := Result{Divide: make(map[board.Move]uint64)}
	if depth <= 0 {
		return res, ctx.Err()
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	for _, m := range b.LegalMoves() {
		if gctx.Err() != nil {
			break
		}
		m := m
		g.Go(func() error {
			child, ok := b.WithMove(m)
			if !ok {
				return fmt.Errorf("perft: move %s does not apply", m)
			}

			nodes := uint64(1)
			if depth > 1 {
				var err error
				if nodes, err = count(gctx, child, depth-1); err != nil {
					return err
				}
			}

			mu.Lock()
			defer mu.Unlock()
			res.Divide[m] = nodes
			res.Nodes += nodes
			if opts.OnRootMove != nil {
				opts.OnRootMove(m, nodes)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	// Wait cancels gctx, so only the caller's context decides.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// count is board.Perft with cancellation checks above the last two plies.
func count(ctx context.Context, b board.Board, depth int) (uint64, error) {
	if depth <= 2 {
		return board.Perft(b, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	ml := b.GenerateMoves()
	for {
		m, ok := ml.Next()
		if !ok {
			return nodes, nil
		}
		child, _ := b.WithMove(m)
		n, err := count(ctx, child, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
}

// Divide is Run without progress reporting, returning only the per-move
// counts.
func Divide(ctx context.Context, b board.Board, depth int) (map[board.Move]uint64, error) {
	res, err := Run(ctx, b, depth, Options{})
	if err != nil {
		return nil, err
	}
	return res.Divide, nil
}

// ByName keys the divide counts by UCI move string.
func ByName(divide map[board.Move]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(divide))
	for m, n := range divide {
		out[m.String()] = n
	}
	return out
}

// SortedKeys returns the move strings of a divide map in lexical order.
func SortedKeys(divide map[string]uint64) []string {
	keys := maps.Keys(divide)
	slices.Sort(keys)
	return keys
}

// Lines renders a divide map as "move: nodes" lines in lexical order.
func Lines(divide map[board.Move]uint64) []string {
	byName := ByName(divide)
	lines := make([]string, 0, len(byName))
	for _, k := range SortedKeys(byName) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, byName[k]))
	}
	return lines
}

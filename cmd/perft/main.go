// Command perft counts move-generation leaves for a position, optionally
// recording results and checking the magic tables against a stored copy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/store"
)

var (
	fenFlag      = flag.String("fen", board.StartFEN, "position to count from")
	depthFlag    = flag.Int("depth", 5, "perft depth")
	divideFlag   = flag.Bool("divide", false, "print per-root-move counts")
	workersFlag  = flag.Int("workers", 0, "parallel subtrees (0 = GOMAXPROCS)")
	dbFlag       = flag.String("db", "", "store directory, or \"default\" for the per-user one (default: $CHESSCORE_DB or none)")
	verifyFlag   = flag.Bool("verify-magics", false, "compare magic tables with the stored set")
	profileFlag  = flag.String("profile", "", "write cpu profile to directory")
	progressFlag = flag.Bool("progress", true, "show a progress bar")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run does the work of main so deferred cleanup happens before exit.
func run() error {
	profileDir := *profileFlag
	if profileDir == "" {
		profileDir = os.Getenv("CPUPROFILE")
	}
	if profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir)).Stop()
	}

	var st *store.Store
	dbDir := *dbFlag
	if dbDir == "" {
		dbDir = os.Getenv("CHESSCORE_DB")
	}
	if dbDir != "" {
		var err error
		st, err = store.OpenDir(dbDir)
		if err != nil {
			return fmt.Errorf("could not open store: %w", err)
		}
		defer st.Close()
	}

	if *verifyFlag {
		if st == nil {
			return errors.New("-verify-magics needs -db or CHESSCORE_DB")
		}
		if err := verifyMagics(st); err != nil {
			return err
		}
	}

	b, err := board.NewBoardFromFEN(*fenFlag)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := perft.Options{Workers: *workersFlag}
	if *progressFlag && *depthFlag > 1 {
		bar := progressbar.Default(int64(b.MoveCount()), fmt.Sprint("depth ", *depthFlag))
		opts.OnRootMove = func(board.Move, uint64) {
			bar.Add(1)
		}
	}

	res, err := perft.Run(ctx, b, *depthFlag, opts)
	if err != nil {
		return err
	}

	if *divideFlag {
		for _, line := range perft.Lines(res.Divide) {
			fmt.Println(line)
		}
		fmt.Println()
	}
	fmt.Printf("Nodes: %d\n", res.Nodes)
	fmt.Printf("Time: %v\n", res.Elapsed)
	fmt.Printf("NPS: %.0f\n", res.NPS())

	if st != nil {
		rec := store.PerftRecord{
			FEN:     b.FEN(),
			Depth:   *depthFlag,
			Nodes:   res.Nodes,
			Divide:  perft.ByName(res.Divide),
			Elapsed: res.Elapsed,
		}
		if prev, err := st.LoadPerft(rec.FEN, rec.Depth); err == nil && prev.Nodes != rec.Nodes {
			log.Printf("Warning: node count %d differs from stored %d", rec.Nodes, prev.Nodes)
		}
		if err := st.SavePerft(rec); err != nil {
			log.Printf("Failed to save perft result: %v", err)
		}
	}
	return nil
}

// verifyMagics loads the stored magic entries, saving the current ones
// first if none exist, and checks that they rebuild the running tables.
func verifyMagics(st *store.Store) error {
	cur := board.Default()

	rook, err := st.LoadMagics(board.RookSlider)
	if errors.Is(err, store.ErrNotFound) {
		if err := st.SaveMagics(board.RookSlider, cur.RookMagics()); err != nil {
			return err
		}
		rook, err = cur.RookMagics(), nil
	}
	if err != nil {
		return fmt.Errorf("load rook magics: %w", err)
	}

	bishop, err := st.LoadMagics(board.BishopSlider)
	if errors.Is(err, store.ErrNotFound) {
		if err := st.SaveMagics(board.BishopSlider, cur.BishopMagics()); err != nil {
			return err
		}
		bishop, err = cur.BishopMagics(), nil
	}
	if err != nil {
		return fmt.Errorf("load bishop magics: %w", err)
	}

	stored, err := board.NewMagicIndex(rook, bishop)
	if err != nil {
		return fmt.Errorf("rebuild stored magics: %w", err)
	}
	if !stored.Equal(cur) {
		return errors.New("stored magic tables differ from the generated ones")
	}

	r, bs := cur.TableSize()
	log.Printf("Magic tables verified (rook %d, bishop %d entries)", r, bs)
	return nil
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/store"
	"github.com/hailam/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "record perft results in this store directory (\"default\" for the per-user one)")
	workers    = flag.Int("workers", 0, "parallel perft subtrees (0 = GOMAXPROCS)")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	protocol := uci.New(os.Stdin, os.Stdout).WithWorkers(*workers)

	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("CHESSCORE_DB")
	}
	if dir != "" {
		st, err := store.OpenDir(dir)
		if err != nil {
			log.Printf("Warning: store not opened: %v", err)
		} else {
			defer st.Close()
			protocol.WithStore(st)
		}
	}

	if err := protocol.Run(context.Background()); err != nil {
		log.Printf("uci: %v", err)
	}
}

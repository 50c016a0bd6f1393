// Package uci implements the subset of the Universal Chess Interface a
// move generator can serve: position setup, perft and board display.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/store"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	in    io.Reader
	out   io.Writer
	board board.Board

	workers int
	store   *store.Store // optional perft result cache
}

// New creates a protocol handler reading commands from in and writing
// replies to out.
func New(in io.Reader, out io.Writer) *UCI {
	return &UCI{
		in:    in,
		out:   out,
		board: board.StartBoard(),
	}
}

// WithStore records every perft result in s.
func (u *UCI) WithStore(s *store.Store) *UCI {
	u.store = s
	return u
}

// WithWorkers bounds perft parallelism.
func (u *UCI) WithWorkers(n int) *UCI {
	u.workers = n
	return u
}

// Board returns the current position.
func (u *UCI) Board() board.Board {
	return u.board
}

// Run reads commands until "quit", end of input or ctx cancellation.
func (u *UCI) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.board = board.StartBoard()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(ctx, args)
		case "quit":
			return nil
		// Debug commands
		case "d":
			u.handleDisplay()
		case "perft":
			u.handlePerft(ctx, args)
		case "moves":
			u.handleMoves()
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessCore")
	u.println("id author ChessCore Team")
	u.println()
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	setupEnd, moveStart := len(args), len(args)
	for i, arg := range args {
		if arg == "moves" {
			setupEnd, moveStart = i, i+1
			break
		}
	}

	var b board.Board
	switch args[0] {
	case "startpos":
		b = board.StartBoard()
	case "fen":
		var err error
		b, err = board.NewBoardFromFEN(strings.Join(args[1:setupEnd], " "))
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
	default:
		return
	}

	for _, moveStr := range args[moveStart:] {
		m, err := b.ParseMove(moveStr)
		if err != nil || !b.MakeMove(m) {
			u.printf("info string Invalid move: %s\n", moveStr)
			return
		}
	}

	u.board = b
}

// handleGo supports only "go perft <depth>".
func (u *UCI) handleGo(ctx context.Context, args []string) {
	if len(args) >= 1 && args[0] == "perft" {
		u.handlePerft(ctx, args[1:])
		return
	}
	u.println("info string only 'go perft <depth>' is supported")
}

func (u *UCI) handlePerft(ctx context.Context, args []string) {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			u.printf("info string Invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	res, err := perft.Run(ctx, u.board, depth, perft.Options{Workers: u.workers})
	if err != nil {
		u.printf("info string perft failed: %v\n", err)
		return
	}

	for _, line := range perft.Lines(res.Divide) {
		u.println(line)
	}
	u.println()
	u.printf("Nodes searched: %d\n", res.Nodes)
	u.printf("Time: %v\n", res.Elapsed)
	if res.Elapsed > 0 {
		u.printf("NPS: %.0f\n", res.NPS())
	}

	if u.store != nil {
		rec := store.PerftRecord{
			FEN:     u.board.FEN(),
			Depth:   depth,
			Nodes:   res.Nodes,
			Divide:  perft.ByName(res.Divide),
			Elapsed: res.Elapsed,
		}
		if err := u.store.SavePerft(rec); err != nil {
			log.Printf("Failed to save perft result: %v", err)
		}
	}
}

func (u *UCI) handleDisplay() {
	u.println(u.board.Position.String())
	u.printf("Fen: %s\n", u.board.FEN())
	u.printf("Checkers: %s\n", strings.Join(squareNames(u.board.Checkers), " "))
	u.printf("Result: %s\n", u.board.Result)
}

func (u *UCI) handleMoves() {
	if u.board.Result.IsOver() {
		u.printf("info string game over: %s\n", u.board.Result)
	}
	moves := u.board.LegalMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	u.println(strings.Join(names, " "))
}

func squareNames(bb board.Bitboard) []string {
	var names []string
	for _, sq := range bb.Squares() {
		names = append(names, sq.String())
	}
	return names
}

package perft

import (
	"context"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chesscore/internal/board"
)

func mustBoard(t *testing.T, fen string) board.Board {
	t.Helper()
	b, err := board.NewBoardFromFEN(fen)
	require.NoError(t, err)
	return b
}

func TestRunMatchesSequential(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
		want  uint64
	}{
		{board.StartFEN, 1, 20},
		{board.StartFEN, 4, 197281},
		{board.KiwipeteFEN, 3, 97862},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			res, err := Run(context.Background(), b, tc.depth, Options{Workers: 4})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Nodes)
			assert.Equal(t, board.Divide(b, tc.depth), res.Divide)
		})
	}
}

func TestRunDepthZero(t *testing.T) {
	res, err := Run(context.Background(), board.StartBoard(), 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), res.Nodes)
	assert.Empty(t, res.Divide)
}

func TestRunReportsEveryRootMove(t *testing.T) {
	var calls int
	var total uint64
	res, err := Run(context.Background(), board.StartBoard(), 3, Options{
		Workers: 2,
		OnRootMove: func(_ board.Move, nodes uint64) {
			calls++
			total += nodes
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, calls)
	assert.Equal(t, res.Nodes, total)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, board.StartBoard(), 5, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLines(t *testing.T) {
	divide, err := Divide(context.Background(), board.StartBoard(), 1)
	require.NoError(t, err)

	lines := Lines(divide)
	require.Len(t, lines, 20)
	assert.Equal(t, "a2a3: 1", lines[0])
	assert.Equal(t, "h2h4: 1", lines[len(lines)-1])
}

// dragontoothDivide counts the leaves below each root move with the
// dragontoothmg generator.
func dragontoothDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = dragontoothCount(&b, depth-1)
		unapply()
	}
	return out
}

func dragontoothCount(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothCount(b, depth-1)
		unapply()
	}
	return nodes
}

func TestDivideMatchesDragontooth(t *testing.T) {
	tests := []struct {
		fen   string
		depth int
	}{
		{board.StartFEN, 3},
		{board.KiwipeteFEN, 2},
		{"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 2},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			divide, err := Divide(context.Background(), mustBoard(t, tc.fen), tc.depth)
			require.NoError(t, err)
			assert.Equal(t, dragontoothDivide(tc.fen, tc.depth), ByName(divide))
		})
	}
}

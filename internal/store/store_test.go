package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/chesscore/internal/board"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMagicsRoundTrip(t *testing.T) {
	s := openTemp(t)

	_, err := s.LoadMagics(board.RookSlider)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SaveMagics(board.RookSlider, board.RookMagics()))
	require.NoError(t, s.SaveMagics(board.BishopSlider, board.BishopMagics()))

	rook, err := s.LoadMagics(board.RookSlider)
	require.NoError(t, err)
	assert.Equal(t, board.RookMagics(), rook)

	bishop, err := s.LoadMagics(board.BishopSlider)
	require.NoError(t, err)
	assert.Equal(t, board.BishopMagics(), bishop)

	idx, err := board.NewMagicIndex(rook, bishop)
	require.NoError(t, err)
	assert.True(t, idx.Equal(board.Default()))
}

func TestMagicsChecksum(t *testing.T) {
	s := openTemp(t)

	entries := board.RookMagics()
	set := MagicSet{
		Slider:   board.RookSlider.String(),
		Entries:  entries,
		Checksum: magicChecksum(entries) + 1,
	}
	require.NoError(t, s.put(magicKey(board.RookSlider), set))

	_, err := s.LoadMagics(board.RookSlider)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestPerftRecords(t *testing.T) {
	s := openTemp(t)

	_, err := s.LoadPerft(board.StartFEN, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	for depth, nodes := range []uint64{0, 20, 400, 8902} {
		if depth == 0 {
			continue
		}
		require.NoError(t, s.SavePerft(PerftRecord{
			FEN:     board.StartFEN,
			Depth:   depth,
			Nodes:   nodes,
			Elapsed: time.Millisecond,
		}))
	}
	require.NoError(t, s.SavePerft(PerftRecord{
		FEN:    board.KiwipeteFEN,
		Depth:  1,
		Nodes:  48,
		Divide: map[string]uint64{"e1g1": 1},
	}))

	rec, err := s.LoadPerft(board.StartFEN, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(8902), rec.Nodes)
	assert.False(t, rec.RecordedAt.IsZero())

	list, err := s.ListPerft(board.StartFEN)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, rec := range list {
		assert.Equal(t, i+1, rec.Depth)
	}

	kiwi, err := s.ListPerft(board.KiwipeteFEN)
	require.NoError(t, err)
	require.Len(t, kiwi, 1)
	assert.Equal(t, uint64(1), kiwi[0].Divide["e1g1"])
}

func TestGetDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	dir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestOpenDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	s, err := OpenDir(DefaultDir)
	require.NoError(t, err)
	require.NoError(t, s.SavePerft(PerftRecord{FEN: board.StartFEN, Depth: 1, Nodes: 20}))
	require.NoError(t, s.Close())

	dir, err := GetDatabaseDir()
	require.NoError(t, err)
	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	rec, err := reopened.LoadPerft(board.StartFEN, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), rec.Nodes)
}

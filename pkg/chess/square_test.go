package chess_test

import (
	"testing"

	"github.com/herohde/checkai/pkg/chess"
	"github.com/stretchr/testify/assert"
)

func TestSquare(t *testing.T) {
	assert.Equal(t, chess.NewSquare(2, 1), chess.NewSquare(2, 1))
	assert.True(t, chess.NewSquare(0, 0).IsValid())
	assert.False(t, chess.Square{File: 8, Rank: 0}.IsValid())

	assert.Equal(t, "e4", chess.NewSquare(4, 3).String())
	assert.Equal(t, "a1", chess.NewSquare(0, 0).String())
	assert.Equal(t, "h8", chess.NewSquare(7, 7).String())
}

func TestParseSquare(t *testing.T) {
	sq, ok := chess.ParseSquare("e4")
	assert.True(t, ok)
	assert.Equal(t, chess.NewSquare(4, 3), sq)

	_, ok = chess.ParseSquare("e9")
	assert.False(t, ok)
	_, ok = chess.ParseSquare("z1")
	assert.False(t, ok)
	_, ok = chess.ParseSquare("e44")
	assert.False(t, ok)
}

func TestSquareIndexRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq := chess.SquareFromIndex(i)
		assert.Equal(t, i, sq.Index())
	}
}

func TestSquareOffset(t *testing.T) {
	sq := chess.NewSquare(4, 3)
	to, ok := sq.Offset(1, 1)
	assert.True(t, ok)
	assert.Equal(t, chess.NewSquare(5, 4), to)

	_, ok = chess.NewSquare(0, 0).Offset(-1, 0)
	assert.False(t, ok)
}

package archive_test

import (
	"encoding/binary"
	"testing"

	"github.com/herohde/checkai/pkg/archive"
	"github.com/herohde/checkai/pkg/chess/movegen"
	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMoveRoundTrip(t *testing.T) {
	cases := []movegen.SubmittedMove{
		{From: "e2", To: "e4"},
		{From: "a1", To: "h8"},
		{From: "a7", To: "a8", Promotion: "Q"},
		{From: "b7", To: "a8", Promotion: "N"},
	}
	for _, mv := range cases {
		encoded, err := archive.EncodeMove(mv)
		require.NoError(t, err)
		decoded, err := archive.DecodeMove(encoded)
		require.NoError(t, err)
		assert.Equal(t, mv, decoded)
	}
}

func TestDecodeMoveRejectsIllegalPromotionBits(t *testing.T) {
	for _, promoBits := range []uint16{5, 6, 7} {
		encoded := uint16(0) | (uint16(1) << 6) | (promoBits << 12)
		_, err := archive.DecodeMove(encoded)
		require.Error(t, err)
	}
}

func TestDeserializeRejectsIllegalPromotionBits(t *testing.T) {
	data := make([]byte, 43)
	copy(data[0:4], "CKAI")
	data[4] = 1
	binary.BigEndian.PutUint16(data[39:41], 1) // move count = 1

	encoded := uint16(5) << 12 // promotion bits = 5, illegal
	binary.LittleEndian.PutUint16(data[41:43], encoded)

	_, err := archive.Deserialize(data)
	assert.Error(t, err)
}

func TestSerializeDeserializeThreeMoveGame(t *testing.T) {
	g := chessgame.New()
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "e2", To: "e4"}))
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "e7", To: "e5"}))
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "g1", To: "f3"}))

	data, err := archive.Serialize(g)
	require.NoError(t, err)
	assert.Equal(t, 47, len(data), "41-byte header + 3 moves * 2 bytes = 47 bytes")

	decoded, err := archive.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, g.ID, decoded.ID)
	assert.Equal(t, 3, decoded.MoveCount())
	assert.Equal(t, "e2", decoded.Moves[0].From)
	assert.Equal(t, "e4", decoded.Moves[0].To)
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	data := make([]byte, 41)
	copy(data, "XXXX")
	_, err := archive.Deserialize(data)
	assert.Error(t, err)
}

func TestDeserializeRejectsShortHeader(t *testing.T) {
	_, err := archive.Deserialize(make([]byte, 10))
	assert.Error(t, err)
}

func TestReplayReconstructsPosition(t *testing.T) {
	g := chessgame.New()
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "e2", To: "e4"}))
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "e7", To: "e5"}))
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "g1", To: "f3"}))

	data, err := archive.Serialize(g)
	require.NoError(t, err)
	decoded, err := archive.Deserialize(data)
	require.NoError(t, err)

	replayed, err := decoded.Replay(2)
	require.NoError(t, err)
	assert.Len(t, replayed.MoveHistory, 2)

	full, err := decoded.ReplayFull()
	require.NoError(t, err)
	assert.Equal(t, g.Board.ToMap(), full.Board.ToMap())
}

func TestReplayClampsUpToMove(t *testing.T) {
	g := chessgame.New()
	require.NoError(t, g.MakeMove(movegen.SubmittedMove{From: "e2", To: "e4"}))

	data, err := archive.Serialize(g)
	require.NoError(t, err)
	decoded, err := archive.Deserialize(data)
	require.NoError(t, err)

	replayed, err := decoded.Replay(500)
	require.NoError(t, err)
	assert.Len(t, replayed.MoveHistory, 1)
}

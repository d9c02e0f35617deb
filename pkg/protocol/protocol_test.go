package protocol_test

import (
	"testing"

	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/herohde/checkai/pkg/protocol"
	"github.com/stretchr/testify/assert"
)

func TestToGameStateReflectsStartingPosition(t *testing.T) {
	g := chessgame.New()
	state := protocol.ToGameState(g)

	assert.Len(t, state.Board, 32)
	assert.Equal(t, "white", string(mustMarshalColorString(state.Turn)))
	assert.True(t, state.Castling.White.Kingside)
	assert.Nil(t, state.EnPassant)
	assert.Equal(t, 1, state.FullmoveNumber)
}

func mustMarshalColorString(c interface{ String() string }) string {
	return c.String()
}

func TestBadRequestErrorKind(t *testing.T) {
	err := protocol.BadRequest("bad request: %s", "missing field")
	assert.Equal(t, protocol.ErrBadRequest, err.Kind)
	assert.Contains(t, err.Error(), "missing field")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := assertErr("boom")
	err := protocol.Wrap(protocol.ErrStorage, "storage failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestStorageErrorWrapsCause(t *testing.T) {
	cause := assertErr("disk full")
	err := protocol.StorageError(cause, "write failed")
	assert.Equal(t, protocol.ErrStorage, err.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestIllegalActionErrorKind(t *testing.T) {
	err := protocol.IllegalAction("no draw offer to accept")
	assert.Equal(t, protocol.ErrIllegalAction, err.Kind)
}

func TestSchemaErrorKind(t *testing.T) {
	err := protocol.SchemaError("invalid magic bytes")
	assert.Equal(t, protocol.ErrSchema, err.Kind)
}

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

func assertErr(msg string) error { return simpleErr(msg) }

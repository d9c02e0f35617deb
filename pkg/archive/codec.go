// Package archive implements the compact binary wire format used to persist
// and replay completed (and in-progress) games (spec §4.3).
package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/herohde/checkai/pkg/chess/movegen"
	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/herohde/checkai/pkg/protocol"
)

// magic identifies a CheckAI game file.
var magic = [4]byte{'C', 'K', 'A', 'I'}

// formatVersion is the current binary format version.
const formatVersion = 1

// headerSize is the fixed header length in bytes, before the move list.
const headerSize = 41

var resultCodes = map[chessgame.Result]byte{
	chessgame.NoResult:  0,
	chessgame.WhiteWins: 1,
	chessgame.BlackWins: 2,
	chessgame.Draw:      3,
}

var resultFromCode = map[byte]chessgame.Result{
	0: chessgame.NoResult,
	1: chessgame.WhiteWins,
	2: chessgame.BlackWins,
	3: chessgame.Draw,
}

var endReasonCodes = map[chessgame.EndReason]byte{
	chessgame.NoEndReason:          0,
	chessgame.Checkmate:            1,
	chessgame.Stalemate:            2,
	chessgame.ThreefoldRepetition:  3,
	chessgame.FivefoldRepetition:   4,
	chessgame.FiftyMoveRule:        5,
	chessgame.SeventyFiveMoveRule:  6,
	chessgame.InsufficientMaterial: 7,
	chessgame.Resignation:          8,
	chessgame.DrawAgreement:        9,
}

var endReasonFromCode = map[byte]chessgame.EndReason{
	0: chessgame.NoEndReason,
	1: chessgame.Checkmate,
	2: chessgame.Stalemate,
	3: chessgame.ThreefoldRepetition,
	4: chessgame.FivefoldRepetition,
	5: chessgame.FiftyMoveRule,
	6: chessgame.SeventyFiveMoveRule,
	7: chessgame.InsufficientMaterial,
	8: chessgame.Resignation,
	9: chessgame.DrawAgreement,
}

var promotionCodes = map[string]uint16{
	"":  0,
	"Q": 1,
	"R": 2,
	"B": 3,
	"N": 4,
}

var promotionFromCode = map[uint16]string{
	0: "",
	1: "Q",
	2: "R",
	3: "B",
	4: "N",
}

// EncodeMove packs a submitted move into 2 bytes: 6 bits from-square, 6 bits
// to-square, 3 bits promotion, 1 reserved bit (spec §4.3 Move encoding).
func EncodeMove(mv movegen.SubmittedMove) (uint16, error) {
	from, ok := parseSquareIndex(mv.From)
	if !ok {
		return 0, fmt.Errorf("invalid from square: %s", mv.From)
	}
	to, ok := parseSquareIndex(mv.To)
	if !ok {
		return 0, fmt.Errorf("invalid to square: %s", mv.To)
	}
	promo, ok := promotionCodes[mv.Promotion]
	if !ok {
		return 0, fmt.Errorf("invalid promotion piece: %s", mv.Promotion)
	}
	return from | (to << 6) | (promo << 12), nil
}

// DecodeMove unpacks a 2-byte encoded move back into a SubmittedMove.
// Promotion bits 5-7 are illegal (only 0-4 are assigned) and fail with a
// SchemaError (spec §4.3 decoding errors).
func DecodeMove(encoded uint16) (movegen.SubmittedMove, error) {
	fromIdx := int(encoded & 0x3F)
	toIdx := int((encoded >> 6) & 0x3F)
	promoBits := (encoded >> 12) & 0x07

	promo, ok := promotionFromCode[promoBits]
	if !ok {
		return movegen.SubmittedMove{}, protocol.SchemaError("illegal promotion bits: %d", promoBits)
	}

	return movegen.SubmittedMove{
		From:      squareIndexString(fromIdx),
		To:        squareIndexString(toIdx),
		Promotion: promo,
	}, nil
}

func parseSquareIndex(s string) (uint16, bool) {
	sq, ok := parseAlgebraic(s)
	if !ok {
		return 0, false
	}
	return uint16(sq), true
}

// parseAlgebraic parses "e4"-style notation into a rank*8+file index,
// independent of pkg/chess's Square type to keep the codec's bit layout
// pinned regardless of future changes to that type (spec §4.3 stability).
func parseAlgebraic(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return rank*8 + file, true
}

func squareIndexString(idx int) string {
	file := idx % 8
	rank := idx / 8
	return string([]byte{byte('a' + file), byte('1' + rank)})
}

// Serialize encodes a game into the compact binary format. Only the move
// history and minimal metadata are stored; full state is reconstructed by
// replay.
func Serialize(g *chessgame.Game) ([]byte, error) {
	moveCount := len(g.MoveHistory)
	if moveCount > 0xFFFF {
		return nil, fmt.Errorf("game has too many moves to archive: %d", moveCount)
	}

	buf := make([]byte, headerSize+moveCount*2)

	copy(buf[0:4], magic[:])
	buf[4] = formatVersion
	copy(buf[5:21], g.ID[:])
	binary.BigEndian.PutUint64(buf[21:29], uint64(g.StartTimestamp))
	binary.BigEndian.PutUint64(buf[29:37], uint64(g.EndTimestamp))
	buf[37] = resultCodes[g.Result]
	buf[38] = endReasonCodes[g.EndReason]
	binary.BigEndian.PutUint16(buf[39:41], uint16(moveCount))

	for i, rec := range g.MoveHistory {
		encoded, err := EncodeMove(movegen.SubmittedMove{From: rec.From, To: rec.To, Promotion: rec.Promotion})
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint16(buf[headerSize+i*2:headerSize+i*2+2], encoded)
	}

	return buf, nil
}

// Game is a decoded archive: metadata plus the ordered move list, which can
// be replayed to reconstruct the board state at any point (spec §4.3 Archive).
type Game struct {
	ID             uuid.UUID
	StartTimestamp int64
	EndTimestamp   int64
	Result         chessgame.Result
	EndReason      chessgame.EndReason
	Moves          []movegen.SubmittedMove
}

// MoveCount returns the number of half-moves in the archive.
func (a *Game) MoveCount() int { return len(a.Moves) }

// RawSize returns the uncompressed binary size of this archive.
func (a *Game) RawSize() int { return headerSize + len(a.Moves)*2 }

// Validate checks data against the five decoding error cases spec §4.3
// requires to fail with SchemaError before any of it is trusted: buffer
// shorter than the fixed header, magic mismatch, unknown version, a
// declared move count exceeding the remaining bytes, and illegal
// promotion bits (5-7) in any encoded move.
func Validate(data []byte) error {
	if len(data) < headerSize {
		return protocol.SchemaError("archive header too short: %d bytes", len(data))
	}
	if [4]byte(data[0:4]) != magic {
		return protocol.SchemaError("invalid magic bytes")
	}

	version := data[4]
	if version != formatVersion {
		return protocol.SchemaError("unsupported archive format version: %d", version)
	}

	moveCount := int(binary.BigEndian.Uint16(data[39:41]))
	expectedLen := headerSize + moveCount*2
	if len(data) < expectedLen {
		return protocol.SchemaError("archive data too short: expected at least %d bytes, got %d", expectedLen, len(data))
	}

	for i := 0; i < moveCount; i++ {
		offset := headerSize + i*2
		encoded := binary.LittleEndian.Uint16(data[offset : offset+2])
		promoBits := (encoded >> 12) & 0x07
		if _, ok := promotionFromCode[promoBits]; !ok {
			return protocol.SchemaError("illegal promotion bits in move %d: %d", i, promoBits)
		}
	}

	return nil
}

// Deserialize decodes a game from its binary representation.
func Deserialize(data []byte) (*Game, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(data[5:21])
	if err != nil {
		return nil, protocol.SchemaError("invalid game id: %v", err)
	}

	startTS := int64(binary.BigEndian.Uint64(data[21:29]))
	endTS := int64(binary.BigEndian.Uint64(data[29:37]))
	result := resultFromCode[data[37]]
	endReason := endReasonFromCode[data[38]]
	moveCount := int(binary.BigEndian.Uint16(data[39:41]))

	moves := make([]movegen.SubmittedMove, moveCount)
	for i := 0; i < moveCount; i++ {
		offset := headerSize + i*2
		encoded := binary.LittleEndian.Uint16(data[offset : offset+2])
		mv, err := DecodeMove(encoded)
		if err != nil {
			return nil, err
		}
		moves[i] = mv
	}

	return &Game{
		ID:             id,
		StartTimestamp: startTS,
		EndTimestamp:   endTS,
		Result:         result,
		EndReason:      endReason,
		Moves:          moves,
	}, nil
}

// Replay reconstructs a Game by replaying the first upToMove half-moves from
// the starting position. upToMove is clamped to the available move count
// (spec §4.3 Replay).
func (a *Game) Replay(upToMove int) (*chessgame.Game, error) {
	g := chessgame.NewWithIDAndTimestamps(a.ID, a.StartTimestamp, a.EndTimestamp)

	limit := upToMove
	if limit > len(a.Moves) {
		limit = len(a.Moves)
	}

	for i := 0; i < limit; i++ {
		if err := g.MakeMove(a.Moves[i]); err != nil {
			return nil, fmt.Errorf("replay failed at move %d: %w", i+1, err)
		}
	}
	return g, nil
}

// ReplayFull replays the entire game to its final position.
func (a *Game) ReplayFull() (*chessgame.Game, error) {
	return a.Replay(len(a.Moves))
}

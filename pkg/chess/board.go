package chess

import (
	"strconv"
	"strings"
)

// Board is the 64-cell chess board, indexed rank*8+file. A nil entry means
// the square is empty.
type Board struct {
	cells [64]*Piece
}

// Get returns the piece on sq, if any.
func (b *Board) Get(sq Square) (Piece, bool) {
	p := b.cells[sq.Index()]
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

// Set places p on sq, replacing any piece already there. Use Clear to empty sq.
func (b *Board) Set(sq Square, p Piece) {
	cp := p
	b.cells[sq.Index()] = &cp
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.cells[sq.Index()] = nil
}

// Clone returns a deep copy of the board, suitable for speculative move
// application during legality testing (spec §4.1 Legal filter).
func (b *Board) Clone() *Board {
	out := &Board{}
	for i, p := range b.cells {
		if p != nil {
			cp := *p
			out.cells[i] = &cp
		}
	}
	return out
}

// NewStartingBoard returns the standard starting position.
func NewStartingBoard() *Board {
	b := &Board{}
	backRank := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		b.Set(NewSquare(file, 0), Piece{Kind: kind, Color: White})
		b.Set(NewSquare(file, 1), Piece{Kind: Pawn, Color: White})
		b.Set(NewSquare(file, 6), Piece{Kind: Pawn, Color: Black})
		b.Set(NewSquare(file, 7), Piece{Kind: kind, Color: Black})
	}
	return b
}

// FindKing returns the square of the color's king, if present. A legal game
// position always has exactly one (spec §3 Board invariant).
func (b *Board) FindKing(color Color) (Square, bool) {
	for i, p := range b.cells {
		if p != nil && p.Kind == King && p.Color == color {
			return SquareFromIndex(i), true
		}
	}
	return Square{}, false
}

// ToMap renders the board as the {square: pieceChar} wire format (spec §6
// State JSON).
func (b *Board) ToMap() map[string]string {
	out := make(map[string]string)
	for i, p := range b.cells {
		if p != nil {
			out[SquareFromIndex(i).String()] = string(p.FENChar())
		}
	}
	return out
}

// BoardFromMap builds a Board from the {square: pieceChar} wire format.
func BoardFromMap(m map[string]string) (*Board, error) {
	b := &Board{}
	for sqStr, pieceStr := range m {
		sq, ok := ParseSquare(sqStr)
		if !ok {
			return nil, invalidSquareError(sqStr)
		}
		if len(pieceStr) == 0 {
			return nil, emptyPieceError(sqStr)
		}
		p, ok := ParseFENChar(pieceStr[0])
		if !ok {
			return nil, invalidPieceError{piece: pieceStr, square: sqStr}
		}
		b.Set(sq, p)
	}
	return b, nil
}

// Fingerprint returns the canonical encoding of placement + side to move +
// castling rights + en-passant target (spec §3 PositionFingerprint, §4.3
// Open Question: this format is a stability contract for replayed
// repetition detection and must never change incompatibly).
func (b *Board) Fingerprint(turn Color, castling CastlingRights, ep *Square) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.Get(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castling.FEN())

	sb.WriteByte(' ')
	if ep != nil {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	return sb.String()
}

type invalidSquareError string

func (e invalidSquareError) Error() string { return "invalid square: " + string(e) }

type emptyPieceError string

func (e emptyPieceError) Error() string { return "empty piece string for square " + string(e) }

type invalidPieceError struct{ piece, square string }

func (e invalidPieceError) Error() string {
	return "invalid piece symbol '" + e.piece + "' on " + e.square
}

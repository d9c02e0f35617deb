package movegen

import (
	"fmt"
	"strings"

	"github.com/herohde/checkai/pkg/chess"
)

// SubmittedMove is a move as submitted externally: two square strings plus
// an optional promotion letter (spec §6 Move JSON).
type SubmittedMove struct {
	From, To  string
	Promotion string // "", "Q", "R", "B" or "N".
}

// FindMatchingLegalMove resolves a SubmittedMove against the legal moves of
// the position and returns the unique engine Move it denotes (spec §4.1
// Matching external moves). The error text enumerates legal destinations
// from the source square to aid diagnosis.
func FindMatchingLegalMove(b *chess.Board, turn chess.Color, castling chess.CastlingRights, ep *chess.Square, sm SubmittedMove) (chess.Move, error) {
	from, ok := chess.ParseSquare(sm.From)
	if !ok {
		return chess.Move{}, fmt.Errorf("invalid from square: %s", sm.From)
	}
	to, ok := chess.ParseSquare(sm.To)
	if !ok {
		return chess.Move{}, fmt.Errorf("invalid to square: %s", sm.To)
	}

	var promotion chess.PieceKind
	if sm.Promotion != "" {
		promotion, ok = chess.ParsePromotionChar(sm.Promotion)
		if !ok {
			return chess.Move{}, fmt.Errorf("invalid promotion piece: %s", sm.Promotion)
		}
	}

	mover, ok := b.Get(from)
	if !ok {
		return chess.Move{}, fmt.Errorf("no piece on square %s", sm.From)
	}
	if mover.Color != turn {
		return chess.Move{}, fmt.Errorf("piece on %s belongs to %v, but it is %v's turn", sm.From, mover.Color, turn)
	}

	legal := GenerateLegalMoves(b, turn, castling, ep)

	var matching []chess.Move
	for _, mv := range legal {
		if mv.From == from && mv.To == to && mv.Promotion == promotion {
			matching = append(matching, mv)
		}
	}

	switch len(matching) {
	case 0:
		var available []string
		for _, mv := range legal {
			if mv.From == from {
				available = append(available, mv.String())
			}
		}
		if len(available) == 0 {
			return chess.Move{}, fmt.Errorf("illegal move: %s (%c) has no legal moves", sm.From, mover.FENChar())
		}
		return chess.Move{}, fmt.Errorf("illegal move: %s%s%s is not legal. Legal moves from %s: %s",
			sm.From, sm.To, sm.Promotion, sm.From, strings.Join(available, ", "))
	default:
		return matching[0], nil
	}
}

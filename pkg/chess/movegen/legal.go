package movegen

import "github.com/herohde/checkai/pkg/chess"

// GenerateLegalMoves returns every legal move for turn in the given
// position: the pseudo-legal moves filtered to those that do not leave the
// mover's own king in check (spec §4.1 Legal filter).
func GenerateLegalMoves(b *chess.Board, turn chess.Color, castling chess.CastlingRights, ep *chess.Square) []chess.Move {
	pseudo := generatePseudoLegal(b, turn, castling, ep)
	legal := make([]chess.Move, 0, len(pseudo))

	for _, mv := range pseudo {
		test := b.Clone()
		ApplyMove(test, mv, turn)
		if !IsInCheck(test, turn) {
			legal = append(legal, mv)
		}
	}

	return legal
}

// ApplyMove mutates b by playing mv for color: normal moves and captures,
// castling (moves the matching rook), en passant (removes the captured
// pawn) and promotion (replaces the pawn with the promoted piece) — spec
// §4.1 Mutator.
func ApplyMove(b *chess.Board, mv chess.Move, color chess.Color) {
	piece, _ := b.Get(mv.From)
	b.Clear(mv.From)

	if mv.IsCastling {
		rank := mv.From.Rank
		switch mv.To.File {
		case 6:
			rook, _ := b.Get(chess.NewSquare(7, rank))
			b.Clear(chess.NewSquare(7, rank))
			b.Set(chess.NewSquare(5, rank), rook)
		case 2:
			rook, _ := b.Get(chess.NewSquare(0, rank))
			b.Clear(chess.NewSquare(0, rank))
			b.Set(chess.NewSquare(3, rank), rook)
		}
	}

	if mv.IsEnPassant {
		capturedRank := mv.To.Rank - 1
		if color == chess.Black {
			capturedRank = mv.To.Rank + 1
		}
		b.Clear(chess.NewSquare(mv.To.File, capturedRank))
	}

	placed := piece
	if mv.Promotion != chess.NoPieceKind {
		placed = chess.Piece{Kind: mv.Promotion, Color: color}
	}
	b.Set(mv.To, placed)
}

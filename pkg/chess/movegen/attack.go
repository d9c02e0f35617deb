// Package movegen implements the CheckAI rules engine: attack detection,
// pseudo-legal and legal move generation, the move mutator, insufficient
// material detection and the move matcher used to validate submitted moves
// (spec §4.1).
package movegen

import "github.com/herohde/checkai/pkg/chess"

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var queenDirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// IsSquareAttacked reports whether sq is attacked by any piece of attacker.
func IsSquareAttacked(b *chess.Board, sq chess.Square, attacker chess.Color) bool {
	for _, d := range knightOffsets {
		if from, ok := sq.Offset(d[0], d[1]); ok {
			if p, ok := b.Get(from); ok && p.Color == attacker && p.Kind == chess.Knight {
				return true
			}
		}
	}

	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			if from, ok := sq.Offset(df, dr); ok {
				if p, ok := b.Get(from); ok && p.Color == attacker && p.Kind == chess.King {
					return true
				}
			}
		}
	}

	pawnDir := 1
	if attacker == chess.Black {
		pawnDir = -1
	}
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Offset(df, -pawnDir); ok {
			if p, ok := b.Get(from); ok && p.Color == attacker && p.Kind == chess.Pawn {
				return true
			}
		}
	}

	for _, d := range bishopDirs {
		cur := sq
		for {
			next, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			if p, ok := b.Get(next); ok {
				if p.Color == attacker && (p.Kind == chess.Bishop || p.Kind == chess.Queen) {
					return true
				}
				break
			}
			cur = next
		}
	}

	for _, d := range rookDirs {
		cur := sq
		for {
			next, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			if p, ok := b.Get(next); ok {
				if p.Color == attacker && (p.Kind == chess.Rook || p.Kind == chess.Queen) {
					return true
				}
				break
			}
			cur = next
		}
	}

	return false
}

// IsInCheck reports whether color's king is currently attacked.
func IsInCheck(b *chess.Board, color chess.Color) bool {
	king, ok := b.FindKing(color)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, color.Opponent())
}

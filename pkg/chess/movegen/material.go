package movegen

import "github.com/herohde/checkai/pkg/chess"

// IsInsufficientMaterial reports whether the position is a dead position per
// FIDE Art. 5.2.2: king-only, king+minor vs king, or same-colored-square
// bishop vs bishop (spec §4.1 Insufficient material).
func IsInsufficientMaterial(b *chess.Board) bool {
	type piece struct {
		kind chess.PieceKind
		sq   chess.Square
	}
	var white, black []piece

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := chess.NewSquare(file, rank)
			p, ok := b.Get(sq)
			if !ok || p.Kind == chess.King {
				continue
			}
			if p.Color == chess.White {
				white = append(white, piece{p.Kind, sq})
			} else {
				black = append(black, piece{p.Kind, sq})
			}
		}
	}

	if len(white) == 0 && len(black) == 0 {
		return true
	}

	isMinor := func(k chess.PieceKind) bool { return k == chess.Bishop || k == chess.Knight }

	if len(white) == 0 && len(black) == 1 && isMinor(black[0].kind) {
		return true
	}
	if len(black) == 0 && len(white) == 1 && isMinor(white[0].kind) {
		return true
	}

	if len(white) == 1 && len(black) == 1 && white[0].kind == chess.Bishop && black[0].kind == chess.Bishop {
		wColor := (white[0].sq.File + white[0].sq.Rank) % 2
		bColor := (black[0].sq.File + black[0].sq.Rank) % 2
		if wColor == bColor {
			return true
		}
	}

	return false
}

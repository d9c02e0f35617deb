package movegen

import "github.com/herohde/checkai/pkg/chess"

// generatePseudoLegal generates all pseudo-legal moves for turn: moves that
// follow piece-movement and occupancy rules but may leave the own king in
// check (spec §4.1 Pseudo-legal generation).
func generatePseudoLegal(b *chess.Board, turn chess.Color, castling chess.CastlingRights, ep *chess.Square) []chess.Move {
	moves := make([]chess.Move, 0, 64)

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			from := chess.NewSquare(file, rank)
			p, ok := b.Get(from)
			if !ok || p.Color != turn {
				continue
			}

			switch p.Kind {
			case chess.King:
				moves = append(moves, generateKingMoves(b, from, turn, castling)...)
			case chess.Queen:
				moves = append(moves, generateSlidingMoves(b, from, turn, queenDirs[:])...)
			case chess.Rook:
				moves = append(moves, generateSlidingMoves(b, from, turn, rookDirs[:])...)
			case chess.Bishop:
				moves = append(moves, generateSlidingMoves(b, from, turn, bishopDirs[:])...)
			case chess.Knight:
				moves = append(moves, generateKnightMoves(b, from, turn)...)
			case chess.Pawn:
				moves = append(moves, generatePawnMoves(b, from, turn, ep)...)
			}
		}
	}

	return moves
}

func generateSlidingMoves(b *chess.Board, from chess.Square, color chess.Color, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, d := range dirs {
		cur := from
		for {
			to, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			target, occupied := b.Get(to)
			if !occupied {
				moves = append(moves, chess.Simple(from, to))
				cur = to
				continue
			}
			if target.Color != color {
				moves = append(moves, chess.Simple(from, to))
			}
			break
		}
	}
	return moves
}

func generateKnightMoves(b *chess.Board, from chess.Square, color chess.Color) []chess.Move {
	var moves []chess.Move
	for _, d := range knightOffsets {
		to, ok := from.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if target, occupied := b.Get(to); !occupied || target.Color != color {
			moves = append(moves, chess.Simple(from, to))
		}
	}
	return moves
}

func generateKingMoves(b *chess.Board, from chess.Square, color chess.Color, castling chess.CastlingRights) []chess.Move {
	var moves []chess.Move
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			to, ok := from.Offset(df, dr)
			if !ok {
				continue
			}
			if target, occupied := b.Get(to); !occupied || target.Color != color {
				moves = append(moves, chess.Simple(from, to))
			}
		}
	}

	rights := castling.ForColor(color)
	rank := 0
	if color == chess.Black {
		rank = 7
	}
	kingStart := chess.NewSquare(4, rank)
	if from != kingStart {
		return moves
	}
	if IsSquareAttacked(b, from, color.Opponent()) {
		return moves
	}

	if rights.Kingside {
		fSq, gSq, rookSq := chess.NewSquare(5, rank), chess.NewSquare(6, rank), chess.NewSquare(7, rank)
		_, fOcc := b.Get(fSq)
		_, gOcc := b.Get(gSq)
		pathClear := !fOcc && !gOcc
		rook, rookOk := b.Get(rookSq)
		rookPresent := rookOk && rook.Kind == chess.Rook && rook.Color == color
		safe := !IsSquareAttacked(b, fSq, color.Opponent()) && !IsSquareAttacked(b, gSq, color.Opponent())
		if pathClear && rookPresent && safe {
			moves = append(moves, chess.Move{From: from, To: gSq, IsCastling: true})
		}
	}

	if rights.Queenside {
		dSq, cSq, bSq, rookSq := chess.NewSquare(3, rank), chess.NewSquare(2, rank), chess.NewSquare(1, rank), chess.NewSquare(0, rank)
		_, dOcc := b.Get(dSq)
		_, cOcc := b.Get(cSq)
		_, bOcc := b.Get(bSq)
		pathClear := !dOcc && !cOcc && !bOcc
		rook, rookOk := b.Get(rookSq)
		rookPresent := rookOk && rook.Kind == chess.Rook && rook.Color == color
		// b-file square must be empty but need not be safe (spec §4.1 Castling).
		safe := !IsSquareAttacked(b, dSq, color.Opponent()) && !IsSquareAttacked(b, cSq, color.Opponent())
		if pathClear && rookPresent && safe {
			moves = append(moves, chess.Move{From: from, To: cSq, IsCastling: true})
		}
	}

	return moves
}

func generatePawnMoves(b *chess.Board, from chess.Square, color chess.Color, ep *chess.Square) []chess.Move {
	var moves []chess.Move
	dir := color.PawnDirection()
	startRank := color.PawnStartRank()
	promoRank := color.PromotionRank()

	add := func(to chess.Square, isEP bool) {
		if to.Rank == promoRank {
			for _, kind := range chess.PromotionKinds {
				moves = append(moves, chess.Move{From: from, To: to, Promotion: kind})
			}
			return
		}
		moves = append(moves, chess.Move{From: from, To: to, IsEnPassant: isEP})
	}

	if oneAhead, ok := from.Offset(0, dir); ok {
		if _, occupied := b.Get(oneAhead); !occupied {
			add(oneAhead, false)

			if from.Rank == startRank {
				if twoAhead, ok := from.Offset(0, dir*2); ok {
					if _, occupied := b.Get(twoAhead); !occupied {
						add(twoAhead, false)
					}
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if target, occupied := b.Get(to); occupied && target.Color != color {
			add(to, false)
		}
		if ep != nil && to == *ep {
			add(to, true)
		}
	}

	return moves
}

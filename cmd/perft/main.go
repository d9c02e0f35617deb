// perft counts the legal move tree below the starting position to validate
// the rules engine's move generator. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/herohde/checkai/pkg/chess"
	"github.com/herohde/checkai/pkg/chess/movegen"
	"github.com/seekerror/logw"
)

var (
	depth  = flag.Int("depth", 4, "Search depth")
	divide = flag.Bool("divide", false, "Divide counts by initial move")
)

type state struct {
	board    *chess.Board
	castling chess.CastlingRights
	ep       *chess.Square
}

func main() {
	ctx := context.Background()
	flag.Parse()

	s := state{
		board:    chess.NewStartingBoard(),
		castling: chess.FullCastlingRights(),
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(s, chess.White, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,start,%v,%v,%v\n", i, nodes, duration.Microseconds())
	}

	logw.Infof(ctx, "perft complete to depth %d", *depth)
}

func search(s state, turn chess.Color, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, mv := range movegen.GenerateLegalMoves(s.board, turn, s.castling, s.ep) {
		next := apply(s, mv, turn)
		count := search(next, turn.Opponent(), depth-1, false)
		if d {
			fmt.Printf("%v: %v\n", mv, count)
		}
		nodes += count
	}
	return nodes
}

// apply plays mv on a cloned board and returns the resulting state,
// updating castling rights and the en passant target the way
// pkg/chessgame.Game.MakeMove does.
func apply(s state, mv chess.Move, turn chess.Color) state {
	board := s.board.Clone()
	castling := s.castling

	movingPiece, _ := board.Get(mv.From)
	isPawnMove := movingPiece.Kind == chess.Pawn

	movegen.ApplyMove(board, mv, turn)

	if movingPiece.Kind == chess.King {
		castling.Clear(turn)
	}
	clearRookRights(&castling, mv.From)
	clearRookRights(&castling, mv.To)

	var ep *chess.Square
	if isPawnMove {
		rankDiff := mv.To.Rank - mv.From.Rank
		if rankDiff < 0 {
			rankDiff = -rankDiff
		}
		if rankDiff == 2 {
			epRank := mv.From.Rank + turn.PawnDirection()
			sq := chess.NewSquare(mv.From.File, epRank)
			ep = &sq
		}
	}

	return state{board: board, castling: castling, ep: ep}
}

func clearRookRights(castling *chess.CastlingRights, sq chess.Square) {
	switch {
	case sq == chess.NewSquare(7, 0):
		castling.White.Kingside = false
	case sq == chess.NewSquare(0, 0):
		castling.White.Queenside = false
	case sq == chess.NewSquare(7, 7):
		castling.Black.Kingside = false
	case sq == chess.NewSquare(0, 7):
		castling.Black.Queenside = false
	}
}

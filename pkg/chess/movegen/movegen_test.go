package movegen_test

import (
	"testing"

	"github.com/herohde/checkai/pkg/chess"
	"github.com/herohde/checkai/pkg/chess/movegen"
	"github.com/stretchr/testify/assert"
)

func TestStartingPositionHas20Moves(t *testing.T) {
	b := chess.NewStartingBoard()
	castling := chess.FullCastlingRights()

	white := movegen.GenerateLegalMoves(b, chess.White, castling, nil)
	assert.Len(t, white, 20)
}

func TestStartingPositionNotInCheck(t *testing.T) {
	b := chess.NewStartingBoard()
	assert.False(t, movegen.IsInCheck(b, chess.White))
	assert.False(t, movegen.IsInCheck(b, chess.Black))
}

func TestInsufficientMaterialKvK(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	assert.True(t, movegen.IsInsufficientMaterial(b))
}

func TestInsufficientMaterialKBvK(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(2, 2), chess.Piece{Kind: chess.Bishop, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	assert.True(t, movegen.IsInsufficientMaterial(b))
}

func TestNotInsufficientWithRook(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(0, 0), chess.Piece{Kind: chess.Rook, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	assert.False(t, movegen.IsInsufficientMaterial(b))
}

func TestEnPassantMoveGenerated(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	b.Set(chess.NewSquare(4, 4), chess.Piece{Kind: chess.Pawn, Color: chess.White})
	b.Set(chess.NewSquare(3, 4), chess.Piece{Kind: chess.Pawn, Color: chess.Black})

	castling := chess.CastlingRights{}
	ep := chess.NewSquare(3, 5)
	moves := movegen.GenerateLegalMoves(b, chess.White, castling, &ep)

	var epMoves []chess.Move
	for _, mv := range moves {
		if mv.IsEnPassant {
			epMoves = append(epMoves, mv)
		}
	}
	assert.Len(t, epMoves, 1)
	assert.Equal(t, chess.NewSquare(4, 4), epMoves[0].From)
	assert.Equal(t, chess.NewSquare(3, 5), epMoves[0].To)
}

func TestCastlingAvailableInClearPosition(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(7, 0), chess.Piece{Kind: chess.Rook, Color: chess.White})
	b.Set(chess.NewSquare(0, 0), chess.Piece{Kind: chess.Rook, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})

	castling := chess.CastlingRights{White: chess.SideCastlingRights{Kingside: true, Queenside: true}}
	moves := movegen.GenerateLegalMoves(b, chess.White, castling, nil)

	var castlingMoves []chess.Move
	for _, mv := range moves {
		if mv.IsCastling {
			castlingMoves = append(castlingMoves, mv)
		}
	}
	assert.Len(t, castlingMoves, 2)
}

func TestCastlingForbiddenThroughCheck(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(7, 0), chess.Piece{Kind: chess.Rook, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	// Black rook attacks f1, the square the king must pass through.
	b.Set(chess.NewSquare(5, 7), chess.Piece{Kind: chess.Rook, Color: chess.Black})

	castling := chess.CastlingRights{White: chess.SideCastlingRights{Kingside: true}}
	moves := movegen.GenerateLegalMoves(b, chess.White, castling, nil)

	for _, mv := range moves {
		assert.False(t, mv.IsCastling, "castling through an attacked square must not be legal")
	}
}

func TestPromotionGeneratesFourMoves(t *testing.T) {
	b := &chess.Board{}
	b.Set(chess.NewSquare(4, 0), chess.Piece{Kind: chess.King, Color: chess.White})
	b.Set(chess.NewSquare(4, 7), chess.Piece{Kind: chess.King, Color: chess.Black})
	b.Set(chess.NewSquare(0, 6), chess.Piece{Kind: chess.Pawn, Color: chess.White})

	moves := movegen.GenerateLegalMoves(b, chess.White, chess.CastlingRights{}, nil)

	var promos []chess.Move
	for _, mv := range moves {
		if mv.From == chess.NewSquare(0, 6) {
			promos = append(promos, mv)
		}
	}
	assert.Len(t, promos, 4)
}

func TestFindMatchingLegalMoveReportsAvailableDestinations(t *testing.T) {
	b := chess.NewStartingBoard()
	_, err := movegen.FindMatchingLegalMove(b, chess.White, chess.FullCastlingRights(), nil, movegen.SubmittedMove{
		From: "e2", To: "e5",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Legal moves from e2")
}

func TestFindMatchingLegalMoveWrongColor(t *testing.T) {
	b := chess.NewStartingBoard()
	_, err := movegen.FindMatchingLegalMove(b, chess.White, chess.FullCastlingRights(), nil, movegen.SubmittedMove{
		From: "e7", To: "e5",
	})
	assert.Error(t, err)
}

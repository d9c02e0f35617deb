// Package chessgame manages the lifecycle of a single chess game: creation,
// move and action processing, automatic end detection and the move/position
// history needed for draw claims and replay (spec §4.2).
package chessgame

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/herohde/checkai/pkg/chess"
	"github.com/herohde/checkai/pkg/chess/movegen"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Result is the outcome of a completed game.
type Result int

const (
	NoResult Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// EndReason is why a completed game ended.
type EndReason int

const (
	NoEndReason EndReason = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
	FivefoldRepetition
	FiftyMoveRule
	SeventyFiveMoveRule
	InsufficientMaterial
	Resignation
	DrawAgreement
)

func (r EndReason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case ThreefoldRepetition:
		return "threefold_repetition"
	case FivefoldRepetition:
		return "fivefold_repetition"
	case FiftyMoveRule:
		return "fifty_move_rule"
	case SeventyFiveMoveRule:
		return "seventy_five_move_rule"
	case InsufficientMaterial:
		return "insufficient_material"
	case Resignation:
		return "resignation"
	case DrawAgreement:
		return "draw_agreement"
	default:
		return "none"
	}
}

// MoveRecord is one entry in a game's move history (spec §3 MoveRecord).
type MoveRecord struct {
	MoveNumber int
	Side       chess.Color
	Notation   string
	From, To   string
	Promotion  string
}

// Game holds a single game's complete state (spec §3 Game).
type Game struct {
	ID uuid.UUID

	Board     *chess.Board
	Turn      chess.Color
	Castling  chess.CastlingRights
	EnPassant lang.Optional[chess.Square]

	HalfmoveClock  int
	FullmoveNumber int

	PositionHistory []string
	MoveHistory     []MoveRecord

	Result    Result
	EndReason EndReason

	DrawOfferedBy lang.Optional[chess.Color]

	StartTimestamp int64
	EndTimestamp   int64
}

// New creates a game from the standard starting position (spec §4.2 New game).
func New() *Game {
	return newWithID(uuid.New(), nowUnix(), 0)
}

// NewWithIDAndTimestamps creates a fresh game with a specific identifier and
// timestamps, used by the archive codec to reconstruct a game for replay
// (spec §4.3 Replay).
func NewWithIDAndTimestamps(id uuid.UUID, startTS, endTS int64) *Game {
	return newWithID(id, startTS, endTS)
}

func newWithID(id uuid.UUID, startTS, endTS int64) *Game {
	board := chess.NewStartingBoard()
	castling := chess.FullCastlingRights()
	turn := chess.White

	g := &Game{
		ID:              id,
		Board:           board,
		Turn:            turn,
		Castling:        castling,
		HalfmoveClock:   0,
		FullmoveNumber:  1,
		PositionHistory: []string{board.Fingerprint(turn, castling, nil)},
		StartTimestamp:  startTS,
		EndTimestamp:    endTS,
	}
	return g
}

func nowUnix() int64 { return time.Now().Unix() }

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool {
	return g.Result != NoResult
}

// IsCheck reports whether the side to move is currently in check.
func (g *Game) IsCheck() bool {
	return movegen.IsInCheck(g.Board, g.Turn)
}

// LegalMoves returns every legal move for the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return movegen.GenerateLegalMoves(g.Board, g.Turn, g.Castling, epPointer(g.EnPassant))
}

// epPointer adapts the Game's Optional en passant target to the pointer
// form pkg/chess/movegen expects.
func epPointer(ep lang.Optional[chess.Square]) *chess.Square {
	v, ok := ep.V()
	if !ok {
		return nil
	}
	return &v
}

// MakeMove resolves sm against the legal moves of the current position,
// applies it, updates all derived state and runs automatic end detection
// (spec §4.2 Make move).
func (g *Game) MakeMove(sm movegen.SubmittedMove) error {
	if g.IsOver() {
		return fmt.Errorf("game is already over")
	}

	mv, err := movegen.FindMatchingLegalMove(g.Board, g.Turn, g.Castling, epPointer(g.EnPassant), sm)
	if err != nil {
		return err
	}

	g.MoveHistory = append(g.MoveHistory, MoveRecord{
		MoveNumber: g.FullmoveNumber,
		Side:       g.Turn,
		Notation:   mv.String(),
		From:       sm.From,
		To:         sm.To,
		Promotion:  sm.Promotion,
	})

	// Captured from the board state prior to mutation (spec §4.2).
	movingPiece, _ := g.Board.Get(mv.From)
	isPawnMove := movingPiece.Kind == chess.Pawn
	_, targetOccupied := g.Board.Get(mv.To)
	isCapture := targetOccupied || mv.IsEnPassant

	movegen.ApplyMove(g.Board, mv, g.Turn)

	g.updateCastlingRights(mv)

	g.EnPassant = lang.Optional[chess.Square]{}
	if isPawnMove {
		rankDiff := mv.To.Rank - mv.From.Rank
		if rankDiff < 0 {
			rankDiff = -rankDiff
		}
		if rankDiff == 2 {
			epRank := mv.From.Rank + g.Turn.PawnDirection()
			g.EnPassant = lang.Some(chess.NewSquare(mv.From.File, epRank))
		}
	}

	if isPawnMove || isCapture {
		g.HalfmoveClock = 0
	} else {
		g.HalfmoveClock++
	}

	g.Turn = g.Turn.Opponent()
	if g.Turn == chess.White {
		g.FullmoveNumber++
	}

	g.PositionHistory = append(g.PositionHistory, g.Board.Fingerprint(g.Turn, g.Castling, epPointer(g.EnPassant)))

	// A pending draw offer is implicitly declined by the opponent's move.
	// g.Turn already names the side that did not just move.
	if offeredBy, ok := g.DrawOfferedBy.V(); ok && offeredBy == g.Turn {
		g.DrawOfferedBy = lang.Optional[chess.Color]{}
	}

	g.checkGameEndConditions()

	if g.IsOver() && g.EndTimestamp == 0 {
		g.EndTimestamp = nowUnix()
	}

	return nil
}

func (g *Game) updateCastlingRights(mv chess.Move) {
	if piece, ok := g.Board.Get(mv.To); ok && piece.Kind == chess.King {
		g.Castling.Clear(piece.Color)
	}

	checkRookSquare := func(sq chess.Square) {
		switch {
		case sq == chess.NewSquare(7, 0):
			g.Castling.White.Kingside = false
		case sq == chess.NewSquare(0, 0):
			g.Castling.White.Queenside = false
		case sq == chess.NewSquare(7, 7):
			g.Castling.Black.Kingside = false
		case sq == chess.NewSquare(0, 7):
			g.Castling.Black.Queenside = false
		}
	}
	checkRookSquare(mv.From)
	checkRookSquare(mv.To)
}

// checkGameEndConditions runs the automatic end-of-game checks in the order
// spec §4.2 specifies: checkmate/stalemate, insufficient material, fivefold
// repetition, then the seventy-five-move rule.
func (g *Game) checkGameEndConditions() {
	legal := g.LegalMoves()

	if len(legal) == 0 {
		if movegen.IsInCheck(g.Board, g.Turn) {
			if g.Turn == chess.White {
				g.Result = BlackWins
			} else {
				g.Result = WhiteWins
			}
			g.EndReason = Checkmate
		} else {
			g.Result = Draw
			g.EndReason = Stalemate
		}
		return
	}

	if movegen.IsInsufficientMaterial(g.Board) {
		g.Result = Draw
		g.EndReason = InsufficientMaterial
		return
	}

	if g.countPositionRepetitions() >= 5 {
		g.Result = Draw
		g.EndReason = FivefoldRepetition
		return
	}

	if g.HalfmoveClock >= 150 {
		g.Result = Draw
		g.EndReason = SeventyFiveMoveRule
	}
}

func (g *Game) countPositionRepetitions() int {
	if len(g.PositionHistory) == 0 {
		return 0
	}
	current := g.PositionHistory[len(g.PositionHistory)-1]
	count := 0
	for _, p := range g.PositionHistory {
		if p == current {
			count++
		}
	}
	return count
}

// Action is a special (non-move) action: resign, offer/accept/claim draw
// (spec §6 Action JSON).
type Action struct {
	Action string // "resign", "offer_draw", "accept_draw", "claim_draw"
	Reason string // "threefold_repetition" or "fifty_move_rule", for claim_draw
}

// ProcessAction validates and applies a special action (spec §4.2 Process action).
func (g *Game) ProcessAction(action Action) error {
	if g.IsOver() {
		return fmt.Errorf("game is already over")
	}

	switch action.Action {
	case "resign":
		if g.Turn == chess.White {
			g.Result = BlackWins
		} else {
			g.Result = WhiteWins
		}
		g.EndReason = Resignation
		g.EndTimestamp = nowUnix()
		return nil

	case "offer_draw":
		g.DrawOfferedBy = lang.Some(g.Turn)
		return nil

	case "accept_draw":
		offeredBy, ok := g.DrawOfferedBy.V()
		if !ok || offeredBy != g.Turn.Opponent() {
			return fmt.Errorf("no draw offer to accept")
		}
		g.Result = Draw
		g.EndReason = DrawAgreement
		g.EndTimestamp = nowUnix()
		return nil

	case "claim_draw":
		switch action.Reason {
		case "threefold_repetition":
			if g.countPositionRepetitions() < 3 {
				return fmt.Errorf("current position has not occurred three times")
			}
			g.Result = Draw
			g.EndReason = ThreefoldRepetition
			g.EndTimestamp = nowUnix()
			return nil
		case "fifty_move_rule":
			if g.HalfmoveClock < 100 {
				return fmt.Errorf("halfmove clock is %d, fifty-move rule requires at least 100", g.HalfmoveClock)
			}
			g.Result = Draw
			g.EndReason = FiftyMoveRule
			g.EndTimestamp = nowUnix()
			return nil
		default:
			return fmt.Errorf("invalid draw claim reason: %q", action.Reason)
		}

	default:
		return fmt.Errorf("unknown action: %q", action.Action)
	}
}

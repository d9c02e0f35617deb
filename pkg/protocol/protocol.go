// Package protocol defines the wire DTOs exchanged with agents and clients,
// independent of transport (HTTP or WebSocket), and the error taxonomy used
// to report failures consistently across both (spec §6-7).
package protocol

import (
	"time"

	"github.com/herohde/checkai/pkg/chess"
	"github.com/herohde/checkai/pkg/chessgame"
)

// GameState is the complete game state sent to an agent before each move
// (spec §6 GameState).
type GameState struct {
	Board           map[string]string   `json:"board"`
	Turn            chess.Color         `json:"turn"`
	Castling        CastlingJSON        `json:"castling"`
	EnPassant       *string             `json:"en_passant"`
	HalfmoveClock   int                 `json:"halfmove_clock"`
	FullmoveNumber  int                 `json:"fullmove_number"`
	PositionHistory []string            `json:"position_history"`
}

// CastlingJSON is the wire form of castling rights: nested per-side objects,
// matching the original implementation's serialization of CastlingRights
// (spec §6 State JSON: castling: {white:{kingside,queenside}, black:{...}}).
type CastlingJSON struct {
	White SideCastlingJSON `json:"white"`
	Black SideCastlingJSON `json:"black"`
}

// SideCastlingJSON is the wire form of one side's castling rights.
type SideCastlingJSON struct {
	Kingside  bool `json:"kingside"`
	Queenside bool `json:"queenside"`
}

// Move is a move submitted by an agent (spec §6 Move).
type Move struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Promotion *string `json:"promotion,omitempty"`
}

// Action is a special (non-move) action submitted by an agent (spec §6 Action).
type Action struct {
	Action string  `json:"action"`
	Reason *string `json:"reason,omitempty"`
}

// ArchiveSummary describes an archived game for listing responses (spec §6
// Archive summary; reintroduced from original_source/ storage.rs as a DTO).
type ArchiveSummary struct {
	GameID           string  `json:"game_id"`
	MoveCount        int     `json:"move_count"`
	Result           *string `json:"result"`
	EndReason        *string `json:"end_reason"`
	StartTimestamp   int64   `json:"start_timestamp"`
	EndTimestamp     int64   `json:"end_timestamp"`
	CompressedBytes  int64   `json:"compressed_bytes"`
	CompressionRatio float64 `json:"compression_ratio_percent"`
}

// StorageStats reports aggregate disk usage (spec §6 Storage stats).
type StorageStats struct {
	ActiveCount   int   `json:"active_count"`
	ArchivedCount int   `json:"archived_count"`
	ActiveBytes   int64 `json:"active_bytes"`
	ArchiveBytes  int64 `json:"archive_bytes"`
	TotalBytes    int64 `json:"total_bytes"`
}

// ToGameState renders a live game into its wire representation.
func ToGameState(g *chessgame.Game) GameState {
	var ep *string
	if sq, ok := g.EnPassant.V(); ok {
		s := sq.String()
		ep = &s
	}

	return GameState{
		Board: g.Board.ToMap(),
		Turn:  g.Turn,
		Castling: CastlingJSON{
			White: SideCastlingJSON{Kingside: g.Castling.White.Kingside, Queenside: g.Castling.White.Queenside},
			Black: SideCastlingJSON{Kingside: g.Castling.Black.Kingside, Queenside: g.Castling.Black.Queenside},
		},
		EnPassant:       ep,
		HalfmoveClock:   g.HalfmoveClock,
		FullmoveNumber:  g.FullmoveNumber,
		PositionHistory: g.PositionHistory,
	}
}

// Event is a real-time notification pushed to subscribers of a game
// (spec §6 Event: "game_updated" | "game_created" | "game_deleted").
type Event struct {
	Type      string      `json:"event"`
	GameID    string      `json:"game_id"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// NewEvent builds an Event stamped with the given time.
func NewEvent(eventType, gameID string, data interface{}, at time.Time) Event {
	return Event{Type: eventType, GameID: gameID, Data: data, Timestamp: at.Unix()}
}

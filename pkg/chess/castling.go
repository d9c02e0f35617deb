package chess

import "strings"

// SideCastlingRights holds the remaining castling rights for one color.
type SideCastlingRights struct {
	Kingside, Queenside bool
}

// CastlingRights holds the remaining castling rights for both colors. Rights
// only ever clear over a game's life (spec §3 invariant 2 on CastlingRights).
type CastlingRights struct {
	White, Black SideCastlingRights
}

// FullCastlingRights is the starting-position value: every right available.
func FullCastlingRights() CastlingRights {
	return CastlingRights{
		White: SideCastlingRights{Kingside: true, Queenside: true},
		Black: SideCastlingRights{Kingside: true, Queenside: true},
	}
}

// ForColor returns the rights for the given color.
func (c CastlingRights) ForColor(color Color) SideCastlingRights {
	if color == White {
		return c.White
	}
	return c.Black
}

// Clear drops both rights for the given color.
func (c *CastlingRights) Clear(color Color) {
	if color == White {
		c.White = SideCastlingRights{}
	} else {
		c.Black = SideCastlingRights{}
	}
}

// ClearKingside drops the kingside right for the given color.
func (c *CastlingRights) ClearKingside(color Color) {
	if color == White {
		c.White.Kingside = false
	} else {
		c.Black.Kingside = false
	}
}

// ClearQueenside drops the queenside right for the given color.
func (c *CastlingRights) ClearQueenside(color Color) {
	if color == White {
		c.White.Queenside = false
	} else {
		c.Black.Queenside = false
	}
}

// FEN renders the castling rights as a FEN fragment, e.g. "KQkq" or "-".
func (c CastlingRights) FEN() string {
	var sb strings.Builder
	if c.White.Kingside {
		sb.WriteByte('K')
	}
	if c.White.Queenside {
		sb.WriteByte('Q')
	}
	if c.Black.Kingside {
		sb.WriteByte('k')
	}
	if c.Black.Queenside {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

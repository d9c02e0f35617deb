package chess

// PieceKind represents a chess piece type, independent of color.
type PieceKind uint8

const (
	NoPieceKind PieceKind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// Piece is a chess piece with both kind and color.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// FENChar converts the piece to its FEN character: uppercase for White,
// lowercase for Black.
func (p Piece) FENChar() byte {
	var c byte
	switch p.Kind {
	case King:
		c = 'K'
	case Queen:
		c = 'Q'
	case Rook:
		c = 'R'
	case Bishop:
		c = 'B'
	case Knight:
		c = 'N'
	case Pawn:
		c = 'P'
	default:
		return '?'
	}
	if p.Color == Black {
		c += 'a' - 'A'
	}
	return c
}

// ParseFENChar parses a FEN piece character. The second return value is false
// for characters that are not valid piece symbols.
func ParseFENChar(c byte) (Piece, bool) {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}

	var kind PieceKind
	switch c {
	case 'K':
		kind = King
	case 'Q':
		kind = Queen
	case 'R':
		kind = Rook
	case 'B':
		kind = Bishop
	case 'N':
		kind = Knight
	case 'P':
		kind = Pawn
	default:
		return Piece{}, false
	}
	return Piece{Kind: kind, Color: color}, true
}

// PromotionChar returns the promotion letter ("Q", "R", "B", "N") for a
// promotable kind, or "" if k is not a valid promotion target.
func (k PieceKind) PromotionChar() string {
	switch k {
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	default:
		return ""
	}
}

// ParsePromotionChar parses "Q"/"R"/"B"/"N" into a promotion PieceKind.
func ParsePromotionChar(s string) (PieceKind, bool) {
	switch s {
	case "Q":
		return Queen, true
	case "R":
		return Rook, true
	case "B":
		return Bishop, true
	case "N":
		return Knight, true
	default:
		return NoPieceKind, false
	}
}

// PromotionKinds lists, in generation order, the pieces a pawn may promote to.
var PromotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

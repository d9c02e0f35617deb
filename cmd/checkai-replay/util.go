package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/herohde/checkai/pkg/chess"
	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/klauspost/compress/zstd"
)

// readArchiveFile reads a .cai or .cai.zst file, transparently
// decompressing the latter.
func readArchiveFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return raw, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	return dec.DecodeAll(raw, nil)
}

// printBoard renders the board as an 8x8 ASCII grid, rank 8 at the top, in
// the teacher's console-rendering idiom.
func printBoard(g *chessgame.Game) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := chess.NewSquare(file, rank)
			p, ok := g.Board.Get(sq)
			if !ok {
				fmt.Print(". ")
				continue
			}
			fmt.Printf("%c ", p.FENChar())
		}
		fmt.Println()
	}
	fmt.Println("  a b c d e f g h")
}

// checkai-replay decodes a CheckAI archive file and prints the board at a
// given half-move, for offline analysis of completed games.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/checkai/pkg/archive"
	"github.com/herohde/checkai/pkg/checkai"
	"github.com/seekerror/logw"
)

var (
	path    = flag.String("file", "", "Path to a .cai or .cai.zst archive file")
	move    = flag.Int("move", -1, "Half-move to replay to (default: final position)")
	version = flag.Bool("version", false, "Print version and exit")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: checkai-replay -file <path> [options]

checkai-replay decodes a CheckAI game archive and prints the reconstructed
board at a given half-move.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *version {
		fmt.Println(checkai.Version())
		return
	}

	if *path == "" {
		flag.Usage()
		logw.Exitf(ctx, "Missing required -file")
	}

	data, err := readArchiveFile(*path)
	if err != nil {
		logw.Exitf(ctx, "Failed to read %v: %v", *path, err)
	}

	decoded, err := archive.Deserialize(data)
	if err != nil {
		logw.Exitf(ctx, "Failed to decode archive: %v", err)
	}

	upTo := *move
	if upTo < 0 {
		upTo = decoded.MoveCount()
	}

	game, err := decoded.Replay(upTo)
	if err != nil {
		logw.Exitf(ctx, "Replay failed: %v", err)
	}

	fmt.Printf("game %v, move %d/%d, result=%v reason=%v\n",
		decoded.ID, upTo, decoded.MoveCount(), decoded.Result, decoded.EndReason)
	printBoard(game)
}

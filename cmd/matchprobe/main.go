// matchprobe runs the image matcher against an asset tree for a single bike
// name and prints the scoring table. Debugging aid for renamed or misplaced
// asset files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/antigravitymoto/catalog-gen/internal/assets"
	"github.com/antigravitymoto/catalog-gen/internal/catalog"
	"github.com/antigravitymoto/catalog-gen/internal/match"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: matchprobe <assets-root> <brand-id> <bike name>")
		os.Exit(1)
	}

	root := os.Args[1]
	brandID := strings.ToLower(os.Args[2])
	name := strings.Join(os.Args[3:], " ")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	candidates, err := assets.NewWalker(logger).List(ctx, root)
	if err != nil {
		logger.Error("walk failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%d candidates under %s\n\n", len(candidates), root)
	for _, file := range candidates {
		if !strings.Contains(strings.ToLower(file), brandID) {
			continue
		}
		fmt.Println(match.Describe(name, file))
	}

	matcher := match.NewMatcher(root, "/bikes", logger)
	bike := catalog.NewBike(name, brandID, "naked", "0 kg")
	outcome := matcher.Match(bike, candidates)

	fmt.Println()
	if outcome.Missing {
		fmt.Printf("NO MATCH for %q, placeholder: %s\n", name, outcome.Image)
		return
	}
	fmt.Printf("winner: %s -> %s\n", outcome.Path, outcome.Image)
}

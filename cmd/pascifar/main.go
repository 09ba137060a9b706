// Command pascifar builds the PASCIFAR dataset in the current directory.
//
// It takes no arguments. The CIFAR archives are downloaded and unpacked
// next to the output directory PASCIFAR/ unless already present. If
// PASCIFAR/ exists the command does nothing.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hupe1980/pascifar"
	"github.com/hupe1980/pascifar/acquire"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: pascifar")
		return 2
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pascifar: %v\n", err)
		return 1
	}

	logger := pascifar.NewTextLogger(slog.LevelInfo)
	res, err := pascifar.Build(ctx,
		pascifar.WithWorkDir(wd),
		pascifar.WithLogger(logger),
		pascifar.WithProgress(func(p acquire.Progress) {
			logger.Info("download progress",
				"archive", p.Archive,
				"done", p.Done,
				"total", p.Total,
			)
		}, 2*time.Second),
	)
	if err != nil {
		var se *pascifar.StageError
		if errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "pascifar: %s stage failed: %v\n", se.Stage, se.Err)
		} else {
			fmt.Fprintf(os.Stderr, "pascifar: %v\n", err)
		}
		return 1
	}

	if res.Skipped {
		fmt.Printf("%s already exists, nothing to do\n", res.Root)
		return 0
	}
	fmt.Printf("wrote %d images to %s\n", res.Counts.Total(), res.Root)
	return 0
}

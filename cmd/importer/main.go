// Command importer runs a batch of post URLs through the ingestion pipeline
// into one board and prints the run summary.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briidgedotone/narra/internal/app"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/internal/repositories/board"
	"github.com/briidgedotone/narra/internal/repositories/memory"
	"github.com/briidgedotone/narra/internal/telegram"
	"github.com/briidgedotone/narra/pkg/logger"
	"go.uber.org/fx"
)

type flags struct {
	board   string
	delayMs int
	offset  int
	file    string
	dryRun  bool
	notify  bool
}

func main() {
	var f flags
	flag.StringVar(&f.board, "board", "", "target board id (defaults to INGEST_TARGET_BOARD_ID)")
	flag.IntVar(&f.delayMs, "delay", -1, "delay between items in milliseconds (defaults to INGEST_DELAY_MS)")
	flag.IntVar(&f.offset, "offset", -1, "index of the first item to process (defaults to INGEST_START_OFFSET)")
	flag.StringVar(&f.file, "file", "", "file with one URL per line; '-' reads stdin")
	flag.BoolVar(&f.dryRun, "dry-run", false, "use an in-memory datastore instead of Postgres")
	flag.BoolVar(&f.notify, "notify", false, "send the summary to the Telegram operator")
	flag.Parse()

	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	urls, err := collectURLs(f.file, flag.Args())
	if err != nil {
		log.Error("Failed to read urls", "error", err)
		os.Exit(2)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: importer [flags] <url>... (or -file urls.txt)")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(f, urls); err != nil {
		log.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(f flags, urls []string) error {
	var (
		processor *ingest.Processor
		boards    board.Repository
		tg        telegram.Client
		cfg       ingest.Config
	)

	storage := app.PgxStorage
	if f.dryRun {
		storage = fx.Options(
			app.MemoryStorage,
			fx.Invoke(func(s *memory.Store, c ingest.Config) {
				s.AddBoard(domain.Board{ID: c.TargetBoardID, Name: "dry-run"})
			}),
		)
	}

	fxApp := fx.New(
		fx.NopLogger,
		app.Core,
		storage,
		fx.Decorate(func(c ingest.Config) ingest.Config {
			return f.apply(c)
		}),
		fx.Populate(&processor, &boards, &tg, &cfg),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = fxApp.Stop(stopCtx)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TargetBoardID != "" {
		if _, err := boards.GetByID(ctx, cfg.TargetBoardID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("board %s does not exist", cfg.TargetBoardID)
			}
			return err
		}
	}

	summary, runErr := processor.Run(ctx, ingest.URLItems(urls))
	printSummary(os.Stdout, summary)

	if f.notify {
		tg.SendMessageToUser("Import finished: " + summary.String())
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Printf("Interrupted. Resume with -offset %d\n", summary.NextOffset)
	}
	return runErr
}

func (f flags) apply(c ingest.Config) ingest.Config {
	if f.board != "" {
		c.TargetBoardID = f.board
	}
	if f.delayMs >= 0 {
		c.InterItemDelayMs = f.delayMs
	}
	if f.offset >= 0 {
		c.StartOffset = f.offset
	}
	return c
}

func collectURLs(file string, args []string) ([]string, error) {
	urls := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			urls = append(urls, a)
		}
	}
	if file == "" {
		return urls, nil
	}

	var r io.Reader = os.Stdin
	if file != "-" {
		fh, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		r = fh
	}

	fromFile, err := readURLs(r)
	if err != nil {
		return nil, err
	}
	return append(urls, fromFile...), nil
}

// readURLs returns one URL per non-empty line, skipping # comments.
func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}

func printSummary(w io.Writer, s ingest.Summary) {
	for _, r := range s.Results {
		line := fmt.Sprintf("[%d] %-16s %s", r.Index, r.Outcome, r.URL)
		if r.Err != nil {
			line += "  (" + r.Err.Error() + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\nrun %s\n", s.RunID)
	fmt.Fprintf(w, "Total:     %d\n", s.Total)
	fmt.Fprintf(w, "Success:   %d\n", s.Success)
	fmt.Fprintf(w, "Duplicate: %d\n", s.Duplicate)
	fmt.Fprintf(w, "Error:     %d\n", s.Error)
	fmt.Fprintf(w, "Success rate: %.1f%%\n", s.SuccessRatePct)
}

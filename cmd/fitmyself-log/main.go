// fitmyself-log queues fitness log entries offline and replays them against
// a FitMyself server when connectivity is back.
//
// Usage:
//
//	fitmyself-log water 2.5 [-date YYYY-MM-DD]
//	fitmyself-log sleep 8 [-date YYYY-MM-DD]
//	fitmyself-log task workout|diet|water|sleep [-date YYYY-MM-DD]
//	fitmyself-log sync -server <URL> [-api-key KEY] [-batch-size N]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/claude/fitmyself/internal/logsync"
	"github.com/claude/fitmyself/internal/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-version" || cmd == "version" {
		fmt.Println("fitmyself-log", Version)
		return
	}

	state, err := logsync.OpenStateDB(logsync.DefaultStateDir())
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	switch cmd {
	case "water", "sleep":
		amount, date := amountArgs(cmd, os.Args[2:])
		syncer := logsync.New(nil, state, 0, log)
		if cmd == "water" {
			err = syncer.LogWater(amount, date)
		} else {
			err = syncer.LogSleep(amount, date)
		}
		if err != nil {
			log.Error("queueing failed", "error", err)
			os.Exit(1)
		}
		log.Info("queued", "kind", cmd, "amount", amount)

	case "task":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		task := models.TaskKind(os.Args[2])
		date := dateFlag("task", os.Args[3:])
		if err := logsync.New(nil, state, 0, log).LogTask(task, date); err != nil {
			log.Error("queueing failed", "error", err)
			os.Exit(1)
		}
		log.Info("queued", "kind", "task", "task", task)

	case "sync":
		runSync(log, state, os.Args[2:])

	default:
		usage()
		os.Exit(1)
	}
}

// amountArgs parses "<amount> [-date D]" for the water and sleep commands.
func amountArgs(cmd string, args []string) (float64, string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || amount < 0 {
		fmt.Fprintf(os.Stderr, "Error: %s needs a non-negative amount, got %q\n", cmd, args[0])
		os.Exit(1)
	}
	return amount, dateFlag(cmd, args[1:])
}

func dateFlag(cmd string, args []string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	date := fs.String("date", "", "day to log (YYYY-MM-DD), defaults to today")
	_ = fs.Parse(args)
	return *date
}

func runSync(log *slog.Logger, state *logsync.StateDB, args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	serverURL := fs.String("server", "", "FitMyself server URL (e.g. https://fitmyself.tail1234.ts.net)")
	apiKey := fs.String("api-key", os.Getenv("FITMYSELF_AUTH_API_KEY"), "sync API key (defaults to FITMYSELF_AUTH_API_KEY)")
	batchSize := fs.Int("batch-size", 50, "entries per sync request")
	_ = fs.Parse(args)

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Error: -server is required\n")
		os.Exit(1)
	}

	client := logsync.NewClient(strings.TrimRight(*serverURL, "/"), *apiKey)
	syncer := logsync.New(client, state, *batchSize, log)

	stats, err := syncer.Run()
	if err != nil {
		log.Error("sync failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("sync complete")
}

func printStats(stats *logsync.Stats) {
	if stats == nil {
		return
	}
	fmt.Println()
	fmt.Println("=== Sync Summary ===")
	fmt.Printf("  Queued:   %d\n", stats.Queued)
	fmt.Printf("  Sent:     %d\n", stats.Sent)
	fmt.Printf("  Applied:  %d\n", stats.Applied)
	fmt.Printf("  Skipped:  %d (already completed)\n", stats.Skipped)
	fmt.Printf("  Reward:   %d fitcoins\n", stats.Reward)
	if stats.Sent > 0 {
		fmt.Printf("\n  Totals: %d fitcoins, streak %d, level %d\n",
			stats.Server.TotalFitcoins, stats.Server.Streak, stats.Server.Level)
	}
	fmt.Println()
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  fitmyself-log water <liters> [-date YYYY-MM-DD]
  fitmyself-log sleep <hours> [-date YYYY-MM-DD]
  fitmyself-log task <workout|diet|water|sleep> [-date YYYY-MM-DD]
  fitmyself-log sync -server <URL> [-api-key KEY] [-batch-size N]
`)
}

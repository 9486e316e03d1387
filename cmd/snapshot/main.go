// Command snapshot builds tracker boards once, straight from the feeds, and
// prints them as tables.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sportstracker/internal/cache"
	"sportstracker/internal/client"
	"sportstracker/internal/config"
	"sportstracker/internal/reconcile"
	"sportstracker/internal/tracker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	key := flag.String("tracker", "", "tracker key to print (default: all)")
	timeout := flag.Duration("timeout", 60*time.Second, "overall deadline")
	verbose := flag.Bool("v", false, "log feed activity to stderr")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.MustLoad()

	trackers, err := config.LoadTrackers(cfg.TrackersFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load trackers")
	}
	if *key != "" {
		trackers = selectTracker(trackers, *key)
		if trackers == nil {
			log.Fatal().Str("tracker", *key).Msg("Unknown tracker")
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid display timezone")
	}
	policy, err := reconcile.PolicyByName(cfg.TeamMatchPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid team match policy")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	espn, odds := client.NewFeeds(cfg, cache.NoopCache{})
	svc := tracker.NewService(espn, odds, trackers, tracker.Options{
		PastDays:   cfg.WindowPastDays,
		FutureDays: cfg.WindowFutureDays,
		NewsLimit:  cfg.NewsLimit,
		Location:   loc,
		Policy:     policy,
	})

	if err := svc.RefreshAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to build boards")
	}

	for i, t := range trackers {
		board, ok := svc.Store().Get(t.Key)
		if !ok {
			continue
		}
		if i > 0 {
			os.Stdout.WriteString("\n")
		}
		if err := renderBoard(os.Stdout, board); err != nil {
			log.Fatal().Err(err).Msg("Failed to write board")
		}
	}
}

func selectTracker(trackers []config.Tracker, key string) []config.Tracker {
	for _, t := range trackers {
		if t.Key == key {
			return []config.Tracker{t}
		}
	}
	return nil
}

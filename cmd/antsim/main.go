// Command antsim plays every ant team on the same maps and compares how well
// each keeps its colony fed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/antcolony/internal/api"
	"github.com/talgya/antcolony/internal/config"
	"github.com/talgya/antcolony/internal/engine"
	"github.com/talgya/antcolony/internal/persistence"
	"github.com/talgya/antcolony/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML settings file")
		episodes   = flag.Int("episodes", 0, "episodes per team (overrides config)")
		steps      = flag.Int("steps", 0, "max steps per episode (overrides config)")
		teams      = flag.String("teams", "", "comma-separated teams to play (overrides config)")
		dbPath     = flag.String("db", "", "results database path, :memory: for none (overrides config)")
		reportPath = flag.String("report", "", "write an .xlsx report here (overrides config)")
		addr       = flag.String("addr", "", "serve the status API on this address, e.g. :8080 (overrides config)")
		seedMult   = flag.Int64("seed-multiplier", 0, "episode seed is (episode+1) times this (overrides config)")
		interval   = flag.Duration("interval", -1, "pause between ticks (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *episodes > 0 {
		cfg.Run.Episodes = *episodes
	}
	if *steps > 0 {
		cfg.World.MaxSteps = *steps
	}
	if *teams != "" {
		cfg.Run.Teams = splitTeams(*teams)
	}
	if *dbPath != "" {
		cfg.Run.DBPath = *dbPath
	}
	if *reportPath != "" {
		cfg.Run.ReportPath = *reportPath
	}
	if *addr != "" {
		cfg.Run.Addr = *addr
	}
	if *seedMult != 0 {
		cfg.Run.SeedMultiplier = *seedMult
	}
	if *interval >= 0 {
		cfg.Run.IntervalMS = int(interval.Milliseconds())
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid settings", "error", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	slog.Info("ant colony team comparison",
		"config", cfg.Path,
		"grid", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height),
		"ants", cfg.World.Agents,
		"max_steps", cfg.World.MaxSteps,
	)

	// ── Results ledger ────────────────────────────────────────────────
	db, err := persistence.Open(cfg.Run.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Run.DBPath)

	eng := engine.NewEngine()
	eng.Interval = cfg.Interval()
	if err := db.SaveRun(eng.RunID, time.Now(), cfg); err != nil {
		return err
	}
	eng.OnEpisode = func(sum engine.EpisodeSummary) {
		if err := db.SaveEpisode(sum); err != nil {
			slog.Error("save episode failed", "team", sum.Team, "episode", sum.Episode, "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		eng.Stop()
	}()

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.Run.Addr != "" {
		(&api.Server{Eng: eng, DB: db, Addr: cfg.Run.Addr}).Start(ctx)
		fmt.Printf("API: http://localhost%s/api/v1/status\n", cfg.Run.Addr)
	}

	// ── Play ──────────────────────────────────────────────────────────
	start := time.Now()
	sums, err := eng.Run(ctx, cfg.Plan())
	interrupted := errors.Is(err, engine.ErrStopped) || errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	if interrupted {
		slog.Warn("run interrupted, reporting finished episodes", "episodes", len(sums))
	}

	stats := engine.Aggregate(sums, cfg.World.MaxSteps)
	fmt.Printf("\n%s episodes in %s\n", humanize.Comma(int64(len(sums))), time.Since(start).Round(time.Millisecond))
	for _, ts := range stats {
		slog.Info("team result",
			"team", ts.Team,
			"episodes", humanize.Comma(int64(ts.Episodes)),
			"avg_storage", humanize.FormatFloat("#,###.##", ts.AvgStorage),
			"avg_reward", humanize.FormatFloat("#,###.##", ts.AvgReward),
			"avg_steps", humanize.FormatFloat("#,###.#", ts.AvgSteps),
			"avg_deposits", humanize.FormatFloat("#,###.##", ts.AvgDeposit),
		)
	}

	if cfg.Run.ReportPath != "" && len(sums) > 0 {
		if err := report.Write(cfg.Run.ReportPath, sums, stats); err != nil {
			return err
		}
		if fi, err := os.Stat(cfg.Run.ReportPath); err == nil {
			fmt.Printf("Report: %s (%s)\n", cfg.Run.ReportPath, humanize.Bytes(uint64(fi.Size())))
		}
	}
	return nil
}

func splitTeams(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Package report exports a run's results as a spreadsheet.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/talgya/antcolony/internal/engine"
)

// Sheet names in the written workbook.
const (
	SheetEpisodes = "Episodes"
	SheetTeams    = "Teams"
	SheetStorage  = "Storage"
)

var (
	episodeHeaders = []string{"Episode", "Team", "Seed", "Steps", "Total reward", "Final storage",
		"Foodpiles done", "Collections", "Deposits", "Transfers", "Duration (ms)"}
	teamHeaders = []string{"Team", "Episodes", "Avg steps", "Avg reward", "Avg storage",
		"Avg collections", "Avg deposits"}
)

// Write saves an Episodes, Teams and Storage workbook at path, creating the
// parent directory if needed.
func Write(path string, sums []engine.EpisodeSummary, stats []engine.TeamStats) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("close workbook", "error", err)
		}
	}()

	for _, name := range []string{SheetEpisodes, SheetTeams, SheetStorage} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := writeEpisodes(f, sums); err != nil {
		return err
	}
	if err := writeTeams(f, stats); err != nil {
		return err
	}
	if err := writeStorage(f, stats); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	slog.Info("report written", "path", path, "episodes", len(sums), "teams", len(stats))
	return nil
}

func writeEpisodes(f *excelize.File, sums []engine.EpisodeSummary) error {
	if err := f.SetSheetRow(SheetEpisodes, "A1", &episodeHeaders); err != nil {
		return err
	}
	for i, s := range sums {
		row := []any{
			s.Episode, s.Team, s.Seed, s.Steps, s.TotalReward, s.FinalStorage,
			s.FoodpilesDone, s.Collections, s.Deposits, s.Transfers, s.Duration.Milliseconds(),
		}
		if err := f.SetSheetRow(SheetEpisodes, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("episode row %d: %w", i, err)
		}
	}
	return nil
}

func writeTeams(f *excelize.File, stats []engine.TeamStats) error {
	if err := f.SetSheetRow(SheetTeams, "A1", &teamHeaders); err != nil {
		return err
	}
	for i, ts := range stats {
		row := []any{ts.Team, ts.Episodes, ts.AvgSteps, ts.AvgReward, ts.AvgStorage, ts.AvgCollect, ts.AvgDeposit}
		if err := f.SetSheetRow(SheetTeams, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("team row %d: %w", i, err)
		}
	}
	return nil
}

// writeStorage lays the averaged storage curves out one team per column,
// one tick per row.
func writeStorage(f *excelize.File, stats []engine.TeamStats) error {
	header := []any{"Tick"}
	ticks := 0
	for _, ts := range stats {
		header = append(header, ts.Team)
		ticks = max(ticks, len(ts.StorageCurve))
	}
	if err := f.SetSheetRow(SheetStorage, "A1", &header); err != nil {
		return err
	}
	for tick := 0; tick < ticks; tick++ {
		row := []any{tick + 1}
		for _, ts := range stats {
			if tick < len(ts.StorageCurve) {
				row = append(row, ts.StorageCurve[tick])
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, tick+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetStorage, cell, &row); err != nil {
			return fmt.Errorf("storage row %d: %w", tick, err)
		}
	}
	return nil
}

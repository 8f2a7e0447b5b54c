package engine

import (
	"time"

	"github.com/google/uuid"
)

// EpisodeSummary is the result of one team playing one episode.
type EpisodeSummary struct {
	ID            uuid.UUID     `json:"id"`
	RunID         uuid.UUID     `json:"run_id"`
	Episode       int           `json:"episode"`
	Team          string        `json:"team"`
	Seed          int64         `json:"seed"`
	Steps         int           `json:"steps"`
	TotalReward   float64       `json:"total_reward"`
	FinalStorage  int           `json:"final_storage"`
	FoodpilesDone bool          `json:"foodpiles_done"`
	Collections   int           `json:"collections"`
	Deposits      int           `json:"deposits"`
	Transfers     int           `json:"transfers"`
	StorageCurve  []int         `json:"storage_curve"` // Colony storage after each tick
	Events        []Event       `json:"events,omitempty"`
	Duration      time.Duration `json:"duration"`
	FinishedAt    time.Time     `json:"finished_at"`
}

// TeamStats aggregates one team's episodes.
type TeamStats struct {
	Team       string  `json:"team"`
	Episodes   int     `json:"episodes"`
	AvgSteps   float64 `json:"avg_steps"`
	AvgReward  float64 `json:"avg_reward"`
	AvgStorage float64 `json:"avg_storage"`
	AvgCollect float64 `json:"avg_collections"`
	AvgDeposit float64 `json:"avg_deposits"`

	// StorageCurve[i] is the storage after tick i+1 summed over episodes and
	// divided by the episode count. Episodes that ended earlier add nothing.
	StorageCurve []float64 `json:"storage_curve"`
}

// Aggregate groups summaries by team, keeping the order teams first appear.
func Aggregate(sums []EpisodeSummary, maxSteps int) []TeamStats {
	var order []string
	byTeam := make(map[string]*TeamStats)
	for _, s := range sums {
		ts, ok := byTeam[s.Team]
		if !ok {
			ts = &TeamStats{Team: s.Team, StorageCurve: make([]float64, maxSteps)}
			byTeam[s.Team] = ts
			order = append(order, s.Team)
		}
		ts.Episodes++
		ts.AvgSteps += float64(s.Steps)
		ts.AvgReward += s.TotalReward
		ts.AvgStorage += float64(s.FinalStorage)
		ts.AvgCollect += float64(s.Collections)
		ts.AvgDeposit += float64(s.Deposits)
		for i, v := range s.StorageCurve {
			if i < maxSteps {
				ts.StorageCurve[i] += float64(v)
			}
		}
	}

	out := make([]TeamStats, 0, len(order))
	for _, team := range order {
		ts := byTeam[team]
		n := float64(ts.Episodes)
		ts.AvgSteps /= n
		ts.AvgReward /= n
		ts.AvgStorage /= n
		ts.AvgCollect /= n
		ts.AvgDeposit /= n
		for i := range ts.StorageCurve {
			ts.StorageCurve[i] /= n
		}
		out = append(out, *ts)
	}
	return out
}

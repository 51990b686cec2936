package mood

import (
	"context"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/DevGolamSever/mind-ease/internal/model/mood"
)

// DailyMood is one point of the seven-day chart. Score is nil on days
// without an entry.
type DailyMood struct {
	Day   string      `json:"day"`
	Score *int        `json:"score"`
	Entry *mood.Entry `json:"entry,omitempty"`
}

// Summary aggregates the journal for the dashboard.
type Summary struct {
	Count    int         `json:"count"`
	Average  float64     `json:"average"`
	Min      int         `json:"min"`
	Max      int         `json:"max"`
	Streak   int         `json:"streak"`
	LastWeek []DailyMood `json:"lastWeek"`
}

// Summarize computes the dashboard numbers over the locally stored log.
func (s *Service) Summarize(ctx context.Context, userID string) (Summary, error) {
	entries, err := s.store.Moods(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(entries, time.Now()), nil
}

func summarize(entries []mood.Entry, now time.Time) Summary {
	summary := Summary{
		Count:    len(entries),
		Streak:   len(entries),
		LastWeek: lastWeek(entries, now),
	}
	if len(entries) == 0 {
		return summary
	}

	scores := make([]float64, len(entries))
	for i, entry := range entries {
		scores[i] = float64(entry.Score)
	}

	data := stats.LoadRawData(scores)
	if mean, err := stats.Mean(data); err == nil {
		summary.Average = mean
	}
	if min, err := stats.Min(data); err == nil {
		summary.Min = int(min)
	}
	if max, err := stats.Max(data); err == nil {
		summary.Max = int(max)
	}
	return summary
}

// lastWeek builds the seven-day series ending today. Days with several
// entries chart the latest one.
func lastWeek(entries []mood.Entry, now time.Time) []DailyMood {
	days := make([]DailyMood, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := DailyMood{Day: day.Format("Mon")}

		var dayEntries []mood.Entry
		for _, entry := range entries {
			if sameDay(time.UnixMilli(entry.Timestamp), day) {
				dayEntries = append(dayEntries, entry)
			}
		}

		if len(dayEntries) > 0 {
			sort.Slice(dayEntries, func(a, b int) bool {
				return dayEntries[a].Timestamp > dayEntries[b].Timestamp
			})
			latest := dayEntries[0]
			point.Score = &latest.Score
			point.Entry = &latest
		}

		days = append(days, point)
	}
	return days
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

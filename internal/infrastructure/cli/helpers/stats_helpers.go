package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
)

// InputStatistic represents how often an input was asked
type InputStatistic struct {
	Input string
	Count int
}

// HistoryStats summarises a slice of calculation records.
type HistoryStats struct {
	Total    int
	Manual   int
	Voice    int
	Failed   int
	ByDomain map[domain.Domain]int
	ByStage  map[domain.Stage]int
}

// AnalyzeRecords counts records per domain, stage and input source. A record
// without a domain, or one whose stage is failed, counts as a failure.
func AnalyzeRecords(records []domain.CalculationRecord) HistoryStats {
	stats := HistoryStats{
		ByDomain: make(map[domain.Domain]int),
		ByStage:  make(map[domain.Stage]int),
	}
	for _, rec := range records {
		stats.Total++
		if rec.IsManual {
			stats.Manual++
		} else {
			stats.Voice++
		}
		if rec.Domain == "" || rec.Stage == domain.StageFailed {
			stats.Failed++
		}
		if rec.Domain != "" {
			stats.ByDomain[rec.Domain]++
		}
		if rec.Stage != domain.StageNone {
			stats.ByStage[rec.Stage]++
		}
	}
	return stats
}

// CalculateTopInputs returns the top N most frequently asked inputs,
// compared case-insensitively. If limit is 0 or negative, returns all inputs.
func CalculateTopInputs(records []domain.CalculationRecord, limit int) []InputStatistic {
	frequency := make(map[string]int)
	for _, rec := range records {
		frequency[strings.ToLower(strings.TrimSpace(rec.Input))]++
	}

	stats := make([]InputStatistic, 0, len(frequency))
	for input, count := range frequency {
		stats = append(stats, InputStatistic{Input: input, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Input < stats[j].Input
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// Percentage returns part as a percentage of whole
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0.0
	}
	return float64(part) / float64(whole) * 100.0
}

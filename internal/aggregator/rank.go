package aggregator

import (
	"sort"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

// FractionalRanks ranks values in descending order. Tied values share
// the mean of the ordinal positions they occupy, so two rows tied for
// first both rank 1.5. Undefined values get an undefined rank.
func FractionalRanks(values []models.Optional) []models.Optional {
	ranks := make([]models.Optional, len(values))

	order := make([]int, 0, len(values))
	for i, v := range values {
		if v.Valid {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]].Value > values[order[b]].Value
	})

	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && values[order[end]].Value == values[order[start]].Value {
			end++
		}
		// ordinal positions start+1 .. end
		rank := float64(start+1+end) / 2
		for _, idx := range order[start:end] {
			ranks[idx] = models.Some(rank)
		}
		start = end
	}
	return ranks
}

// rankCriterion reads the ranked value of a row and stores its rank
type rankCriterion struct {
	value func(*models.SeasonSummaryRow) models.Optional
	store func(*models.SeasonSummaryRow, models.Optional)
}

var rankCriteria = []rankCriterion{
	{
		value: func(r *models.SeasonSummaryRow) models.Optional { return models.Some(r.TotalPts.Sum) },
		store: func(r *models.SeasonSummaryRow, rank models.Optional) { r.SumFantasyRank = rank },
	},
	{
		value: func(r *models.SeasonSummaryRow) models.Optional { return models.Some(r.TotalPts.Mean) },
		store: func(r *models.SeasonSummaryRow, rank models.Optional) { r.AvgFantasyRank = rank },
	},
	{
		value: func(r *models.SeasonSummaryRow) models.Optional { return r.AvgPtsPerGamePlayed },
		store: func(r *models.SeasonSummaryRow, rank models.Optional) { r.AvgPtsPlayedRank = rank },
	},
	{
		value: func(r *models.SeasonSummaryRow) models.Optional { return r.AvgPtsPerGameStarted },
		store: func(r *models.SeasonSummaryRow, rank models.Optional) { r.AvgPtsStartedRank = rank },
	},
}

// RankWithinYears fills the four rank fields, ranking each year's rows
// independently of every other year.
func RankWithinYears(rows []models.SeasonSummaryRow) {
	byYear := make(map[int][]int)
	var years []int
	for i, r := range rows {
		if _, ok := byYear[r.Year]; !ok {
			years = append(years, r.Year)
		}
		byYear[r.Year] = append(byYear[r.Year], i)
	}

	for _, year := range years {
		idx := byYear[year]
		for _, c := range rankCriteria {
			values := make([]models.Optional, len(idx))
			for j, i := range idx {
				values[j] = c.value(&rows[i])
			}
			for j, rank := range FractionalRanks(values) {
				c.store(&rows[idx[j]], rank)
			}
		}
	}
}

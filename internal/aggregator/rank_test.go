package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

func opts(values ...float64) []models.Optional {
	out := make([]models.Optional, len(values))
	for i, v := range values {
		out[i] = models.Some(v)
	}
	return out
}

func TestFractionalRanks(t *testing.T) {
	tests := []struct {
		name   string
		values []models.Optional
		want   []models.Optional
	}{
		{
			name:   "distinct",
			values: opts(3, 9, 5),
			want:   opts(3, 1, 2),
		},
		{
			name:   "tie for first",
			values: opts(10, 10, 4),
			want:   opts(1.5, 1.5, 3),
		},
		{
			name:   "three way tie in the middle",
			values: opts(20, 7, 7, 7, 1),
			want:   opts(1, 3, 3, 3, 5),
		},
		{
			name:   "all tied",
			values: opts(2, 2, 2, 2),
			want:   opts(2.5, 2.5, 2.5, 2.5),
		},
		{
			name:   "negative values",
			values: opts(-1, 0, -3),
			want:   opts(2, 1, 3),
		},
		{
			name:   "undefined values are skipped",
			values: []models.Optional{models.Some(4), models.Undefined(), models.Some(8), models.Undefined()},
			want:   []models.Optional{models.Some(2), models.Undefined(), models.Some(1), models.Undefined()},
		},
		{
			name:   "empty",
			values: nil,
			want:   []models.Optional{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FractionalRanks(tt.values))
		})
	}
}

func TestRankWithinYears_YearsAreIndependent(t *testing.T) {
	rows := []models.SeasonSummaryRow{
		{PlayerID: "A", Year: 2018, TotalPts: models.SumMean{Sum: 10, Mean: 5}},
		{PlayerID: "B", Year: 2019, TotalPts: models.SumMean{Sum: 1, Mean: 1}},
		{PlayerID: "C", Year: 2018, TotalPts: models.SumMean{Sum: 30, Mean: 3}},
	}
	RankWithinYears(rows)

	assert.Equal(t, models.Some(2), rows[0].SumFantasyRank)
	assert.Equal(t, models.Some(1), rows[0].AvgFantasyRank)
	assert.Equal(t, models.Some(1), rows[1].SumFantasyRank)
	assert.Equal(t, models.Some(1), rows[2].SumFantasyRank)
	assert.Equal(t, models.Some(2), rows[2].AvgFantasyRank)
	assert.False(t, rows[0].AvgPtsPlayedRank.Valid)
}

package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/scoring"
	"github.com/stitts-dev/nfl-fantasy-pipeline/pkg/logger"
)

const tolerance = 1e-9

func scoreAll(rows ...models.GameLogRow) []models.ScoredGameRow {
	out := make([]models.ScoredGameRow, len(rows))
	for i, r := range rows {
		out[i] = scoring.ScoreGame(r, scoring.PSK())
	}
	return out
}

func TestAggregate_EndToEndSeason(t *testing.T) {
	scored := scoreAll(
		models.GameLogRow{
			PlayerID: "P1", Position: models.PositionRB, Year: 2020, Week: 1,
			GamesPlayed: 1, GamesStarted: 1, RushingYards: 110, RushingTDs: 1,
		},
		models.GameLogRow{
			PlayerID: "P1", Position: models.PositionRB, Year: 2020, Week: 2,
			GamesPlayed: 1, GamesStarted: 0, RushingYards: 40, Receptions: 2, ReceivingYards: 20,
		},
	)

	seasons := NewSeasonAggregator(16, logger.Discard()).Aggregate(scored)
	require.Len(t, seasons, 1)
	s := seasons[0]

	assert.Equal(t, "P1", s.PlayerID)
	assert.Equal(t, 2020, s.Year)
	assert.Equal(t, 2, s.Games)
	assert.InDelta(t, 25.8, s.TotalPts.Sum, tolerance)
	assert.InDelta(t, 12.9, s.TotalPts.Mean, tolerance)
	assert.InDelta(t, 2.0, s.GamesPlayed, tolerance)
	assert.InDelta(t, 0.125, s.PercentagePlayedGames, tolerance)
	assert.InDelta(t, 0.5, s.PercentageStartedGames, tolerance)

	require.True(t, s.AvgPtsPerGameStarted.Valid)
	assert.InDelta(t, 19.0, s.AvgPtsPerGameStarted.Value, tolerance)
	require.True(t, s.AvgPtsPerGamePlayed.Valid)
	assert.InDelta(t, 12.9, s.AvgPtsPerGamePlayed.Value, tolerance)

	assert.InDelta(t, 25.8, s.TotalPtsActiveSum, tolerance)
	assert.InDelta(t, 19.0, s.TotalPtsStartedSum, tolerance)
	assert.InDelta(t, 2.0, s.RushingBonusPts.Sum, tolerance)
	assert.InDelta(t, 1.0, s.RushingBonusPts.Mean, tolerance)
	assert.InDelta(t, 15.0, s.RushingYardsPts.Sum, tolerance)

	assert.Equal(t, 150, s.RushingYards)
	assert.Equal(t, 2, s.Receptions)
	assert.Equal(t, models.Some(1), s.SumFantasyRank)
}

func TestAggregate_GroupsByPlayerAndYearInFirstSeenOrder(t *testing.T) {
	scored := scoreAll(
		models.GameLogRow{PlayerID: "B", Year: 2019, Week: 1, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "A", Year: 2019, Week: 1, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "B", Year: 2018, Week: 1, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "A", Year: 2019, Week: 2, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "B", Year: 2019, Week: 2, GamesPlayed: 1},
	)

	seasons := NewSeasonAggregator(16, nil).Aggregate(scored)
	require.Len(t, seasons, 3)

	got := make([]models.SeasonKey, len(seasons))
	for i, s := range seasons {
		got[i] = s.Key()
	}
	assert.Equal(t, []models.SeasonKey{
		{PlayerID: "B", Year: 2019},
		{PlayerID: "A", Year: 2019},
		{PlayerID: "B", Year: 2018},
	}, got)
	assert.Equal(t, 2, seasons[0].Games)
	assert.Equal(t, 1, seasons[2].Games)
}

func TestAggregate_OutputCountMatchesDistinctKeys(t *testing.T) {
	var rows []models.GameLogRow
	distinct := make(map[models.SeasonKey]struct{})
	for i := 0; i < 200; i++ {
		r := models.GameLogRow{
			PlayerID:     []string{"A", "B", "C", "D", "E", "F", "G"}[i%7],
			Year:         2010 + i%5,
			Week:         i % 17,
			RushingYards: i,
			GamesPlayed:  i % 2,
		}
		rows = append(rows, r)
		distinct[models.SeasonKey{PlayerID: r.PlayerID, Year: r.Year}] = struct{}{}
	}

	seasons := NewSeasonAggregator(16, nil).Aggregate(scoreAll(rows...))
	assert.Len(t, seasons, len(distinct))
}

func TestAggregate_ZeroGamesPlayedIsUndefined(t *testing.T) {
	scored := scoreAll(
		models.GameLogRow{PlayerID: "IR", Year: 2021, Week: 1, RushingYards: 0},
		models.GameLogRow{PlayerID: "IR", Year: 2021, Week: 2, RushingYards: 12},
	)

	seasons := NewSeasonAggregator(16, nil).Aggregate(scored)
	require.Len(t, seasons, 1)
	s := seasons[0]

	assert.False(t, s.AvgPtsPerGamePlayed.Valid)
	assert.False(t, s.AvgPtsPerGameStarted.Valid)
	assert.False(t, s.AvgPtsPlayedRank.Valid)
	assert.False(t, s.AvgPtsStartedRank.Valid)
	assert.Zero(t, s.PercentagePlayedGames)
	assert.Zero(t, s.PercentageStartedGames)
	assert.InDelta(t, 1.2, s.TotalPts.Sum, tolerance)
	assert.True(t, s.SumFantasyRank.Valid)
}

func TestAggregate_RanksWithinEachYear(t *testing.T) {
	scored := scoreAll(
		models.GameLogRow{PlayerID: "A", Year: 2019, RushingYards: 100, GamesPlayed: 1, GamesStarted: 1},
		models.GameLogRow{PlayerID: "B", Year: 2019, RushingYards: 50, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "C", Year: 2020, RushingYards: 10, GamesPlayed: 1},
		models.GameLogRow{PlayerID: "D", Year: 2020, RushingYards: 10, GamesPlayed: 1, GamesStarted: 1},
		models.GameLogRow{PlayerID: "E", Year: 2020, RushingYards: 5, GamesPlayed: 1},
	)

	seasons := NewSeasonAggregator(16, nil).Aggregate(scored)
	require.Len(t, seasons, 5)

	ranks := make(map[string]models.SeasonSummaryRow)
	for _, s := range seasons {
		ranks[s.PlayerID] = s
	}

	assert.Equal(t, models.Some(1), ranks["A"].SumFantasyRank)
	assert.Equal(t, models.Some(2), ranks["B"].SumFantasyRank)
	assert.Equal(t, models.Some(1.5), ranks["C"].SumFantasyRank)
	assert.Equal(t, models.Some(1.5), ranks["D"].SumFantasyRank)
	assert.Equal(t, models.Some(3), ranks["E"].SumFantasyRank)
	assert.Equal(t, ranks["C"].AvgFantasyRank, ranks["D"].AvgFantasyRank)

	// Only A and D started; B, C, E have no started games
	assert.Equal(t, models.Some(1), ranks["A"].AvgPtsStartedRank)
	assert.Equal(t, models.Some(1), ranks["D"].AvgPtsStartedRank)
	assert.False(t, ranks["B"].AvgPtsStartedRank.Valid)
	assert.False(t, ranks["E"].AvgPtsStartedRank.Valid)
}

func TestNewSeasonAggregator_DefaultSeasonLength(t *testing.T) {
	scored := scoreAll(models.GameLogRow{PlayerID: "A", Year: 2020, GamesPlayed: 1})

	seasons := NewSeasonAggregator(0, nil).Aggregate(scored)
	require.Len(t, seasons, 1)
	assert.InDelta(t, 1.0/16, seasons[0].PercentagePlayedGames, tolerance)

	seasons = NewSeasonAggregator(17, nil).Aggregate(scored)
	assert.InDelta(t, 1.0/17, seasons[0].PercentagePlayedGames, tolerance)
}

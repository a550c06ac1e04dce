package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func column(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func TestWriteSeasonSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interim", "rb_fantasy_seasons.csv")
	rows := []models.SeasonSummaryRow{
		{
			PlayerID: "P1", Position: models.PositionRB, Year: 2020, Games: 2,
			GamesPlayed: 2, GamesStarted: 1,
			TotalPts:             models.SumMean{Sum: 25.8, Mean: 12.9},
			AvgPtsPerGamePlayed:  models.Some(12.9),
			AvgPtsPerGameStarted: models.Some(19),
			SumFantasyRank:       models.Some(1.5),
		},
		{
			PlayerID: "P2", Position: models.PositionRB, Year: 2020, Games: 1,
			AvgPtsPerGamePlayed: models.Undefined(),
		},
	}

	require.NoError(t, WriteSeasonSummaries(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	header := records[0]
	assert.Equal(t, SeasonSummaryHeader(), header)
	for _, rec := range records[1:] {
		assert.Len(t, rec, len(header))
	}

	assert.Equal(t, "25.8", records[1][column(header, "Total pts sum")])
	assert.Equal(t, "12.9", records[1][column(header, "Total pts mean")])
	assert.Equal(t, "19", records[1][column(header, "Avg pts per game started")])
	assert.Equal(t, "1.5", records[1][column(header, "sumFantasyRank")])
	assert.Equal(t, "", records[2][column(header, "Avg pts per game played")], "undefined renders empty")
	assert.Equal(t, "", records[2][column(header, "avgPtsPlayedRank")])
}

func TestWriteScoredGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rb_game_scores.csv")
	rows := []models.ScoredGameRow{{
		GameLogRow:         models.GameLogRow{PlayerID: "P1", Position: models.PositionRB, Year: 2020, Week: 1, RushingYards: 110},
		Points:             models.CategoryPoints{RushingYards: 11, RushingBonus: 2},
		TotalPoints:        13,
		TotalPointsStarted: 13,
	}}

	require.NoError(t, WriteScoredGames(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	header := records[0]
	require.Len(t, records[1], len(header))
	assert.Equal(t, "110", records[1][column(header, "Rushing Yards")])
	assert.Equal(t, "2", records[1][column(header, "Rushing Bonus pts")])
	assert.Equal(t, "13", records[1][column(header, "Total pts")])
	assert.Equal(t, "0", records[1][column(header, "Total pts active")])
}

func TestWriteSeasonStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wr_career_stats.csv")
	rows := []models.SeasonStatRow{{
		PlayerID: "wr/1", Year: 2016, Position: "WR", Team: "NYG",
		GamesPlayed:    models.Some(14),
		ReceivingYards: models.Some(1367),
	}}

	require.NoError(t, WriteSeasonStats(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	header := records[0]
	require.Len(t, records[1], len(header))
	assert.Equal(t, "1367", records[1][column(header, "Receiving Yards")])
	assert.Equal(t, "", records[1][column(header, "Rushing Yards")])
}

func TestWriteCSV_ReplacesExistingFileAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, WriteCSV(path, []string{"a", "b"}, [][]string{{"1", "2"}}))

	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, readCSV(t, path))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

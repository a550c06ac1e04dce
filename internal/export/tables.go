package export

import (
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

// pointColumns are the seven scoring categories in output order
var pointColumns = []string{
	"Rushing Yards pts", "Receiving Yards pts", "Rushing TDs pts",
	"Receiving TDs pts", "Receptions pts", "Rushing Bonus pts", "Receiving Bonus pts",
}

// SeasonSummaryHeader lists the columns of the fantasy season table
func SeasonSummaryHeader() []string {
	h := []string{
		"Player Id", "Position", "Year", "Games",
		"Games Played sum", "Games Started sum",
		"Rushing Yards", "Rushing TDs", "Longest Rushing Run",
		"Receptions", "Receiving Yards", "Receiving TDs", "Longest Reception",
		"Fumbles", "Fumbles Lost",
	}
	for _, c := range pointColumns {
		h = append(h, sumMeanHeader(c)...)
	}
	h = append(h, sumMeanHeader("Total pts")...)
	return append(h,
		"Total pts active sum", "Total pts started sum",
		"Avg pts per game played", "Avg pts per game started",
		"Percentage played games", "Percentage started games",
		"sumFantasyRank", "avgFantasyRank", "avgPtsPlayedRank", "avgPtsStartedRank",
	)
}

// SeasonSummaryRecord renders one fantasy season; undefined values are empty
func SeasonSummaryRecord(r models.SeasonSummaryRow) []string {
	rec := []string{
		r.PlayerID, string(r.Position), formatInt(r.Year), formatInt(r.Games),
		formatFloat(r.GamesPlayed), formatFloat(r.GamesStarted),
		formatInt(r.RushingYards), formatInt(r.RushingTDs), formatInt(r.LongestRushingRun),
		formatInt(r.Receptions), formatInt(r.ReceivingYards), formatInt(r.ReceivingTDs), formatInt(r.LongestReception),
		formatInt(r.Fumbles), formatInt(r.FumblesLost),
	}
	for _, sm := range []models.SumMean{
		r.RushingYardsPts, r.ReceivingYardsPts, r.RushingTDsPts, r.ReceivingTDsPts,
		r.ReceptionsPts, r.RushingBonusPts, r.ReceivingBonusPts, r.TotalPts,
	} {
		rec = append(rec, sumMeanCells(sm)...)
	}
	return append(rec,
		formatFloat(r.TotalPtsActiveSum), formatFloat(r.TotalPtsStartedSum),
		r.AvgPtsPerGamePlayed.String(), r.AvgPtsPerGameStarted.String(),
		formatFloat(r.PercentagePlayedGames), formatFloat(r.PercentageStartedGames),
		r.SumFantasyRank.String(), r.AvgFantasyRank.String(),
		r.AvgPtsPlayedRank.String(), r.AvgPtsStartedRank.String(),
	)
}

// WriteSeasonSummaries writes the fantasy season table
func WriteSeasonSummaries(path string, rows []models.SeasonSummaryRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = SeasonSummaryRecord(r)
	}
	return WriteCSV(path, SeasonSummaryHeader(), records)
}

var scoredGameHeader = append([]string{
	"Player Id", "Position", "Year", "Week", "Games Played", "Games Started",
	"Rushing Attempts", "Rushing Yards", "Rushing TDs", "Longest Rushing Run",
	"Receptions", "Receiving Yards", "Receiving TDs", "Longest Reception",
	"Fumbles", "Fumbles Lost",
}, append(append([]string{}, pointColumns...), "Total pts", "Total pts active", "Total pts started")...)

// WriteScoredGames writes the per-game scoring table
func WriteScoredGames(path string, rows []models.ScoredGameRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		rec := []string{
			r.PlayerID, string(r.Position), formatInt(r.Year), formatInt(r.Week),
			formatInt(r.GamesPlayed), formatInt(r.GamesStarted),
			formatInt(r.RushingAttempts), formatInt(r.RushingYards), formatInt(r.RushingTDs), formatInt(r.LongestRushingRun),
			formatInt(r.Receptions), formatInt(r.ReceivingYards), formatInt(r.ReceivingTDs), formatInt(r.LongestReception),
			formatInt(r.Fumbles), formatInt(r.FumblesLost),
		}
		for _, v := range r.Points.Values() {
			rec = append(rec, formatFloat(v))
		}
		records[i] = append(rec,
			formatFloat(r.TotalPoints), formatFloat(r.TotalPointsActive), formatFloat(r.TotalPointsStarted))
	}
	return WriteCSV(path, scoredGameHeader, records)
}

var seasonStatHeader = []string{
	"Player Id", "Year", "Position", "Team", "Games Played",
	"Rushing Attempts", "Rushing Attempts Per Game", "Rushing Yards", "Yards Per Carry",
	"Rushing Yards Per Game", "Rushing TDs", "Longest Rushing Run", "Rushing First Downs",
	"Percentage of Rushing First Downs", "Rushing More Than 20 Yards", "Rushing More Than 40 Yards",
	"Receptions", "Receiving Yards", "Yards Per Reception", "Yards Per Game",
	"Longest Reception", "Receiving TDs", "Receptions Longer than 20 Yards",
	"Receptions Longer than 40 Yards", "First Down Receptions",
	"Fumbles", "Fumbles Lost",
}

// WriteSeasonStats writes the merged career table of one position
func WriteSeasonStats(path string, rows []models.SeasonStatRow) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.PlayerID, formatInt(r.Year), r.Position, r.Team, r.GamesPlayed.String(),
			r.RushingAttempts.String(), r.RushingAttemptsPerGame.String(), r.RushingYards.String(), r.YardsPerCarry.String(),
			r.RushingYardsPerGame.String(), r.RushingTDs.String(), r.LongestRushingRun.String(), r.RushingFirstDowns.String(),
			r.PctRushingFirstDowns.String(), r.RushingMoreThan20Yards.String(), r.RushingMoreThan40Yards.String(),
			r.Receptions.String(), r.ReceivingYards.String(), r.YardsPerReception.String(), r.ReceivingYardsPerGame.String(),
			r.LongestReception.String(), r.ReceivingTDs.String(), r.ReceptionsMoreThan20.String(),
			r.ReceptionsMoreThan40.String(), r.FirstDownReceptions.String(),
			r.Fumbles.String(), r.FumblesLost.String(),
		}
	}
	return WriteCSV(path, seasonStatHeader, records)
}

package aggregator

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

// DefaultGamesPerSeason is the length of a regular season
const DefaultGamesPerSeason = 16

// SeasonAggregator reduces scored game rows to player seasons
type SeasonAggregator struct {
	gamesPerSeason int
	logger         *logrus.Logger
}

// NewSeasonAggregator creates an aggregator. A non-positive season length
// falls back to DefaultGamesPerSeason.
func NewSeasonAggregator(gamesPerSeason int, logger *logrus.Logger) *SeasonAggregator {
	if gamesPerSeason <= 0 {
		gamesPerSeason = DefaultGamesPerSeason
	}
	return &SeasonAggregator{
		gamesPerSeason: gamesPerSeason,
		logger:         logger,
	}
}

// Aggregate emits one summary per distinct (player, year), in the order
// each pair first appears in rows, with ranks filled in per year.
func (a *SeasonAggregator) Aggregate(rows []models.ScoredGameRow) []models.SeasonSummaryRow {
	groups := make(map[models.SeasonKey][]int)
	var keys []models.SeasonKey
	for i, r := range rows {
		key := models.SeasonKey{PlayerID: r.PlayerID, Year: r.Year}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], i)
	}

	summaries := make([]models.SeasonSummaryRow, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, a.summarize(rows, groups[key]))
	}
	RankWithinYears(summaries)

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"games":   len(rows),
			"seasons": len(summaries),
		}).Debug("Aggregated player seasons")
	}
	return summaries
}

// seasonColumns holds one season's values column by column
type seasonColumns struct {
	played, started                          []float64
	rushYds, recYds, rushTDs, recTDs, recpts []float64
	rushBonus, recBonus                      []float64
	total, active, startedPts                []float64
}

func newSeasonColumns(n int) *seasonColumns {
	mk := func() []float64 { return make([]float64, 0, n) }
	return &seasonColumns{
		played: mk(), started: mk(),
		rushYds: mk(), recYds: mk(), rushTDs: mk(), recTDs: mk(), recpts: mk(),
		rushBonus: mk(), recBonus: mk(),
		total: mk(), active: mk(), startedPts: mk(),
	}
}

func (c *seasonColumns) add(r models.ScoredGameRow) {
	c.played = append(c.played, float64(r.GamesPlayed))
	c.started = append(c.started, float64(r.GamesStarted))
	c.rushYds = append(c.rushYds, r.Points.RushingYards)
	c.recYds = append(c.recYds, r.Points.ReceivingYards)
	c.rushTDs = append(c.rushTDs, r.Points.RushingTDs)
	c.recTDs = append(c.recTDs, r.Points.ReceivingTDs)
	c.recpts = append(c.recpts, r.Points.Receptions)
	c.rushBonus = append(c.rushBonus, r.Points.RushingBonus)
	c.recBonus = append(c.recBonus, r.Points.ReceivingBonus)
	c.total = append(c.total, r.TotalPoints)
	c.active = append(c.active, r.TotalPointsActive)
	c.startedPts = append(c.startedPts, r.TotalPointsStarted)
}

func sumMean(x []float64) models.SumMean {
	return models.SumMean{Sum: floats.Sum(x), Mean: stat.Mean(x, nil)}
}

func (a *SeasonAggregator) summarize(rows []models.ScoredGameRow, idx []int) models.SeasonSummaryRow {
	first := rows[idx[0]]
	out := models.SeasonSummaryRow{
		PlayerID: first.PlayerID,
		Position: first.Position,
		Year:     first.Year,
		Games:    len(idx),
	}

	cols := newSeasonColumns(len(idx))
	for _, i := range idx {
		r := rows[i]
		cols.add(r)

		out.RushingYards += r.RushingYards
		out.RushingTDs += r.RushingTDs
		out.Receptions += r.Receptions
		out.ReceivingYards += r.ReceivingYards
		out.ReceivingTDs += r.ReceivingTDs
		out.Fumbles += r.Fumbles
		out.FumblesLost += r.FumblesLost
		out.LongestRushingRun = max(out.LongestRushingRun, r.LongestRushingRun)
		out.LongestReception = max(out.LongestReception, r.LongestReception)
	}

	out.RushingYardsPts = sumMean(cols.rushYds)
	out.ReceivingYardsPts = sumMean(cols.recYds)
	out.RushingTDsPts = sumMean(cols.rushTDs)
	out.ReceivingTDsPts = sumMean(cols.recTDs)
	out.ReceptionsPts = sumMean(cols.recpts)
	out.RushingBonusPts = sumMean(cols.rushBonus)
	out.ReceivingBonusPts = sumMean(cols.recBonus)
	out.TotalPts = sumMean(cols.total)
	out.TotalPtsActiveSum = floats.Sum(cols.active)
	out.TotalPtsStartedSum = floats.Sum(cols.startedPts)

	out.GamesPlayed = floats.Sum(cols.played)
	out.GamesStarted = floats.Sum(cols.started)
	out.AvgPtsPerGamePlayed = models.Ratio(out.TotalPtsActiveSum, out.GamesPlayed)
	out.AvgPtsPerGameStarted = models.Ratio(out.TotalPtsStartedSum, out.GamesStarted)
	out.PercentagePlayedGames = out.GamesPlayed / float64(a.gamesPerSeason)
	out.PercentageStartedGames = stat.Mean(cols.started, nil)

	return out
}

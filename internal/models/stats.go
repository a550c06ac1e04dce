package models

import (
	"fmt"
	"strings"
)

// Position is an offensive skill-position group
type Position string

const (
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// AllPositions lists the groups the pipeline builds by default
var AllPositions = []Position{PositionRB, PositionWR, PositionTE}

// ParsePosition validates a position label
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToUpper(strings.TrimSpace(s))); p {
	case PositionRB, PositionWR, PositionTE:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported position: %q", s)
	}
}

// Lower returns the lowercase label used in output file names
func (p Position) Lower() string {
	return strings.ToLower(string(p))
}

// GameLogRow is one player's box score for one game
type GameLogRow struct {
	PlayerID          string   `json:"player_id"`
	Position          Position `json:"position"`
	Year              int      `json:"year"`
	Week              int      `json:"week"`
	GamesPlayed       int      `json:"games_played"`
	GamesStarted      int      `json:"games_started"`
	RushingAttempts   int      `json:"rushing_attempts"`
	RushingYards      int      `json:"rushing_yards"`
	RushingTDs        int      `json:"rushing_tds"`
	LongestRushingRun int      `json:"longest_rushing_run"`
	Receptions        int      `json:"receptions"`
	ReceivingYards    int      `json:"receiving_yards"`
	ReceivingTDs      int      `json:"receiving_tds"`
	LongestReception  int      `json:"longest_reception"`
	Fumbles           int      `json:"fumbles"`
	FumblesLost       int      `json:"fumbles_lost"`
}

// CategoryPoints holds the per-category fantasy points of one game
type CategoryPoints struct {
	RushingYards   float64 `json:"rushing_yards_pts"`
	ReceivingYards float64 `json:"receiving_yards_pts"`
	RushingTDs     float64 `json:"rushing_tds_pts"`
	ReceivingTDs   float64 `json:"receiving_tds_pts"`
	Receptions     float64 `json:"receptions_pts"`
	RushingBonus   float64 `json:"rushing_bonus_pts"`
	ReceivingBonus float64 `json:"receiving_bonus_pts"`
}

// Total sums the seven categories
func (c CategoryPoints) Total() float64 {
	return c.RushingYards + c.ReceivingYards + c.RushingTDs + c.ReceivingTDs +
		c.Receptions + c.RushingBonus + c.ReceivingBonus
}

// Values returns the categories in output column order
func (c CategoryPoints) Values() []float64 {
	return []float64{
		c.RushingYards, c.ReceivingYards, c.RushingTDs, c.ReceivingTDs,
		c.Receptions, c.RushingBonus, c.ReceivingBonus,
	}
}

// ScoredGameRow is a game log row with its fantasy points
type ScoredGameRow struct {
	GameLogRow
	Points             CategoryPoints `json:"points"`
	TotalPoints        float64        `json:"total_pts"`
	TotalPointsActive  float64        `json:"total_pts_active"`
	TotalPointsStarted float64        `json:"total_pts_started"`
}

// SeasonKey identifies a player season
type SeasonKey struct {
	PlayerID string
	Year     int
}

// SumMean is the sum and arithmetic mean of a field over a season
type SumMean struct {
	Sum  float64 `json:"sum"`
	Mean float64 `json:"mean"`
}

// SeasonSummaryRow is the fantasy summary of one player season
type SeasonSummaryRow struct {
	PlayerID string   `json:"player_id"`
	Position Position `json:"position"`
	Year     int      `json:"year"`
	Games    int      `json:"games"`

	GamesPlayed  float64 `json:"games_played_sum"`
	GamesStarted float64 `json:"games_started_sum"`

	// Raw production over the season
	RushingYards      int `json:"rushing_yards"`
	RushingTDs        int `json:"rushing_tds"`
	LongestRushingRun int `json:"longest_rushing_run"`
	Receptions        int `json:"receptions"`
	ReceivingYards    int `json:"receiving_yards"`
	ReceivingTDs      int `json:"receiving_tds"`
	LongestReception  int `json:"longest_reception"`
	Fumbles           int `json:"fumbles"`
	FumblesLost       int `json:"fumbles_lost"`

	RushingYardsPts   SumMean `json:"rushing_yards_pts"`
	ReceivingYardsPts SumMean `json:"receiving_yards_pts"`
	RushingTDsPts     SumMean `json:"rushing_tds_pts"`
	ReceivingTDsPts   SumMean `json:"receiving_tds_pts"`
	ReceptionsPts     SumMean `json:"receptions_pts"`
	RushingBonusPts   SumMean `json:"rushing_bonus_pts"`
	ReceivingBonusPts SumMean `json:"receiving_bonus_pts"`
	TotalPts          SumMean `json:"total_pts"`

	// Gated totals keep only their sums
	TotalPtsActiveSum  float64 `json:"total_pts_active_sum"`
	TotalPtsStartedSum float64 `json:"total_pts_started_sum"`

	AvgPtsPerGamePlayed    Optional `json:"avg_pts_per_game_played"`
	AvgPtsPerGameStarted   Optional `json:"avg_pts_per_game_started"`
	PercentagePlayedGames  float64  `json:"pct_played_games"`
	PercentageStartedGames float64  `json:"pct_started_games"`

	SumFantasyRank    Optional `json:"sum_fantasy_rank"`
	AvgFantasyRank    Optional `json:"avg_fantasy_rank"`
	AvgPtsPlayedRank  Optional `json:"avg_pts_played_rank"`
	AvgPtsStartedRank Optional `json:"avg_pts_started_rank"`
}

// Key returns the (player, year) key of the row
func (r SeasonSummaryRow) Key() SeasonKey {
	return SeasonKey{PlayerID: r.PlayerID, Year: r.Year}
}

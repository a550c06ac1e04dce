package models

// SeasonStatRow is one row of the merged career tables: a player's
// rushing, receiving and fumble totals for one team in one year.
type SeasonStatRow struct {
	PlayerID string
	Year     int
	Position string
	Team     string

	GamesPlayed Optional

	RushingAttempts        Optional
	RushingAttemptsPerGame Optional
	RushingYards           Optional
	YardsPerCarry          Optional
	RushingYardsPerGame    Optional
	RushingTDs             Optional
	LongestRushingRun      Optional
	RushingFirstDowns      Optional
	PctRushingFirstDowns   Optional
	RushingMoreThan20Yards Optional
	RushingMoreThan40Yards Optional

	Receptions            Optional
	ReceivingYards        Optional
	YardsPerReception     Optional
	ReceivingYardsPerGame Optional
	LongestReception      Optional
	ReceivingTDs          Optional
	ReceptionsMoreThan20  Optional
	ReceptionsMoreThan40  Optional
	FirstDownReceptions   Optional

	Fumbles     Optional
	FumblesLost Optional
}

// SeasonTableKey is the merge key of the career tables
type SeasonTableKey struct {
	PlayerID string
	Year     int
	Team     string
}

// Key returns the merge key of the row
func (r SeasonStatRow) Key() SeasonTableKey {
	return SeasonTableKey{PlayerID: r.PlayerID, Year: r.Year, Team: r.Team}
}

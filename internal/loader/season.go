package loader

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

const (
	colPlayerID = "Player Id"
	colYear     = "Year"
	colTeam     = "Team"
	colPosition = "Position"
	colGames    = "Games Played"
)

var (
	rushingColumns = []string{
		colPlayerID, colYear, colPosition, colTeam, colGames,
		"Rushing Attempts", "Rushing Attempts Per Game", "Rushing Yards",
		"Yards Per Carry", "Rushing Yards Per Game", "Rushing TDs",
		"Longest Rushing Run", "Rushing First Downs",
		"Percentage of Rushing First Downs", "Rushing More Than 20 Yards",
		"Rushing More Than 40 Yards",
	}
	receivingColumns = []string{
		colPlayerID, colYear, colTeam, colGames,
		"Receptions", "Receiving Yards", "Yards Per Reception", "Yards Per Game",
		"Longest Reception", "Receiving TDs", "Receptions Longer than 20 Yards",
		"Receptions Longer than 40 Yards", "First Down Receptions",
	}
	fumbleColumns = []string{colPlayerID, colYear, colTeam, "Fumbles", "Fumbles Lost"}
)

// seasonEntry is a merged career row before games played is coalesced
type seasonEntry struct {
	row                  models.SeasonStatRow
	receivingGamesPlayed models.Optional
}

// SeasonTable is the outer join of the rushing and receiving career
// tables, left joined with fumbles, keyed by (player, year, team).
type SeasonTable struct {
	entries   []*seasonEntry
	positions map[string]positionYear
}

type positionYear struct {
	position string
	year     int
}

// Len returns the number of merged rows
func (t *SeasonTable) Len() int {
	return len(t.entries)
}

// ForPosition returns the rows of one position group with games played
// coalesced: running backs prefer the rushing table's count, receivers
// and tight ends prefer the receiving table's count.
func (t *SeasonTable) ForPosition(pos models.Position) []models.SeasonStatRow {
	var out []models.SeasonStatRow
	for _, e := range t.entries {
		if !strings.EqualFold(e.row.Position, string(pos)) {
			continue
		}
		row := e.row
		if pos == models.PositionRB {
			row.GamesPlayed = coalesce(e.row.GamesPlayed, e.receivingGamesPlayed)
		} else {
			row.GamesPlayed = coalesce(e.receivingGamesPlayed, e.row.GamesPlayed)
		}
		out = append(out, row)
	}
	return out
}

// PositionOf returns the position listed in the player's most recent season
func (t *SeasonTable) PositionOf(playerID string) (string, bool) {
	p, ok := t.positions[playerID]
	return p.position, ok
}

func coalesce(first, second models.Optional) models.Optional {
	if first.Valid {
		return first
	}
	return second
}

// LoadSeasonTable reads and merges the three career tables
func (l *Loader) LoadSeasonTable() (*SeasonTable, error) {
	rushing, err := l.readKeyed(l.files.Rushing, rushingColumns)
	if err != nil {
		return nil, err
	}
	receiving, err := l.readKeyed(l.files.Receiving, receivingColumns)
	if err != nil {
		return nil, err
	}
	fumbles, err := l.readKeyed(l.files.Fumbles, fumbleColumns)
	if err != nil {
		return nil, err
	}

	st := &SeasonTable{positions: make(map[string]positionYear)}
	byKey := make(map[models.SeasonTableKey]*seasonEntry)

	for i := 0; i < rushing.len(); i++ {
		e := &seasonEntry{}
		if err := rushing.fillRushing(i, &e.row); err != nil {
			return nil, err
		}
		byKey[e.row.Key()] = e
		st.entries = append(st.entries, e)
	}

	// outer join: receiving-only rows are appended after the rushing rows
	for i := 0; i < receiving.len(); i++ {
		key, err := receiving.key(i)
		if err != nil {
			return nil, err
		}
		e, ok := byKey[key]
		if !ok {
			e = &seasonEntry{row: models.SeasonStatRow{PlayerID: key.PlayerID, Year: key.Year, Team: key.Team}}
			byKey[key] = e
			st.entries = append(st.entries, e)
		}
		if e.row.Position == "" {
			e.row.Position = receiving.text(i, colPosition)
		}
		if err := receiving.fillReceiving(i, e); err != nil {
			return nil, err
		}
	}

	// left join: fumble rows without a career row are dropped
	for i := 0; i < fumbles.len(); i++ {
		key, err := fumbles.key(i)
		if err != nil {
			return nil, err
		}
		e, ok := byKey[key]
		if !ok {
			continue
		}
		if err := fumbles.fillFumbles(i, &e.row); err != nil {
			return nil, err
		}
	}

	for _, e := range st.entries {
		if e.row.Position == "" {
			continue
		}
		if cur, ok := st.positions[e.row.PlayerID]; !ok || e.row.Year >= cur.year {
			st.positions[e.row.PlayerID] = positionYear{position: strings.ToUpper(e.row.Position), year: e.row.Year}
		}
	}

	l.logger.WithFields(logrus.Fields{
		"rushing":   rushing.len(),
		"receiving": receiving.len(),
		"fumbles":   fumbles.len(),
		"merged":    st.Len(),
	}).Info("Merged career stat tables")

	return st, nil
}

// readKeyed reads a career table and asserts (player, year, team) is unique
func (l *Loader) readKeyed(name string, cols []string) (*table, error) {
	t, err := readTable(l.path(name))
	if err != nil {
		return nil, err
	}
	if err := t.require(cols...); err != nil {
		return nil, err
	}

	seen := make(map[models.SeasonTableKey]int, t.len())
	for i := 0; i < t.len(); i++ {
		key, err := t.key(i)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[key]; dup {
			return nil, &DuplicateKeyError{File: t.path, Key: key, Rows: [2]int{prev + 2, i + 2}}
		}
		seen[key] = i
	}
	return t, nil
}

func (t *table) key(row int) (models.SeasonTableKey, error) {
	year, err := t.number(row, colYear)
	if err != nil {
		return models.SeasonTableKey{}, err
	}
	if !year.Valid {
		return models.SeasonTableKey{}, fmt.Errorf("%w: %s line %d: missing %s", ErrMalformed, t.path, row+2, colYear)
	}
	return models.SeasonTableKey{
		PlayerID: t.text(row, colPlayerID),
		Year:     int(year.Value),
		Team:     t.text(row, colTeam),
	}, nil
}

// numbers parses each column into its destination, stopping at the first error
func (t *table) numbers(row int, dst map[string]*models.Optional) error {
	for col, p := range dst {
		v, err := t.number(row, col)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

func (t *table) fillRushing(row int, r *models.SeasonStatRow) error {
	key, err := t.key(row)
	if err != nil {
		return err
	}
	r.PlayerID, r.Year, r.Team = key.PlayerID, key.Year, key.Team
	r.Position = t.text(row, colPosition)

	return t.numbers(row, map[string]*models.Optional{
		colGames:                            &r.GamesPlayed,
		"Rushing Attempts":                  &r.RushingAttempts,
		"Rushing Attempts Per Game":         &r.RushingAttemptsPerGame,
		"Rushing Yards":                     &r.RushingYards,
		"Yards Per Carry":                   &r.YardsPerCarry,
		"Rushing Yards Per Game":            &r.RushingYardsPerGame,
		"Rushing TDs":                       &r.RushingTDs,
		"Longest Rushing Run":               &r.LongestRushingRun,
		"Rushing First Downs":               &r.RushingFirstDowns,
		"Percentage of Rushing First Downs": &r.PctRushingFirstDowns,
		"Rushing More Than 20 Yards":        &r.RushingMoreThan20Yards,
		"Rushing More Than 40 Yards":        &r.RushingMoreThan40Yards,
	})
}

func (t *table) fillReceiving(row int, e *seasonEntry) error {
	r := &e.row
	return t.numbers(row, map[string]*models.Optional{
		colGames:                          &e.receivingGamesPlayed,
		"Receptions":                      &r.Receptions,
		"Receiving Yards":                 &r.ReceivingYards,
		"Yards Per Reception":             &r.YardsPerReception,
		"Yards Per Game":                  &r.ReceivingYardsPerGame,
		"Longest Reception":               &r.LongestReception,
		"Receiving TDs":                   &r.ReceivingTDs,
		"Receptions Longer than 20 Yards": &r.ReceptionsMoreThan20,
		"Receptions Longer than 40 Yards": &r.ReceptionsMoreThan40,
		"First Down Receptions":           &r.FirstDownReceptions,
	})
}

// fillFumbles copies fumble counts; missing counts in the fumble table read as zero
func (t *table) fillFumbles(row int, r *models.SeasonStatRow) error {
	if err := t.numbers(row, map[string]*models.Optional{
		"Fumbles":      &r.Fumbles,
		"Fumbles Lost": &r.FumblesLost,
	}); err != nil {
		return err
	}
	r.Fumbles = models.Some(r.Fumbles.OrZero())
	r.FumblesLost = models.Some(r.FumblesLost.OrZero())
	return nil
}

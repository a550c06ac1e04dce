package loader

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

const (
	colSeason = "Season"
	colWeek   = "Week"
)

var gameLogColumns = []string{
	colPlayerID, colYear, colSeason, colWeek,
	colGames, "Games Started",
	"Rushing Yards", "Rushing TDs", "Longest Rushing Run",
	"Receptions", "Receiving Yards", "Receiving TDs", "Longest Reception",
}

// PositionResolver supplies a player's position when a game log row has none
type PositionResolver interface {
	PositionOf(playerID string) (string, bool)
}

// LoadGameLogs reads the regular-season game logs of one position group.
// Missing stats are zero-filled; fumble columns are optional.
func (l *Loader) LoadGameLogs(pos models.Position, positions PositionResolver) ([]models.GameLogRow, error) {
	name, ok := l.files.GameLogs[pos]
	if !ok || name == "" {
		return nil, fmt.Errorf("no game log file configured for %s", pos)
	}

	t, err := readTable(l.path(name))
	if err != nil {
		return nil, err
	}
	if err := t.require(gameLogColumns...); err != nil {
		return nil, err
	}

	var (
		rows       []models.GameLogRow
		skipped    int
		unresolved int
	)
	for i := 0; i < t.len(); i++ {
		if t.text(i, colSeason) != l.regularSeason {
			skipped++
			continue
		}

		rowPos := strings.ToUpper(t.text(i, colPosition))
		if rowPos == "" || rowPos == missingMarker {
			p, found := "", false
			if positions != nil {
				p, found = positions.PositionOf(t.text(i, colPlayerID))
			}
			if !found {
				unresolved++
				continue
			}
			rowPos = p
		}
		if rowPos != string(pos) {
			continue
		}

		row, err := t.gameLog(i)
		if err != nil {
			return nil, err
		}
		row.Position = pos
		rows = append(rows, row)
	}

	l.logger.WithFields(logrus.Fields{
		"file":       t.path,
		"position":   pos,
		"rows":       len(rows),
		"non_season": skipped,
		"unresolved": unresolved,
	}).Info("Loaded game logs")

	return rows, nil
}

func (t *table) gameLog(row int) (models.GameLogRow, error) {
	year, err := t.number(row, colYear)
	if err != nil {
		return models.GameLogRow{}, err
	}
	if !year.Valid {
		return models.GameLogRow{}, fmt.Errorf("%w: %s line %d: missing %s", ErrMalformed, t.path, row+2, colYear)
	}

	g := models.GameLogRow{
		PlayerID: t.text(row, colPlayerID),
		Year:     int(year.Value),
	}
	fields := []struct {
		col string
		dst *int
	}{
		{colWeek, &g.Week},
		{colGames, &g.GamesPlayed},
		{"Games Started", &g.GamesStarted},
		{"Rushing Attempts", &g.RushingAttempts},
		{"Rushing Yards", &g.RushingYards},
		{"Rushing TDs", &g.RushingTDs},
		{"Longest Rushing Run", &g.LongestRushingRun},
		{"Receptions", &g.Receptions},
		{"Receiving Yards", &g.ReceivingYards},
		{"Receiving TDs", &g.ReceivingTDs},
		{"Longest Reception", &g.LongestReception},
		{"Fumbles", &g.Fumbles},
		{"Fumbles Lost", &g.FumblesLost},
	}
	for _, f := range fields {
		v, err := t.integer(row, f.col)
		if err != nil {
			return models.GameLogRow{}, err
		}
		*f.dst = v
	}
	return g, nil
}

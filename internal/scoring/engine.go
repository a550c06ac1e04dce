package scoring

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
)

// minChunk keeps small tables on a single goroutine
const minChunk = 512

// Engine scores game log rows under one rule set
type Engine struct {
	rules   RuleSet
	workers int
	logger  *logrus.Logger
}

// NewEngine creates a scoring engine after validating the rule set
func NewEngine(rules RuleSet, workers int, logger *logrus.Logger) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		rules:   rules,
		workers: workers,
		logger:  logger,
	}, nil
}

// Rules returns the engine's rule set
func (e *Engine) Rules() RuleSet {
	return e.rules
}

// ScoreGame scores a single row
func (e *Engine) ScoreGame(row models.GameLogRow) models.ScoredGameRow {
	return ScoreGame(row, e.rules)
}

// ScoreGames scores every row, preserving input order. Rows are split
// into contiguous chunks scored by up to e.workers goroutines.
func (e *Engine) ScoreGames(ctx context.Context, rows []models.GameLogRow) ([]models.ScoredGameRow, error) {
	scored := make([]models.ScoredGameRow, len(rows))

	chunk := (len(rows) + e.workers - 1) / e.workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(rows); start += chunk {
		start, end := start, min(start+chunk, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%minChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				scored[i] = ScoreGame(rows[i], e.rules)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score games: %w", err)
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"rule_set": e.rules.Name,
			"rows":     len(rows),
		}).Debug("Scored game logs")
	}
	return scored, nil
}

// ScoreGame converts one box score into category points. Yardage bonuses
// are evaluated on the raw yardage against each ladder independently.
func ScoreGame(row models.GameLogRow, rules RuleSet) models.ScoredGameRow {
	rushYards := float64(row.RushingYards)
	recYards := float64(row.ReceivingYards)

	points := models.CategoryPoints{
		RushingYards:   rushYards * rules.Rate(CategoryRushingYards),
		ReceivingYards: recYards * rules.Rate(CategoryReceivingYards),
		RushingTDs:     float64(row.RushingTDs) * rules.Rate(CategoryRushingTDs),
		ReceivingTDs:   float64(row.ReceivingTDs) * rules.Rate(CategoryReceivingTDs),
		Receptions:     float64(row.Receptions) * rules.Rate(CategoryReceptions),
		RushingBonus:   Bonus(rushYards, rules.Ladder(CategoryRushingYards)),
		ReceivingBonus: Bonus(recYards, rules.Ladder(CategoryReceivingYards)),
	}
	total := points.Total()

	scored := models.ScoredGameRow{
		GameLogRow:  row,
		Points:      points,
		TotalPoints: total,
	}
	if row.GamesPlayed == 1 {
		scored.TotalPointsActive = total
	}
	if row.GamesStarted == 1 {
		scored.TotalPointsStarted = total
	}
	return scored
}

// Bonus sums the points of every tier whose threshold the yardage meets
func Bonus(yards float64, tiers []BonusTier) float64 {
	var bonus float64
	for _, t := range tiers {
		if yards >= t.Threshold {
			bonus += t.Points
		}
	}
	return bonus
}

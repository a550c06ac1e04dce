package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/aggregator"
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/export"
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/loader"
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/scoring"
	"github.com/stitts-dev/nfl-fantasy-pipeline/pkg/config"
	pkglogger "github.com/stitts-dev/nfl-fantasy-pipeline/pkg/logger"
)

// Runner builds the per-position season tables of one data directory
type Runner struct {
	cfg        *config.Config
	positions  []models.Position
	loader     *loader.Loader
	engine     *scoring.Engine
	aggregator *aggregator.SeasonAggregator
	logger     *logrus.Logger
}

// PositionResult summarizes the output of one position group
type PositionResult struct {
	Position    models.Position `json:"position"`
	SeasonRows  int             `json:"season_rows"`
	GameRows    int             `json:"game_rows"`
	Summaries   int             `json:"summaries"`
	Files       []string        `json:"files"`
	ExecutionMs int64           `json:"execution_ms"`
}

// Report is the outcome of a run
type Report struct {
	RunID    string           `json:"run_id"`
	RuleSet  string           `json:"rule_set"`
	Results  []PositionResult `json:"results"`
	Duration time.Duration    `json:"duration"`
}

// NewRunner validates the configuration and resolves the scoring rule set
func NewRunner(cfg *config.Config, log *logrus.Logger) (*Runner, error) {
	if log == nil {
		log = pkglogger.GetLogger()
	}

	positions := make([]models.Position, 0, len(cfg.Positions))
	for _, p := range cfg.Positions {
		pos, err := models.ParsePosition(p)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		positions = models.AllPositions
	}

	rules, err := scoring.ResolveRuleSet(cfg.ScoringRulesFile, cfg.ScoringRuleSet)
	if err != nil {
		return nil, err
	}
	engine, err := scoring.NewEngine(rules, cfg.ScoringWorkers, log)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:        cfg,
		positions:  positions,
		loader:     loader.NewLoader(cfg.DataPath, loader.FilesFromConfig(cfg), cfg.RegularSeasonLabel, log),
		engine:     engine,
		aggregator: aggregator.NewSeasonAggregator(cfg.GamesPerSeason, log),
		logger:     log,
	}, nil
}

// positionInput is everything one group needs once loading succeeded
type positionInput struct {
	position models.Position
	seasons  []models.SeasonStatRow
	games    []models.GameLogRow
}

// Run loads every input first so a structural error aborts before any
// file is written. Position groups are then built concurrently; a failing
// group does not touch the files of the others.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := r.logger.WithFields(logrus.Fields{
		"correlation_id": runID,
		"rule_set":       r.engine.Rules().Name,
	})
	log.WithField("positions", r.positions).Info("Starting fantasy season build")

	inputs, err := r.load(ctx)
	if err != nil {
		log.WithError(err).Error("Input validation failed, nothing written")
		return nil, err
	}

	results := make([]PositionResult, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry := pkglogger.WithPositionContext(r.logger, runID, string(in.position))
			res, err := r.build(ctx, in)
			if err != nil {
				entry.WithError(err).Error("Position group failed")
				errs[i] = fmt.Errorf("%s: %w", in.position, err)
				return
			}
			entry.WithFields(logrus.Fields{
				"games":     res.GameRows,
				"summaries": res.Summaries,
				"ms":        res.ExecutionMs,
			}).Info("Position group written")
			results[i] = res
		}()
	}
	wg.Wait()

	report := &Report{
		RunID:    runID,
		RuleSet:  r.engine.Rules().Name,
		Duration: time.Since(start),
	}
	for i, res := range results {
		if errs[i] == nil {
			report.Results = append(report.Results, res)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return report, err
	}
	log.WithField("duration", report.Duration).Info("Fantasy season build complete")
	return report, nil
}

func (r *Runner) load(ctx context.Context) ([]positionInput, error) {
	seasons, err := r.loader.LoadSeasonTable()
	if err != nil {
		return nil, err
	}

	inputs := make([]positionInput, len(r.positions))
	g, ctx := errgroup.WithContext(ctx)
	for i, pos := range r.positions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			games, err := r.loader.LoadGameLogs(pos, seasons)
			if err != nil {
				return fmt.Errorf("%s game logs: %w", pos, err)
			}
			inputs[i] = positionInput{
				position: pos,
				seasons:  seasons.ForPosition(pos),
				games:    games,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

func (r *Runner) build(ctx context.Context, in positionInput) (PositionResult, error) {
	start := time.Now()

	scored, summaries, err := BuildSeasons(ctx, r.engine, r.aggregator, in.games)
	if err != nil {
		return PositionResult{}, err
	}

	prefix := in.position.Lower()
	files := []string{
		filepath.Join(r.cfg.OutputDir, prefix+"_career_stats.csv"),
		filepath.Join(r.cfg.OutputDir, prefix+"_fantasy_seasons.csv"),
	}
	if err := export.WriteSeasonStats(files[0], in.seasons); err != nil {
		return PositionResult{}, err
	}
	if err := export.WriteSeasonSummaries(files[1], summaries); err != nil {
		return PositionResult{}, err
	}
	if r.cfg.WriteGameScores {
		path := filepath.Join(r.cfg.OutputDir, prefix+"_game_scores.csv")
		if err := export.WriteScoredGames(path, scored); err != nil {
			return PositionResult{}, err
		}
		files = append(files, path)
	}

	return PositionResult{
		Position:    in.position,
		SeasonRows:  len(in.seasons),
		GameRows:    len(in.games),
		Summaries:   len(summaries),
		Files:       files,
		ExecutionMs: time.Since(start).Milliseconds(),
	}, nil
}

// BuildSeasons runs the in-memory core: score every game row, then reduce
// the scored rows to ranked player seasons.
func BuildSeasons(
	ctx context.Context,
	engine *scoring.Engine,
	agg *aggregator.SeasonAggregator,
	games []models.GameLogRow,
) ([]models.ScoredGameRow, []models.SeasonSummaryRow, error) {
	scored, err := engine.ScoreGames(ctx, games)
	if err != nil {
		return nil, nil, err
	}
	return scored, agg.Aggregate(scored), nil
}

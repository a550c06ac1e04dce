package scoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrInvalidRuleSet = errors.New("invalid scoring rule set")
	ErrUnknownRuleSet = errors.New("unknown scoring rule set")
)

// Category names a scored statistic
type Category string

const (
	CategoryRushingYards    Category = "rushing_yards"
	CategoryReceivingYards  Category = "receiving_yards"
	CategoryRushingTDs      Category = "rushing_tds"
	CategoryReceivingTDs    Category = "receiving_tds"
	CategoryReceptions      Category = "receptions"
	CategoryPassCompletions Category = "pass_completions"
	CategoryPassingYards    Category = "passing_yards"
	CategoryPassingTDs      Category = "passing_tds"
	CategoryInterceptions   Category = "interceptions"
	CategoryFumblesLost     Category = "fumbles_lost"
)

// TiersPerLadder is the number of thresholds in each yardage bonus ladder
const TiersPerLadder = 3

// BonusTier awards Points once the yardage reaches Threshold
type BonusTier struct {
	Threshold float64 `mapstructure:"threshold" json:"threshold"`
	Points    float64 `mapstructure:"points" json:"points"`
}

// RuleSet maps categories to per-unit rates and yardage categories to
// bonus ladders. Categories without a rate score zero.
type RuleSet struct {
	Name    string                   `mapstructure:"name" json:"name"`
	Rates   map[Category]float64     `mapstructure:"rates" json:"rates"`
	Bonuses map[Category][]BonusTier `mapstructure:"bonuses" json:"bonuses"`
}

// Rate returns the per-unit rate of a category
func (rs RuleSet) Rate(c Category) float64 {
	return rs.Rates[c]
}

// Ladder returns the bonus ladder of a yardage category
func (rs RuleSet) Ladder(c Category) []BonusTier {
	return rs.Bonuses[c]
}

// Validate checks that both yardage ladders are present with exactly
// three strictly increasing thresholds
func (rs RuleSet) Validate() error {
	if strings.TrimSpace(rs.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRuleSet)
	}
	for c := range rs.Bonuses {
		if c != CategoryRushingYards && c != CategoryReceivingYards {
			return fmt.Errorf("%w: %s: bonus ladder on non-yardage category %q", ErrInvalidRuleSet, rs.Name, c)
		}
	}
	for _, c := range []Category{CategoryRushingYards, CategoryReceivingYards} {
		tiers := rs.Bonuses[c]
		if len(tiers) != TiersPerLadder {
			return fmt.Errorf("%w: %s: %s ladder has %d tiers, want %d",
				ErrInvalidRuleSet, rs.Name, c, len(tiers), TiersPerLadder)
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i].Threshold <= tiers[i-1].Threshold {
				return fmt.Errorf("%w: %s: %s thresholds must increase (%v after %v)",
					ErrInvalidRuleSet, rs.Name, c, tiers[i].Threshold, tiers[i-1].Threshold)
			}
		}
	}
	return nil
}

// PSK is the default league rule set
func PSK() RuleSet {
	return RuleSet{
		Name: "PSK",
		Rates: map[Category]float64{
			CategoryPassCompletions: 0.2,
			CategoryPassingYards:    1.0 / 25,
			CategoryPassingTDs:      4,
			CategoryInterceptions:   -2,
			CategoryRushingYards:    1.0 / 10,
			CategoryReceivingYards:  1.0 / 10,
			CategoryRushingTDs:      6,
			CategoryReceivingTDs:    6,
			CategoryReceptions:      0.4,
			CategoryFumblesLost:     -2,
		},
		Bonuses: map[Category][]BonusTier{
			CategoryRushingYards: {
				{Threshold: 100, Points: 2},
				{Threshold: 150, Points: 3},
				{Threshold: 200, Points: 5},
			},
			CategoryReceivingYards: {
				{Threshold: 100, Points: 1.5},
				{Threshold: 150, Points: 2},
				{Threshold: 200, Points: 3},
			},
		},
	}
}

// LoadRuleSets reads the rule_sets list from a YAML file. The built-in
// PSK set is always available unless the file redefines it.
func LoadRuleSets(path string) (map[string]RuleSet, error) {
	sets := map[string]RuleSet{"PSK": PSK()}
	if path == "" {
		return sets, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scoring rules %s: %w", path, err)
	}

	var loaded []RuleSet
	if err := v.UnmarshalKey("rule_sets", &loaded); err != nil {
		return nil, fmt.Errorf("decode scoring rules %s: %w", path, err)
	}
	for _, rs := range loaded {
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("scoring rules %s: %w", path, err)
		}
		sets[strings.ToUpper(rs.Name)] = rs
	}
	return sets, nil
}

// ResolveRuleSet loads the rule sets and picks one by name
func ResolveRuleSet(path, name string) (RuleSet, error) {
	sets, err := LoadRuleSets(path)
	if err != nil {
		return RuleSet{}, err
	}
	rs, ok := sets[strings.ToUpper(name)]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return rs, nil
}

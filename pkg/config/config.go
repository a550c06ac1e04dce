package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrMissingDataPath = errors.New("DATA_PATH is required")

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Input / output
	DataPath  string `mapstructure:"DATA_PATH"`
	OutputDir string `mapstructure:"OUTPUT_DIR"`

	// Season tables
	RushingFile   string `mapstructure:"RUSHING_FILE"`
	ReceivingFile string `mapstructure:"RECEIVING_FILE"`
	FumblesFile   string `mapstructure:"FUMBLES_FILE"`

	// Game logs
	RunningBackGameLogFile string `mapstructure:"RB_GAME_LOG_FILE"`
	ReceiverGameLogFile    string `mapstructure:"WR_TE_GAME_LOG_FILE"`
	RegularSeasonLabel     string `mapstructure:"REGULAR_SEASON_LABEL"`

	// Scoring
	ScoringRulesFile string `mapstructure:"SCORING_RULES_FILE"`
	ScoringRuleSet   string `mapstructure:"SCORING_RULE_SET"`
	ScoringWorkers   int    `mapstructure:"SCORING_WORKERS"`
	GamesPerSeason   int    `mapstructure:"GAMES_PER_SEASON"`

	// Output toggles
	Positions       []string `mapstructure:"POSITIONS"`
	WriteGameScores bool     `mapstructure:"WRITE_GAME_SCORES"`
}

// IsDevelopment reports whether the run uses development logging
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// BindFlags registers the command line flags and binds them into viper.
// Flags win over environment and .env values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("data-path", "", "directory holding the raw CSV exports")
	fs.String("output-dir", "", "directory for generated tables (default <data-path>/interim)")
	fs.String("scoring-file", "", "YAML file with scoring rule sets")
	fs.String("rule-set", "", "name of the scoring rule set to apply")
	fs.StringSlice("positions", nil, "position groups to build (RB,WR,TE)")
	fs.String("log-level", "", "log level")
	fs.Int("workers", 0, "scoring workers per position group")
	fs.Bool("write-game-scores", false, "also write the scored per-game tables")

	bindings := map[string]string{
		"DATA_PATH":          "data-path",
		"OUTPUT_DIR":         "output-dir",
		"SCORING_RULES_FILE": "scoring-file",
		"SCORING_RULE_SET":   "rule-set",
		"POSITIONS":          "positions",
		"LOG_LEVEL":          "log-level",
		"SCORING_WORKERS":    "workers",
		"WRITE_GAME_SCORES":  "write-game-scores",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// LoadConfig reads .env, environment and any bound flags into a Config
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_PATH", "")
	v.SetDefault("OUTPUT_DIR", "")
	v.SetDefault("RUSHING_FILE", "Career_Stats_Rushing.csv")
	v.SetDefault("RECEIVING_FILE", "Career_Stats_Receiving.csv")
	v.SetDefault("FUMBLES_FILE", "Career_Stats_Fumbles.csv")
	v.SetDefault("RB_GAME_LOG_FILE", "Game_Logs_Runningback.csv")
	v.SetDefault("WR_TE_GAME_LOG_FILE", "Game_Logs_Wide_Receiver_and_Tight_End.csv")
	v.SetDefault("REGULAR_SEASON_LABEL", "Regular Season")
	v.SetDefault("SCORING_RULES_FILE", "")
	v.SetDefault("SCORING_RULE_SET", "PSK")
	v.SetDefault("SCORING_WORKERS", 4)
	v.SetDefault("GAMES_PER_SEASON", 16)
	v.SetDefault("POSITIONS", "RB,WR,TE")
	v.SetDefault("WRITE_GAME_SCORES", false)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Positions arrive either as a flag slice or a comma-separated env value
	cfg.Positions = splitList(v.GetStringSlice("POSITIONS"))

	if cfg.DataPath == "" {
		return nil, ErrMissingDataPath
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.DataPath, "interim")
	}
	if cfg.ScoringWorkers < 1 {
		cfg.ScoringWorkers = 1
	}
	if cfg.GamesPerSeason < 1 {
		return nil, fmt.Errorf("GAMES_PER_SEASON must be positive, got %d", cfg.GamesPerSeason)
	}

	return &cfg, nil
}

func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

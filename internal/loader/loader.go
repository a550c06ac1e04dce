package loader

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-fantasy-pipeline/internal/models"
	"github.com/stitts-dev/nfl-fantasy-pipeline/pkg/config"
	pkglogger "github.com/stitts-dev/nfl-fantasy-pipeline/pkg/logger"
)

// Files names the raw exports relative to the data directory
type Files struct {
	Rushing   string
	Receiving string
	Fumbles   string
	GameLogs  map[models.Position]string
}

// Loader reads the raw CSV exports of one data directory
type Loader struct {
	dataPath      string
	files         Files
	regularSeason string
	logger        *logrus.Logger
}

// NewLoader creates a loader. A nil logger falls back to a discarding one.
func NewLoader(dataPath string, files Files, regularSeason string, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = pkglogger.Discard()
	}
	return &Loader{
		dataPath:      dataPath,
		files:         files,
		regularSeason: regularSeason,
		logger:        logger,
	}
}

// FilesFromConfig maps the configured file names onto Files
func FilesFromConfig(cfg *config.Config) Files {
	return Files{
		Rushing:   cfg.RushingFile,
		Receiving: cfg.ReceivingFile,
		Fumbles:   cfg.FumblesFile,
		GameLogs: map[models.Position]string{
			models.PositionRB: cfg.RunningBackGameLogFile,
			models.PositionWR: cfg.ReceiverGameLogFile,
			models.PositionTE: cfg.ReceiverGameLogFile,
		},
	}
}

func (l *Loader) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dataPath, name)
}

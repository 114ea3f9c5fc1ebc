package container

import (
	"context"

	"prizedeck/adapters/country"
	"prizedeck/adapters/excel"
	"prizedeck/adapters/memory"
	"prizedeck/adapters/pptx"
	"prizedeck/app"
	"prizedeck/domain/deck"
	"prizedeck/domain/results"
	"prizedeck/internal/config"
	"prizedeck/internal/errors"

	"go.uber.org/zap"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Log    *zap.Logger

	// Code tables
	Labels *results.Labels

	// Adapters
	Source    *excel.Source
	Templates pptx.Opener
	Countries *country.Namer
	Uploads   *memory.UploadStore

	// Services
	DeckService *app.DeckService
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	labels, err := results.LoadLabels(cfg.Deck.LabelsFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load labels")
	}

	c := &Container{
		Config:    cfg,
		Log:       log,
		Labels:    labels,
		Countries: country.NewNamer(labels.Countries),
		Source:    excel.NewSource(excel.NewDataReader(log), excel.ColumnsFromConfig(cfg.Columns)),
		Uploads:   memory.NewUploadStore(cfg.Server.SessionTTL, memory.WithLogger(log)),
	}

	planner := deck.NewPlanner(c.Labels, c.Countries)
	c.DeckService = app.NewDeckService(c.Source, c.Templates, planner, cfg.Deck, log)

	log.Debug("Container initialized",
		zap.String("labels_file", cfg.Deck.LabelsFile),
		zap.Int("prize_labels", len(labels.Prizes)),
		zap.Int("country_overrides", len(labels.Countries)))

	return c, nil
}

// Shutdown drops pending uploads and flushes the logger
func (c *Container) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	removed := c.Uploads.Clear()
	c.Log.Debug("Pending uploads dropped", zap.Int("count", removed))
	// stderr cannot always be synced
	_ = c.Log.Sync()
	return nil
}

package app

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"prizedeck/domain/deck"
	"prizedeck/domain/results"
	"prizedeck/internal/config"
	"prizedeck/internal/errors"
	"prizedeck/ports"

	"go.uber.org/zap"
)

// PresentationContentType is the MIME type of generated decks.
const PresentationContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// GenerateRequest is one deck generation run
type GenerateRequest struct {
	Workbook       []byte
	Template       []byte
	Sheet          string
	DropFirstSlide bool
}

// GenerateResult carries the deck and what went into it
type GenerateResult struct {
	Deck     []byte
	FileName string
	Day      string
	Groups   int
	Entries  int
	Skipped  int
	Slides   int
	Warnings []string
}

// DeckService turns a results sheet and a template into an announcement deck
type DeckService struct {
	source    ports.ResultsSource
	templates ports.TemplateOpener
	planner   *deck.Planner
	cfg       config.DeckConfig
	log       *zap.Logger
}

// NewDeckService creates a deck service
func NewDeckService(source ports.ResultsSource, templates ports.TemplateOpener, planner *deck.Planner, cfg config.DeckConfig, log *zap.Logger) *DeckService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeckService{
		source:    source,
		templates: templates,
		planner:   planner,
		cfg:       cfg,
		log:       log.Named("deck"),
	}
}

// Sheets lists the tabs of the workbook
func (s *DeckService) Sheets(ctx context.Context, workbook []byte) ([]string, error) {
	if len(workbook) == 0 {
		return nil, errors.InvalidInput("workbook is required")
	}
	sheets, err := s.source.SheetNames(ctx, workbook)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sheets")
	}
	return sheets, nil
}

// Preview returns the first limit rows of the sheet
func (s *DeckService) Preview(ctx context.Context, workbook []byte, sheet string, limit int) (*results.Preview, error) {
	if len(workbook) == 0 {
		return nil, errors.InvalidInput("workbook is required")
	}
	preview, err := s.source.Preview(ctx, workbook, sheet, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to preview sheet %q", sheet)
	}
	return preview, nil
}

// Plan returns the slides the groups would produce
func (s *DeckService) Plan(groups []results.Group) deck.Plan {
	return s.planner.Plan(groups)
}

// Day returns the competition day label of a sheet name
func (s *DeckService) Day(sheet string) string {
	return results.DayFromSheet(sheet, s.cfg.SheetPrefix)
}

// Generate builds the deck: one header slide per (location, category) group
// followed by a plain and a prize slide for each of its entries.
func (s *DeckService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startTime := time.Now()

	switch {
	case len(req.Workbook) == 0:
		return nil, errors.InvalidInput("workbook is required")
	case len(req.Template) == 0:
		return nil, errors.InvalidInput("template is required")
	case req.Sheet == "":
		return nil, errors.InvalidInput("sheet is required")
	}

	entries, err := s.source.Entries(ctx, req.Workbook, req.Sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", req.Sheet)
	}

	skipped := results.Skipped(entries)
	for _, entry := range skipped {
		s.log.Warn("Row skipped: no location or category",
			zap.String("sheet", req.Sheet),
			zap.Int("row", entry.Row),
			zap.String("name", entry.Name))
	}

	groups := results.GroupEntries(entries)
	plan := s.Plan(groups)

	doc, err := s.templates.Open(req.Template)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open template")
	}

	if req.DropFirstSlide && doc.SlideCount() > 0 {
		if err := doc.RemoveSlide(0); err != nil {
			return nil, errors.Wrap(err, "failed to remove first template slide")
		}
	}

	if err := s.checkLayouts(doc); err != nil {
		return nil, err
	}

	missing := make(map[deck.SlideKind]map[int]bool)
	for i, slide := range plan {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		layout := s.cfg.ParticipantLayout
		if slide.Kind == deck.KindHeader {
			layout = s.cfg.HeaderLayout
		}

		absent, err := doc.AddSlide(layout, slide.Placeholders)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to add slide %d", i+1)
		}
		for _, idx := range absent {
			if missing[slide.Kind] == nil {
				missing[slide.Kind] = make(map[int]bool)
			}
			missing[slide.Kind][idx] = true
		}
	}
	warnings := s.placeholderWarnings(missing)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to save deck")
	}

	result := &GenerateResult{
		Deck:     buf.Bytes(),
		FileName: s.cfg.OutputName,
		Day:      s.Day(req.Sheet),
		Groups:   len(groups),
		Entries:  results.CountEntries(groups),
		Skipped:  len(skipped),
		Slides:   len(plan),
		Warnings: warnings,
	}

	s.log.Info("Deck generated",
		zap.String("sheet", req.Sheet),
		zap.String("day", result.Day),
		zap.Int("groups", result.Groups),
		zap.Int("entries", result.Entries),
		zap.Int("slides", result.Slides),
		zap.Int("bytes", len(result.Deck)),
		zap.Duration("elapsed", time.Since(startTime)))

	return result, nil
}

func (s *DeckService) checkLayouts(doc ports.DeckDocument) error {
	count := doc.LayoutCount()
	for _, layout := range []struct {
		name  string
		index int
	}{
		{"header", s.cfg.HeaderLayout},
		{"participant", s.cfg.ParticipantLayout},
	} {
		if layout.index < 0 || layout.index >= count {
			return errors.InvalidInput(fmt.Sprintf("template has %d slide layouts, %s layout %d does not exist", count, layout.name, layout.index))
		}
	}
	return nil
}

func (s *DeckService) placeholderWarnings(missing map[deck.SlideKind]map[int]bool) []string {
	var warnings []string
	for _, kind := range []deck.SlideKind{deck.KindHeader, deck.KindParticipant} {
		var indices []int
		for idx := range missing[kind] {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			warnings = append(warnings, fmt.Sprintf("%s layout has no text placeholder %d", kind, idx))
			s.log.Warn("Placeholder missing from layout",
				zap.String("kind", string(kind)),
				zap.Int("idx", idx))
		}
	}
	return warnings
}

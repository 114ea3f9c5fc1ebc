package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"prizedeck/adapters/pptx"
	"prizedeck/app"
	"prizedeck/domain/results"
	"prizedeck/internal"
	"prizedeck/internal/config"
	"prizedeck/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "prizedeck-cli",
		Short:         "Build prize announcement decks from a results workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (ERROR, WARN, INFO, DEBUG); defaults to LOG_LEVEL")

	deps := func() (*container.Container, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger, err := internal.NewLogger(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		return container.New(cfg, logger)
	}

	rootCmd.AddCommand(
		newSheetsCmd(deps),
		newPlanCmd(deps),
		newGenerateCmd(deps),
		newInspectCmd(),
	)
	return rootCmd
}

type depsFunc func() (*container.Container, error)

func newSheetsCmd(deps depsFunc) *cobra.Command {
	var workbookPath string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List the tabs of a results workbook",
		Long: `List the tabs of a results workbook with the competition day derived from each name.

Example: prizedeck-cli sheets --workbook punten.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := deps()
			if err != nil {
				return err
			}
			workbook, err := os.ReadFile(workbookPath)
			if err != nil {
				return fmt.Errorf("failed to read workbook: %w", err)
			}

			sheets, err := c.DeckService.Sheets(cmd.Context(), workbook)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, sheet := range sheets {
				fmt.Fprintf(out, "%s\t%s\n", sheet, c.DeckService.Day(sheet))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workbookPath, "workbook", "", "Results workbook (.xlsx)")
	_ = cmd.MarkFlagRequired("workbook")
	return cmd
}

func newPlanCmd(deps depsFunc) *cobra.Command {
	var workbookPath, sheet string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the slides a sheet would produce",
		Long: `Print the slide plan of a sheet: one header slide per location and category,
then a plain and a prize slide for every participant.

Example: prizedeck-cli plan --workbook punten.xlsx --sheet "Punten Zaterdag" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := deps()
			if err != nil {
				return err
			}
			workbook, err := os.ReadFile(workbookPath)
			if err != nil {
				return fmt.Errorf("failed to read workbook: %w", err)
			}

			entries, err := c.Source.Entries(cmd.Context(), workbook, sheet)
			if err != nil {
				return err
			}
			for _, entry := range results.Skipped(entries) {
				c.Log.Warn("Row skipped: no location or category", zap.Int("row", entry.Row))
			}

			groups := results.GroupEntries(entries)
			plan := c.DeckService.Plan(groups)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Day: %s\nGroups: %d\nEntries: %d\nSlides: %d\n\n",
				c.DeckService.Day(sheet), len(groups), results.CountEntries(groups), len(plan))
			for i, slide := range plan {
				fmt.Fprintf(out, "%3d %-11s %s\n", i+1, slide.Kind, formatTexts(slide.Placeholders))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workbookPath, "workbook", "", "Results workbook (.xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	_ = cmd.MarkFlagRequired("workbook")
	_ = cmd.MarkFlagRequired("sheet")
	return cmd
}

func newGenerateCmd(deps depsFunc) *cobra.Command {
	var workbookPath, templatePath, sheet, outPath string
	var dropFirstSlide bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the announcement deck for a sheet",
		Long: `Generate the announcement deck for a sheet from a .pptx template.

The template's first layout is used for the location and category header slides
and its second layout for the participant slides (see DECK_HEADER_LAYOUT and
DECK_PARTICIPANT_LAYOUT).

Example: prizedeck-cli generate --workbook punten.xlsx --template sjabloon.pptx --sheet "Punten Zondag" --out deck.pptx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := deps()
			if err != nil {
				return err
			}
			workbook, err := os.ReadFile(workbookPath)
			if err != nil {
				return fmt.Errorf("failed to read workbook: %w", err)
			}
			tmpl, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}

			result, err := c.DeckService.Generate(cmd.Context(), app.GenerateRequest{
				Workbook:       workbook,
				Template:       tmpl,
				Sheet:          sheet,
				DropFirstSlide: dropFirstSlide,
			})
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = result.FileName
			}
			if err := os.WriteFile(outPath, result.Deck, 0o644); err != nil {
				return fmt.Errorf("failed to write deck: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s: %d slides for %s (%d groups, %d entries, %d rows skipped)\n",
				outPath, result.Slides, result.Day, result.Groups, result.Entries, result.Skipped)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workbookPath, "workbook", "", "Results workbook (.xlsx)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Presentation template (.pptx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (defaults to DECK_OUTPUT_NAME)")
	cmd.Flags().BoolVar(&dropFirstSlide, "drop-first-slide", false, "Remove the template's first slide")
	for _, name := range []string{"workbook", "template", "sheet"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newInspectCmd() *cobra.Command {
	var deckPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the layouts and slide texts of a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(deckPath)
			if err != nil {
				return fmt.Errorf("failed to read deck: %w", err)
			}
			p, err := pptx.Open(data)
			if err != nil {
				return err
			}
			return printDeck(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&deckPath, "deck", "", "Deck or template (.pptx)")
	_ = cmd.MarkFlagRequired("deck")
	return cmd
}

func printDeck(out io.Writer, p *pptx.Presentation) error {
	fmt.Fprintln(out, "Layouts:")
	for _, layout := range p.Layouts() {
		indices := make([]string, 0, len(layout.Placeholders))
		for _, ph := range layout.Placeholders {
			indices = append(indices, fmt.Sprintf("%d:%s", ph.Idx, ph.Type))
		}
		fmt.Fprintf(out, "  [%d] %s (%s)\n", layout.Index, layout.Name, strings.Join(indices, " "))
	}

	fmt.Fprintf(out, "Slides: %d\n", p.SlideCount())
	for i := 0; i < p.SlideCount(); i++ {
		texts, err := p.SlideTexts(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %3d %s\n", i+1, formatTexts(texts))
	}
	return nil
}

// formatTexts renders placeholder texts in idx order on one line.
func formatTexts(texts map[int]string) string {
	indices := make([]int, 0, len(texts))
	for idx := range texts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	parts := make([]string, 0, len(indices))
	for _, idx := range indices {
		parts = append(parts, fmt.Sprintf("%d=%q", idx, texts[idx]))
	}
	return strings.Join(parts, " ")
}

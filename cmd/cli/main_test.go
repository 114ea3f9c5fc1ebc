package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"prizedeck/adapters/excel/exceltest"
	"prizedeck/adapters/pptx"
	"prizedeck/adapters/pptx/pptxtest"
	"prizedeck/domain/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (workbook, template string) {
	t.Helper()
	dir := t.TempDir()
	workbook = filepath.Join(dir, "punten.xlsx")
	template = filepath.Join(dir, "sjabloon.pptx")
	require.NoError(t, os.WriteFile(workbook, exceltest.Results(), 0o644))
	require.NoError(t, os.WriteFile(template, pptxtest.Template(), 0o644))
	return workbook, template
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSheetsCmd(t *testing.T) {
	workbook, _ := writeFixtures(t)

	out, err := execute(t, "sheets", "--workbook", workbook)
	require.NoError(t, err)
	assert.Equal(t, "Punten Zaterdag\tZaterdag\nPunten Zondag\tZondag\n", out)
}

func TestPlanCmd(t *testing.T) {
	workbook, _ := writeFixtures(t)

	out, err := execute(t, "plan", "--workbook", workbook, "--sheet", "Punten Zondag")
	require.NoError(t, err)
	assert.Contains(t, out, "Day: Zondag")
	assert.Contains(t, out, "Slides: 3")
	assert.Contains(t, out, `1=""`)
	assert.Contains(t, out, `1="FIRST PRIZE\nSUMMA CUM LAUDE"`)
	assert.Contains(t, out, `22="Germany"`)

	out, err = execute(t, "plan", "--workbook", workbook, "--sheet", "Punten Zaterdag", "--json")
	require.NoError(t, err)

	var plan deck.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan, 8)
	assert.Equal(t, deck.KindHeader, plan[0].Kind)
	assert.Equal(t, "Zaal A", plan[0].Placeholders[deck.HeaderLocation])
	assert.Equal(t, 2, plan[1].Row)
}

func TestGenerateAndInspectCmd(t *testing.T) {
	workbook, template := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "deck.pptx")

	out, err := execute(t, "generate",
		"--workbook", workbook,
		"--template", template,
		"--sheet", "Punten Zaterdag",
		"--out", outPath,
		"--drop-first-slide")
	require.NoError(t, err)
	assert.Contains(t, out, "8 slides for Zaterdag (2 groups, 3 entries, 1 rows skipped)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	p, err := pptx.Open(data)
	require.NoError(t, err)
	assert.Equal(t, 8, p.SlideCount())

	out, err = execute(t, "inspect", "--deck", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "[0] Header (0:title 1:body 21:body 10:dt)")
	assert.Contains(t, out, "Slides: 8")
	assert.Contains(t, out, `24="Anna"`)
}

func TestCmdErrors(t *testing.T) {
	workbook, template := writeFixtures(t)

	_, err := execute(t, "plan", "--workbook", workbook, "--sheet", "Punten Maandag")
	assert.Error(t, err)

	_, err = execute(t, "generate", "--workbook", workbook, "--template", workbook, "--sheet", "Punten Zondag", "--out", filepath.Join(t.TempDir(), "x.pptx"))
	assert.Error(t, err)

	_, err = execute(t, "generate", "--workbook", workbook, "--template", template)
	assert.Error(t, err, "--sheet is required")

	_, err = execute(t, "inspect", "--deck", filepath.Join(t.TempDir(), "missing.pptx"))
	assert.Error(t, err)
}

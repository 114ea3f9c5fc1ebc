package excel

import (
	"context"
	"testing"

	"prizedeck/adapters/excel/exceltest"
	"prizedeck/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Entries(t *testing.T) {
	source := NewSource(NewDataReader(nil), DefaultColumns())

	entries, err := source.Entries(context.Background(), exceltest.Results(), "Punten Zaterdag")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, 2, entries[0].Row)
	assert.Equal(t, "Zaal A", entries[0].Location)
	assert.Equal(t, "Piano: Categorie B", entries[0].Category)
	assert.Equal(t, "2", entries[1].PrizeCode)
	assert.Equal(t, 5, entries[2].Row)
	assert.False(t, entries[3].HasGroupKey())
}

func TestSource_CustomColumns(t *testing.T) {
	workbook := exceltest.Workbook(exceltest.Sheet{
		Name: "Results",
		Rows: [][]interface{}{
			{"Venue", "Class", "Performer"},
			{"Hall 1", "Brass", "Finn"},
		},
	})
	columns := DefaultColumns()
	columns.Location, columns.Category, columns.Name = "Venue", "Class", "Performer"

	entries, err := NewSource(NewDataReader(nil), columns).Entries(context.Background(), workbook, "Results")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Finn", entries[0].Name)
	assert.Empty(t, entries[0].CountryCode)
}

func TestSource_Errors(t *testing.T) {
	source := NewSource(NewDataReader(nil), DefaultColumns())

	_, err := source.Entries(context.Background(), exceltest.Results(), "Punten Maandag")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.SheetNames(ctx, exceltest.Results())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Preview(t *testing.T) {
	source := NewSource(NewDataReader(nil), DefaultColumns())

	preview, err := source.Preview(context.Background(), exceltest.Results(), "Punten Zondag", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.TotalRows)
	assert.False(t, preview.Truncated)
	assert.Equal(t, []string{"Zaal C", "Cello", "Emma", "Keulen", "DE", "1 SCL"}, preview.Rows[0])
}

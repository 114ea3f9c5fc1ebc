package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"prizedeck/adapters/country"
	"prizedeck/adapters/excel"
	"prizedeck/adapters/excel/exceltest"
	"prizedeck/adapters/pptx"
	"prizedeck/adapters/pptx/pptxtest"
	"prizedeck/domain/deck"
	"prizedeck/domain/results"
	"prizedeck/internal/config"
	"prizedeck/internal/errors"
	"prizedeck/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockResultsSource struct {
	mock.Mock
}

func (m *MockResultsSource) SheetNames(ctx context.Context, workbook []byte) ([]string, error) {
	args := m.Called(ctx, workbook)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockResultsSource) Entries(ctx context.Context, workbook []byte, sheet string) ([]results.Entry, error) {
	args := m.Called(ctx, workbook, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]results.Entry), args.Error(1)
}

func (m *MockResultsSource) Preview(ctx context.Context, workbook []byte, sheet string, limit int) (*results.Preview, error) {
	args := m.Called(ctx, workbook, sheet, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*results.Preview), args.Error(1)
}

type MockTemplateOpener struct {
	mock.Mock
}

func (m *MockTemplateOpener) Open(data []byte) (ports.DeckDocument, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.DeckDocument), args.Error(1)
}

type MockDeckDocument struct {
	mock.Mock
}

func (m *MockDeckDocument) LayoutCount() int {
	return m.Called().Int(0)
}

func (m *MockDeckDocument) SlideCount() int {
	return m.Called().Int(0)
}

func (m *MockDeckDocument) RemoveSlide(index int) error {
	return m.Called(index).Error(0)
}

func (m *MockDeckDocument) AddSlide(layoutIndex int, texts map[int]string) ([]int, error) {
	args := m.Called(layoutIndex, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockDeckDocument) Save(w io.Writer) error {
	args := m.Called(w)
	_, _ = io.WriteString(w, "deck")
	return args.Error(0)
}

type staticNamer map[string]string

func (n staticNamer) Name(code string) string {
	if name, ok := n[code]; ok {
		return name
	}
	return code
}

func testDeckConfig() config.DeckConfig {
	return config.DeckConfig{
		HeaderLayout:      0,
		ParticipantLayout: 1,
		OutputName:        "Punten_Presentatie_2025.pptx",
		SheetPrefix:       "Punten ",
	}
}

func newMockedService(source *MockResultsSource, opener *MockTemplateOpener) *DeckService {
	planner := deck.NewPlanner(nil, staticNamer{"BE": "Belgium"})
	return NewDeckService(source, opener, planner, testDeckConfig(), nil)
}

var (
	workbookBytes = []byte("xlsx")
	templateBytes = []byte("pptx")
)

func TestGenerate_AddsPlannedSlides(t *testing.T) {
	ctx := context.Background()
	source := &MockResultsSource{}
	opener := &MockTemplateOpener{}
	doc := &MockDeckDocument{}

	source.On("Entries", ctx, workbookBytes, "Punten Zaterdag").Return([]results.Entry{
		{Row: 2, Location: "Zaal A", Category: "Piano: B", Name: "Anna", City: "Gent", CountryCode: "BE", PrizeCode: "1"},
		{Row: 3, Location: "", Category: "Piano: B", Name: "Bram"},
	}, nil)
	opener.On("Open", templateBytes).Return(doc, nil)
	doc.On("LayoutCount").Return(2)
	doc.On("AddSlide", 0, map[int]string{21: "Zaal A", 1: "Piano: B"}).Return([]int(nil), nil).Once()
	doc.On("AddSlide", 1, map[int]string{1: "", 21: "Gent", 22: "Belgium", 23: "Piano\nB", 24: "Anna"}).Return([]int{22}, nil).Once()
	doc.On("AddSlide", 1, map[int]string{1: "FIRST PRIZE", 21: "Gent", 22: "Belgium", 23: "Piano\nB", 24: "Anna"}).Return([]int{22}, nil).Once()
	doc.On("Save", mock.Anything).Return(nil)

	result, err := newMockedService(source, opener).Generate(ctx, GenerateRequest{
		Workbook: workbookBytes,
		Template: templateBytes,
		Sheet:    "Punten Zaterdag",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("deck"), result.Deck)
	assert.Equal(t, "Punten_Presentatie_2025.pptx", result.FileName)
	assert.Equal(t, "Zaterdag", result.Day)
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 1, result.Entries)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Slides)
	assert.Equal(t, []string{"participant layout has no text placeholder 22"}, result.Warnings)

	source.AssertExpectations(t)
	opener.AssertExpectations(t)
	doc.AssertExpectations(t)
	doc.AssertNotCalled(t, "RemoveSlide", mock.Anything)
}

func TestGenerate_DropFirstSlide(t *testing.T) {
	ctx := context.Background()
	source := &MockResultsSource{}
	opener := &MockTemplateOpener{}
	doc := &MockDeckDocument{}

	source.On("Entries", ctx, workbookBytes, "Punten Zondag").Return([]results.Entry{}, nil)
	opener.On("Open", templateBytes).Return(doc, nil)
	doc.On("SlideCount").Return(1)
	doc.On("RemoveSlide", 0).Return(nil)
	doc.On("LayoutCount").Return(2)
	doc.On("Save", mock.Anything).Return(nil)

	result, err := newMockedService(source, opener).Generate(ctx, GenerateRequest{
		Workbook:       workbookBytes,
		Template:       templateBytes,
		Sheet:          "Punten Zondag",
		DropFirstSlide: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Slides)
	doc.AssertExpectations(t)
	doc.AssertNotCalled(t, "AddSlide", mock.Anything, mock.Anything)
}

func TestGenerate_MissingLayout(t *testing.T) {
	ctx := context.Background()
	source := &MockResultsSource{}
	opener := &MockTemplateOpener{}
	doc := &MockDeckDocument{}

	source.On("Entries", ctx, workbookBytes, "S").Return([]results.Entry{{Location: "A", Category: "B"}}, nil)
	opener.On("Open", templateBytes).Return(doc, nil)
	doc.On("LayoutCount").Return(1)

	_, err := newMockedService(source, opener).Generate(ctx, GenerateRequest{Workbook: workbookBytes, Template: templateBytes, Sheet: "S"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "participant layout 1")
	doc.AssertNotCalled(t, "AddSlide", mock.Anything, mock.Anything)
}

func TestGenerate_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing inputs", func(t *testing.T) {
		service := newMockedService(&MockResultsSource{}, &MockTemplateOpener{})
		for _, req := range []GenerateRequest{
			{Template: templateBytes, Sheet: "S"},
			{Workbook: workbookBytes, Sheet: "S"},
			{Workbook: workbookBytes, Template: templateBytes},
		} {
			_, err := service.Generate(ctx, req)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		}
	})

	t.Run("unknown sheet", func(t *testing.T) {
		source := &MockResultsSource{}
		source.On("Entries", ctx, workbookBytes, "Nope").Return(nil, errors.NotFound(`sheet "Nope"`))

		_, err := newMockedService(source, &MockTemplateOpener{}).Generate(ctx, GenerateRequest{Workbook: workbookBytes, Template: templateBytes, Sheet: "Nope"})
		require.Error(t, err)
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})

	t.Run("broken template", func(t *testing.T) {
		source := &MockResultsSource{}
		opener := &MockTemplateOpener{}
		source.On("Entries", ctx, workbookBytes, "S").Return([]results.Entry{}, nil)
		opener.On("Open", templateBytes).Return(nil, errors.InvalidInput("template is not a zip package"))

		_, err := newMockedService(source, opener).Generate(ctx, GenerateRequest{Workbook: workbookBytes, Template: templateBytes, Sheet: "S"})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		assert.Contains(t, err.Error(), "failed to open template")
	})
}

func TestSheetsAndPreview(t *testing.T) {
	ctx := context.Background()
	source := &MockResultsSource{}
	source.On("SheetNames", ctx, workbookBytes).Return([]string{"Punten Zaterdag", "Punten Zondag"}, nil)
	source.On("Preview", ctx, workbookBytes, "Punten Zondag", 5).Return(&results.Preview{Sheet: "Punten Zondag", TotalRows: 1}, nil)

	service := newMockedService(source, &MockTemplateOpener{})

	sheets, err := service.Sheets(ctx, workbookBytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Punten Zaterdag", "Punten Zondag"}, sheets)

	preview, err := service.Preview(ctx, workbookBytes, "Punten Zondag", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.TotalRows)

	_, err = service.Sheets(ctx, nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	assert.Equal(t, "Zondag", service.Day("Punten Zondag"))
}

func TestGenerate_EndToEnd(t *testing.T) {
	source := excel.NewSource(excel.NewDataReader(nil), excel.DefaultColumns())
	planner := deck.NewPlanner(results.DefaultLabels(), country.NewNamer(nil))
	service := NewDeckService(source, pptx.Opener{}, planner, testDeckConfig(), nil)

	result, err := service.Generate(context.Background(), GenerateRequest{
		Workbook: exceltest.Results(),
		Template: pptxtest.Template(),
		Sheet:    "Punten Zaterdag",
	})
	require.NoError(t, err)

	// groups: (Zaal A, Piano) with Anna and Chloé, (Zaal B, Viool) with Bram
	assert.Equal(t, 2, result.Groups)
	assert.Equal(t, 3, result.Entries)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2+2*3, result.Slides)
	assert.Empty(t, result.Warnings)

	out, err := pptx.Open(result.Deck)
	require.NoError(t, err)
	require.Equal(t, 1+result.Slides, out.SlideCount())

	header, err := out.SlideTexts(1)
	require.NoError(t, err)
	assert.Equal(t, "Zaal A", header[21])
	assert.Equal(t, "Piano: Categorie B", header[1])

	plain, err := out.SlideTexts(2)
	require.NoError(t, err)
	assert.Equal(t, "", plain[1])
	assert.Equal(t, "Anna", plain[24])
	assert.Equal(t, "Belgium", plain[22])
	assert.Equal(t, "Piano\nCategorie B", plain[23])

	prize, err := out.SlideTexts(3)
	require.NoError(t, err)
	assert.Equal(t, "FIRST PRIZE\nCUM LAUDE", prize[1])

	chloe, err := out.SlideTexts(5)
	require.NoError(t, err)
	assert.Equal(t, "MENTIONED", chloe[1])
	assert.Equal(t, "France", chloe[22])

	second, err := out.SlideTexts(6)
	require.NoError(t, err)
	assert.Equal(t, "Zaal B", second[21])

	bram, err := out.SlideTexts(8)
	require.NoError(t, err)
	assert.Equal(t, "SECOND PRIZE", bram[1])
	assert.Equal(t, "Netherlands", bram[22])
	assert.True(t, bytes.HasPrefix(result.Deck, []byte("PK")))
}

package ports

import "io"

// DeckDocument is an opened presentation template being extended with slides
type DeckDocument interface {
	LayoutCount() int
	SlideCount() int
	RemoveSlide(index int) error

	// AddSlide appends a slide from the layout and fills placeholders by idx.
	// It returns the indices the layout had no text placeholder for.
	AddSlide(layoutIndex int, texts map[int]string) ([]int, error)

	Save(w io.Writer) error
}

// TemplateOpener parses uploaded template files
type TemplateOpener interface {
	Open(data []byte) (DeckDocument, error)
}

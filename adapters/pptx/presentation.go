package pptx

import (
	"fmt"
	"io"
	"strconv"

	"prizedeck/internal/errors"
	"prizedeck/ports"

	"github.com/beevik/etree"
)

// Placeholder describes a placeholder shape of a layout or slide.
type Placeholder struct {
	Idx  int
	Type string
	Name string
}

// Layout is a slide layout of the first slide master, in master order.
type Layout struct {
	Index        int
	Name         string
	Part         string
	Placeholders []Placeholder
}

// Presentation is an opened template being extended with slides.
type Presentation struct {
	pkg          *opcPackage
	contentTypes *etree.Document
	presPart     string
	presDoc      *etree.Document
	presRels     *relationships

	layouts    []Layout
	layoutDocs map[string]*etree.Document
}

// Opener opens uploaded templates.
type Opener struct{}

// Open parses data as a .pptx template.
func (Opener) Open(data []byte) (ports.DeckDocument, error) {
	p, err := Open(data)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open parses a .pptx package.
func Open(data []byte) (*Presentation, error) {
	pkg, err := readPackage(data)
	if err != nil {
		return nil, err
	}

	contentTypes, err := pkg.xml(contentTypesPart)
	if err != nil {
		return nil, err
	}

	rootRels, err := loadRelationships(pkg, "")
	if err != nil {
		return nil, err
	}
	docs := rootRels.byType(relTypeOfficeDocument)
	if len(docs) == 0 {
		return nil, errors.InvalidInput("template has no main presentation part")
	}
	presPart := docs[0].Target

	presDoc, err := pkg.xml(presPart)
	if err != nil {
		return nil, err
	}
	if presDoc.Root().FullTag() != "p:presentation" {
		return nil, errors.InvalidInput(fmt.Sprintf("%s is not a presentation", presPart))
	}

	presRels, err := loadRelationships(pkg, presPart)
	if err != nil {
		return nil, err
	}

	p := &Presentation{
		pkg:          pkg,
		contentTypes: contentTypes,
		presPart:     presPart,
		presDoc:      presDoc,
		presRels:     presRels,
		layoutDocs:   make(map[string]*etree.Document),
	}
	if err := p.loadLayouts(); err != nil {
		return nil, err
	}
	return p, nil
}

// loadLayouts reads the layouts of the first slide master listed in the
// presentation, in the order of the master's layout id list.
func (p *Presentation) loadLayouts() error {
	masterID := p.presDoc.Root().FindElement("./p:sldMasterIdLst/p:sldMasterId")
	if masterID == nil {
		return errors.InvalidInput("template has no slide master")
	}
	masterRel, ok := p.presRels.byID(masterID.SelectAttrValue("r:id", ""))
	if !ok {
		return errors.InvalidInput("slide master relationship is missing")
	}

	masterDoc, err := p.pkg.xml(masterRel.Target)
	if err != nil {
		return err
	}
	masterRels, err := loadRelationships(p.pkg, masterRel.Target)
	if err != nil {
		return err
	}

	for _, layoutID := range masterDoc.Root().FindElements("./p:sldLayoutIdLst/p:sldLayoutId") {
		rel, ok := masterRels.byID(layoutID.SelectAttrValue("r:id", ""))
		if !ok || rel.Type != relTypeSlideLayout {
			continue
		}
		doc, err := p.pkg.xml(rel.Target)
		if err != nil {
			return err
		}
		p.layoutDocs[rel.Target] = doc

		layout := Layout{
			Index: len(p.layouts),
			Part:  rel.Target,
		}
		if cSld := doc.Root().SelectElement("p:cSld"); cSld != nil {
			layout.Name = cSld.SelectAttrValue("name", "")
		}
		for _, sp := range placeholderShapes(doc) {
			layout.Placeholders = append(layout.Placeholders, describePlaceholder(sp))
		}
		p.layouts = append(p.layouts, layout)
	}
	return nil
}

// Layouts returns the available slide layouts.
func (p *Presentation) Layouts() []Layout {
	return p.layouts
}

// LayoutCount returns the number of slide layouts of the first master.
func (p *Presentation) LayoutCount() int {
	return len(p.layouts)
}

func (p *Presentation) slideIDList(create bool) *etree.Element {
	root := p.presDoc.Root()
	if list := root.SelectElement("p:sldIdLst"); list != nil || !create {
		return list
	}

	// sldIdLst follows the master id lists in the schema sequence
	insertAt := 0
	for i, tok := range root.Child {
		el, ok := tok.(*etree.Element)
		if !ok {
			continue
		}
		switch el.FullTag() {
		case "p:sldMasterIdLst", "p:notesMasterIdLst", "p:handoutMasterIdLst":
			insertAt = i + 1
		}
	}
	list := etree.NewElement("p:sldIdLst")
	root.InsertChildAt(insertAt, list)
	return list
}

func (p *Presentation) slideIDs() []*etree.Element {
	list := p.slideIDList(false)
	if list == nil {
		return nil
	}
	return list.SelectElements("p:sldId")
}

// SlideCount returns the number of slides in the deck.
func (p *Presentation) SlideCount() int {
	return len(p.slideIDs())
}

func (p *Presentation) slidePart(index int) (*etree.Element, relationship, error) {
	ids := p.slideIDs()
	if index < 0 || index >= len(ids) {
		return nil, relationship{}, errors.InvalidInput(fmt.Sprintf("slide %d out of range (deck has %d slides)", index, len(ids)))
	}
	rel, ok := p.presRels.byID(ids[index].SelectAttrValue("r:id", ""))
	if !ok {
		return nil, relationship{}, errors.InvalidInput(fmt.Sprintf("slide %d has no relationship", index))
	}
	return ids[index], rel, nil
}

// AddSlide appends a slide built from the layout and sets the text of the
// placeholders named in texts. It returns the indices that had no text
// placeholder on the layout.
func (p *Presentation) AddSlide(layoutIndex int, texts map[int]string) ([]int, error) {
	if layoutIndex < 0 || layoutIndex >= len(p.layouts) {
		return nil, errors.InvalidInput(fmt.Sprintf("template has no slide layout %d (found %d layouts)", layoutIndex, len(p.layouts)))
	}
	layout := p.layouts[layoutIndex]

	slidePart := p.nextSlidePart()
	slideDoc := newSlideFromLayout(p.layoutDocs[layout.Part])
	missing := fillPlaceholders(slideDoc, texts)

	if err := p.pkg.putXML(slidePart, slideDoc); err != nil {
		return nil, err
	}

	slideRels := newRelationships(slidePart)
	slideRels.add(relTypeSlideLayout, layout.Part)
	if err := slideRels.save(p.pkg); err != nil {
		return nil, err
	}

	p.addOverride(slidePart, contentTypeSlide)

	rID := p.presRels.add(relTypeSlide, slidePart)
	sldID := p.slideIDList(true).CreateElement("p:sldId")
	sldID.CreateAttr("id", strconv.Itoa(p.nextSlideID()))
	sldID.CreateAttr("r:id", rID)

	return missing, nil
}

// RemoveSlide deletes the slide at index together with its notes.
func (p *Presentation) RemoveSlide(index int) error {
	sldID, rel, err := p.slidePart(index)
	if err != nil {
		return err
	}

	slideRels, err := loadRelationships(p.pkg, rel.Target)
	if err != nil {
		return err
	}
	for _, notes := range slideRels.byType(relTypeNotesSlide) {
		p.removePart(notes.Target)
	}
	p.removePart(rel.Target)

	p.slideIDList(false).RemoveChild(sldID)
	p.presRels.remove(rel.ID)
	return nil
}

// SlideTexts returns the placeholder texts of the slide at index, keyed by
// placeholder idx. Paragraphs are joined with newlines.
func (p *Presentation) SlideTexts(index int) (map[int]string, error) {
	_, rel, err := p.slidePart(index)
	if err != nil {
		return nil, err
	}
	doc, err := p.pkg.xml(rel.Target)
	if err != nil {
		return nil, err
	}
	return placeholderTexts(doc), nil
}

// Save writes the deck as a .pptx package.
func (p *Presentation) Save(w io.Writer) error {
	if err := p.pkg.putXML(contentTypesPart, p.contentTypes); err != nil {
		return err
	}
	if err := p.pkg.putXML(p.presPart, p.presDoc); err != nil {
		return err
	}
	if err := p.presRels.save(p.pkg); err != nil {
		return err
	}
	return p.pkg.write(w)
}

func (p *Presentation) nextSlidePart() string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		if !p.pkg.has(name) {
			return name
		}
	}
}

func (p *Presentation) nextSlideID() int {
	next := 256
	for _, el := range p.slideIDs() {
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id >= next {
			next = id + 1
		}
	}
	return next
}

func (p *Presentation) addOverride(partName, contentType string) {
	override := p.contentTypes.Root().CreateElement("Override")
	override.CreateAttr("PartName", "/"+partName)
	override.CreateAttr("ContentType", contentType)
}

func (p *Presentation) removePart(partName string) {
	p.pkg.remove(partName)
	p.pkg.remove(relsPartFor(partName))

	root := p.contentTypes.Root()
	for _, el := range root.SelectElements("Override") {
		if el.SelectAttrValue("PartName", "") == "/"+partName {
			root.RemoveChild(el)
		}
	}
}

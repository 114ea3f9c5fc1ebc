package pptx

import (
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsOfficeRels     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Placeholder types that are not copied onto new slides.
var uncloned = map[string]bool{
	"dt":     true,
	"ftr":    true,
	"sldNum": true,
}

// Placeholder types that get a text body on new slides.
var textTypes = map[string]bool{
	"title":    true,
	"ctrTitle": true,
	"subTitle": true,
	"body":     true,
	"obj":      true,
}

// placeholderShapes returns the top-level p:sp shapes carrying a p:ph.
func placeholderShapes(doc *etree.Document) []*etree.Element {
	var shapes []*etree.Element
	for _, sp := range doc.Root().FindElements("./p:cSld/p:spTree/p:sp") {
		if sp.FindElement("./p:nvSpPr/p:nvPr/p:ph") != nil {
			shapes = append(shapes, sp)
		}
	}
	return shapes
}

func placeholderOf(sp *etree.Element) *etree.Element {
	return sp.FindElement("./p:nvSpPr/p:nvPr/p:ph")
}

func describePlaceholder(sp *etree.Element) Placeholder {
	ph := placeholderOf(sp)
	idx, _ := strconv.Atoi(ph.SelectAttrValue("idx", "0"))

	name := ""
	if cNvPr := sp.FindElement("./p:nvSpPr/p:cNvPr"); cNvPr != nil {
		name = cNvPr.SelectAttrValue("name", "")
	}
	return Placeholder{
		Idx:  idx,
		Type: ph.SelectAttrValue("type", "obj"),
		Name: name,
	}
}

// newSlideFromLayout creates an empty slide holding a copy of every
// cloneable placeholder of the layout.
func newSlideFromLayout(layout *etree.Document) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)

	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", nsDrawingML)
	sld.CreateAttr("xmlns:r", nsOfficeRels)
	sld.CreateAttr("xmlns:p", nsPresentationML)
	for _, attr := range layout.Root().Attr {
		if attr.Space == "xmlns" && sld.SelectAttr(attr.FullKey()) == nil {
			sld.CreateAttr(attr.FullKey(), attr.Value)
		}
	}

	spTree := sld.CreateElement("p:cSld").CreateElement("p:spTree")
	nvGrpSpPr := spTree.CreateElement("p:nvGrpSpPr")
	cNvPr := nvGrpSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "")
	nvGrpSpPr.CreateElement("p:cNvGrpSpPr")
	nvGrpSpPr.CreateElement("p:nvPr")
	spTree.CreateElement("p:grpSpPr")

	nextID := 2
	for _, source := range placeholderShapes(layout) {
		info := describePlaceholder(source)
		if uncloned[info.Type] {
			continue
		}
		spTree.AddChild(clonePlaceholder(source, info, nextID))
		nextID++
	}

	sld.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func clonePlaceholder(source *etree.Element, info Placeholder, id int) *etree.Element {
	sp := etree.NewElement("p:sp")

	nvSpPr := sp.CreateElement("p:nvSpPr")
	cNvPr := nvSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	name := info.Name
	if name == "" {
		name = "Placeholder " + strconv.Itoa(id-1)
	}
	cNvPr.CreateAttr("name", name)
	nvSpPr.CreateElement("p:cNvSpPr").CreateElement("a:spLocks").CreateAttr("noGrp", "1")

	ph := placeholderOf(source).Copy()
	ph.RemoveAttr("hasCustomPrompt")
	nvSpPr.CreateElement("p:nvPr").AddChild(ph)

	sp.CreateElement("p:spPr")

	if textTypes[info.Type] {
		txBody := sp.CreateElement("p:txBody")
		txBody.CreateElement("a:bodyPr")
		txBody.CreateElement("a:lstStyle")
		txBody.CreateElement("a:p")
	}
	return sp
}

// fillPlaceholders sets the text of each placeholder whose idx is a key of
// texts and returns, sorted, the keys no text placeholder matched.
func fillPlaceholders(doc *etree.Document, texts map[int]string) []int {
	filled := make(map[int]bool, len(texts))

	for _, sp := range placeholderShapes(doc) {
		info := describePlaceholder(sp)
		text, ok := texts[info.Idx]
		if !ok {
			continue
		}
		txBody := sp.SelectElement("p:txBody")
		if txBody == nil {
			continue
		}
		setText(txBody, text)
		filled[info.Idx] = true
	}

	var missing []int
	for idx := range texts {
		if !filled[idx] {
			missing = append(missing, idx)
		}
	}
	sort.Ints(missing)
	return missing
}

// setText replaces the paragraphs of a text body. Each newline starts a new
// paragraph and a vertical tab becomes a line break.
func setText(txBody *etree.Element, text string) {
	for _, p := range txBody.SelectElements("a:p") {
		txBody.RemoveChild(p)
	}

	for _, line := range strings.Split(text, "\n") {
		p := txBody.CreateElement("a:p")
		for i, segment := range strings.Split(line, "\v") {
			if i > 0 {
				p.CreateElement("a:br")
			}
			if segment == "" {
				continue
			}
			p.CreateElement("a:r").CreateElement("a:t").SetText(segment)
		}
	}
}

// placeholderTexts reads back the text of every placeholder with a text body.
func placeholderTexts(doc *etree.Document) map[int]string {
	texts := make(map[int]string)
	for _, sp := range placeholderShapes(doc) {
		txBody := sp.SelectElement("p:txBody")
		if txBody == nil {
			continue
		}
		var paragraphs []string
		for _, p := range txBody.SelectElements("a:p") {
			var b strings.Builder
			for _, child := range p.ChildElements() {
				switch child.FullTag() {
				case "a:r", "a:fld":
					if t := child.SelectElement("a:t"); t != nil {
						b.WriteString(t.Text())
					}
				case "a:br":
					b.WriteString("\v")
				}
			}
			paragraphs = append(paragraphs, b.String())
		}
		texts[describePlaceholder(sp).Idx] = strings.Join(paragraphs, "\n")
	}
	return texts
}

// Package pptx edits PresentationML packages in memory: it lists a
// template's slide layouts, appends slides built from them and fills
// placeholder text by index.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"prizedeck/internal/errors"

	"github.com/beevik/etree"
)

const (
	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"

	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"

	contentTypeSlide = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"

	xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="yes"`
)

// opcPackage holds the raw parts of the zip container in their original order.
type opcPackage struct {
	order []string
	parts map[string][]byte
}

func readPackage(data []byte) (*opcPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "template is not a zip package")
	}

	pkg := &opcPackage{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open part %s", f.Name)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read part %s", f.Name)
		}
		pkg.put(f.Name, content)
	}
	return pkg, nil
}

func (p *opcPackage) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

func (p *opcPackage) put(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

func (p *opcPackage) remove(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *opcPackage) xml(name string) (*etree.Document, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("template is missing part %s", name))
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(errors.InvalidInput(err.Error()), "failed to parse %s", name)
	}
	if doc.Root() == nil {
		return nil, errors.InvalidInput(fmt.Sprintf("part %s has no root element", name))
	}
	return doc, nil
}

func (p *opcPackage) putXML(name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, "failed to serialize %s", name)
	}
	p.put(name, data)
	return nil
}

// write emits the package with the content types part first.
func (p *opcPackage) write(w io.Writer) error {
	zw := zip.NewWriter(w)

	names := make([]string, 0, len(p.order))
	if p.has(contentTypesPart) {
		names = append(names, contentTypesPart)
	}
	for _, name := range p.order {
		if name != contentTypesPart {
			names = append(names, name)
		}
	}

	for _, name := range names {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return errors.Wrapf(err, "failed to add %s", name)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return errors.Wrapf(err, "failed to write %s", name)
		}
	}
	return errors.Wrap(zw.Close(), "failed to finish package")
}

// relsPartFor returns the relationships part of a source part:
// ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartFor(partName string) string {
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget turns a relationship target into a part name.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// relativeTarget is the inverse of resolveTarget for parts of one package.
func relativeTarget(source, partName string) string {
	from := strings.Split(path.Dir(source), "/")
	to := strings.Split(partName, "/")
	if path.Dir(source) == "." {
		from = nil
	}

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	var parts []string
	for i := common; i < len(from); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}

// relationships wraps a .rels part.
type relationships struct {
	source string
	doc    *etree.Document
}

type relationship struct {
	ID     string
	Type   string
	Target string // resolved part name
}

func newRelationships(source string) *relationships {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRelationships)
	return &relationships{source: source, doc: doc}
}

func loadRelationships(pkg *opcPackage, source string) (*relationships, error) {
	name := relsPartFor(source)
	if source == "" {
		name = packageRelsPart
	}
	if !pkg.has(name) {
		return newRelationships(source), nil
	}
	doc, err := pkg.xml(name)
	if err != nil {
		return nil, err
	}
	return &relationships{source: source, doc: doc}, nil
}

func (r *relationships) all() []relationship {
	var rels []relationship
	for _, el := range r.doc.Root().SelectElements("Relationship") {
		rel := relationship{
			ID:   el.SelectAttrValue("Id", ""),
			Type: el.SelectAttrValue("Type", ""),
		}
		if el.SelectAttrValue("TargetMode", "") == "External" {
			rel.Target = el.SelectAttrValue("Target", "")
		} else {
			rel.Target = resolveTarget(r.source, el.SelectAttrValue("Target", ""))
		}
		rels = append(rels, rel)
	}
	return rels
}

func (r *relationships) byID(id string) (relationship, bool) {
	for _, rel := range r.all() {
		if rel.ID == id {
			return rel, true
		}
	}
	return relationship{}, false
}

func (r *relationships) byType(relType string) []relationship {
	var out []relationship
	for _, rel := range r.all() {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// add appends a relationship to partName and returns its new id.
func (r *relationships) add(relType, partName string) string {
	used := make(map[string]bool)
	for _, rel := range r.all() {
		used[rel.ID] = true
	}
	id := ""
	for n := len(used) + 1; ; n++ {
		id = fmt.Sprintf("rId%d", n)
		if !used[id] {
			break
		}
	}

	el := r.doc.Root().CreateElement("Relationship")
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", relType)
	el.CreateAttr("Target", relativeTarget(r.source, partName))
	return id
}

func (r *relationships) remove(id string) {
	root := r.doc.Root()
	for _, el := range root.SelectElements("Relationship") {
		if el.SelectAttrValue("Id", "") == id {
			root.RemoveChild(el)
			return
		}
	}
}

func (r *relationships) save(pkg *opcPackage) error {
	return pkg.putXML(relsPartFor(r.source), r.doc)
}

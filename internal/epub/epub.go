// Package epub reads the metadata, navigation and chapter documents of
// EPUB 2 and EPUB 3 files.
package epub

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"

	"github.com/justyntemme/novel-t/pkg/models"
)

const containerPath = "META-INF/container.xml"

// ErrChapterNotFound is returned for ids that are not in the contents
var ErrChapterNotFound = errors.New("chapter not found")

// entry is one flattened navigation point
type entry struct {
	title  string
	href   string // as written in the navigation document
	file   string // archive path of the target document
	parent string
}

// Book is an open EPUB archive
type Book struct {
	Title  string
	Author string
	// Cover is the archive path of the cover image, if any
	Cover string

	zr      *fixzip.ReadCloser
	files   map[string]*fixzip.File
	entries []entry
}

// Open reads the package document and navigation of the EPUB at name.
// The returned Book must be closed.
func Open(name string) (*Book, error) {
	zr, err := fixzip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to read archive file (%s): %w", name, err)
	}
	b := &Book{
		zr:    zr,
		files: make(map[string]*fixzip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		b.files[f.Name] = f
	}
	if err := b.load(); err != nil {
		return nil, multierr.Append(fmt.Errorf("%s: %w", name, err), zr.Close())
	}
	return b, nil
}

// Close releases the archive
func (b *Book) Close() error {
	return b.zr.Close()
}

func (b *Book) load() error {
	container, err := b.readXML(containerPath)
	if err != nil {
		return err
	}
	rootfile := container.FindElement("//rootfile")
	if rootfile == nil {
		return errors.New("container has no rootfile")
	}
	opfPath := rootfile.SelectAttrValue("full-path", "")
	if opfPath == "" {
		return errors.New("rootfile has no full-path")
	}

	opf, err := b.readXML(opfPath)
	if err != nil {
		return err
	}
	pkg := opf.SelectElement("package")
	if pkg == nil {
		return fmt.Errorf("%s: missing package element", opfPath)
	}
	base := path.Dir(opfPath)

	if md := pkg.SelectElement("metadata"); md != nil {
		if t := md.SelectElement("title"); t != nil {
			b.Title = strings.TrimSpace(t.Text())
		}
		if c := md.SelectElement("creator"); c != nil {
			b.Author = strings.TrimSpace(c.Text())
		}
	}

	man := readManifest(pkg, base)
	b.Cover = man.cover(pkg)

	var spine []string
	var ncxID string
	if sp := pkg.SelectElement("spine"); sp != nil {
		ncxID = sp.SelectAttrValue("toc", "")
		for _, ref := range sp.SelectElements("itemref") {
			if item, ok := man.byID[ref.SelectAttrValue("idref", "")]; ok {
				spine = append(spine, item.file)
			}
		}
	}

	switch {
	case man.nav != "":
		err = b.loadNav(man.nav)
	case ncxID != "" && man.byID[ncxID].file != "":
		err = b.loadNCX(man.byID[ncxID].file)
	default:
		if item, ok := man.byType("application/x-dtbncx+xml"); ok {
			err = b.loadNCX(item.file)
		}
	}
	if err != nil {
		return err
	}

	if len(b.entries) == 0 {
		// No usable navigation: list the reading order instead.
		for _, file := range spine {
			b.entries = append(b.entries, entry{
				title: strings.TrimSuffix(path.Base(file), path.Ext(file)),
				href:  relativeTo(base, file),
				file:  file,
			})
		}
	}
	return nil
}

type manifestItem struct {
	id         string
	file       string
	mediaType  string
	properties string
}

type manifest struct {
	items []manifestItem
	byID  map[string]manifestItem
	nav   string
}

func readManifest(pkg *etree.Element, base string) manifest {
	m := manifest{byID: make(map[string]manifestItem)}
	man := pkg.SelectElement("manifest")
	if man == nil {
		return m
	}
	for _, it := range man.SelectElements("item") {
		item := manifestItem{
			id:         it.SelectAttrValue("id", ""),
			file:       resolve(base, it.SelectAttrValue("href", "")),
			mediaType:  it.SelectAttrValue("media-type", ""),
			properties: it.SelectAttrValue("properties", ""),
		}
		m.items = append(m.items, item)
		m.byID[item.id] = item
		if hasProperty(item.properties, "nav") {
			m.nav = item.file
		}
	}
	return m
}

func (m manifest) byType(mediaType string) (manifestItem, bool) {
	for _, it := range m.items {
		if it.mediaType == mediaType {
			return it, true
		}
	}
	return manifestItem{}, false
}

// cover finds the EPUB 3 cover-image item or the EPUB 2 cover meta
func (m manifest) cover(pkg *etree.Element) string {
	for _, it := range m.items {
		if hasProperty(it.properties, "cover-image") {
			return it.file
		}
	}
	if md := pkg.SelectElement("metadata"); md != nil {
		for _, meta := range md.SelectElements("meta") {
			if meta.SelectAttrValue("name", "") == "cover" {
				return m.byID[meta.SelectAttrValue("content", "")].file
			}
		}
	}
	return ""
}

func (b *Book) loadNCX(file string) error {
	doc, err := b.readXML(file)
	if err != nil {
		return err
	}
	navMap := doc.FindElement("//navMap")
	if navMap == nil {
		return nil
	}
	base := path.Dir(file)
	var walk func(parent *etree.Element, parentTitle string)
	walk = func(parent *etree.Element, parentTitle string) {
		for _, np := range parent.SelectElements("navPoint") {
			title := ""
			if t := np.FindElement("./navLabel/text"); t != nil {
				title = strings.TrimSpace(t.Text())
			}
			href := ""
			if c := np.SelectElement("content"); c != nil {
				href = c.SelectAttrValue("src", "")
			}
			b.entries = append(b.entries, entry{
				title:  title,
				href:   href,
				file:   resolve(base, href),
				parent: parentTitle,
			})
			walk(np, title)
		}
	}
	walk(navMap, "")
	return nil
}

func (b *Book) loadNav(file string) error {
	doc, err := b.readXML(file)
	if err != nil {
		return err
	}
	var toc *etree.Element
	for _, nav := range doc.FindElements("//nav") {
		if hasProperty(nav.SelectAttrValue("epub:type", ""), "toc") {
			toc = nav
			break
		}
	}
	if toc == nil {
		return nil
	}
	base := path.Dir(file)
	var walk func(list *etree.Element, parentTitle string)
	walk = func(list *etree.Element, parentTitle string) {
		for _, li := range list.SelectElements("li") {
			label := li.SelectElement("a")
			if label == nil {
				label = li.SelectElement("span")
			}
			title, href := "", ""
			if label != nil {
				title = collapseSpace(innerText(label))
				href = label.SelectAttrValue("href", "")
			}
			b.entries = append(b.entries, entry{
				title:  title,
				href:   href,
				file:   resolve(base, href),
				parent: parentTitle,
			})
			if sub := li.SelectElement("ol"); sub != nil {
				walk(sub, title)
			}
		}
	}
	if ol := toc.SelectElement("ol"); ol != nil {
		walk(ol, "")
	}
	return nil
}

// TOC returns the flattened contents with sequential ids
func (b *Book) TOC() []models.TocItem {
	items := make([]models.TocItem, len(b.entries))
	for i, e := range b.entries {
		items[i] = models.TocItem{
			ID:     strconv.Itoa(i),
			Title:  e.title,
			Index:  i,
			Href:   e.href,
			Parent: e.parent,
		}
	}
	return items
}

// Chapter returns the document the contents entry id points to
func (b *Book) Chapter(id string) (*models.Chapter, error) {
	i, err := strconv.Atoi(id)
	if err != nil || i < 0 || i >= len(b.entries) {
		return nil, ErrChapterNotFound
	}
	e := b.entries[i]
	data, err := b.read(e.file)
	if err != nil {
		return nil, err
	}
	return &models.Chapter{Title: e.title, Content: string(data)}, nil
}

// CoverImage returns the raw bytes of the cover image
func (b *Book) CoverImage() ([]byte, error) {
	if b.Cover == "" {
		return nil, errors.New("book has no cover")
	}
	return b.read(b.Cover)
}

func (b *Book) read(name string) ([]byte, error) {
	f, ok := b.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (b *Book) readXML(name string) (*etree.Document, error) {
	data, err := b.read(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return doc, nil
}

// resolve turns an href relative to dir into an archive path, dropping
// any fragment
func resolve(dir, href string) string {
	href, _, _ = strings.Cut(href, "#")
	if href == "" {
		return ""
	}
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}
	return strings.TrimPrefix(path.Join(dir, href), "./")
}

func relativeTo(dir, file string) string {
	if dir == "." || dir == "" {
		return file
	}
	return strings.TrimPrefix(file, dir+"/")
}

func hasProperty(list, name string) bool {
	for _, p := range strings.Fields(list) {
		if p == name {
			return true
		}
	}
	return false
}

func innerText(e *etree.Element) string {
	var sb strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(innerText(t))
		}
	}
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

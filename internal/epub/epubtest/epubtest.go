// Package epubtest writes small EPUB files for tests.
package epubtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fixzip "github.com/hidez8891/zip"
)

// Chapter is one content document
type Chapter struct {
	Title string
	Body  string
	// Children are listed under this chapter in the navigation
	Children []Chapter
}

// Book describes the EPUB to write
type Book struct {
	Title    string
	Author   string
	Chapters []Chapter
	// NCX writes EPUB 2 navigation instead of an EPUB 3 nav document
	NCX   bool
	Cover []byte
}

// Write stores b as dir/name and returns the full path
func Write(t testing.TB, dir, name string, b Book) string {
	t.Helper()
	full := filepath.Join(dir, name)
	f, err := os.Create(full)
	if err != nil {
		t.Fatalf("create %s: %v", full, err)
	}
	defer f.Close()

	w := fixzip.NewWriter(f)
	add := func(name string, method uint16, data string) {
		fw, err := w.CreateHeader(&fixzip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(data)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	add("mimetype", fixzip.Store, "application/epub+zip")
	add("META-INF/container.xml", fixzip.Deflate, `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`)

	flat := flatten(b.Chapters)
	var manifest, spine strings.Builder
	for i, ch := range flat {
		id := fmt.Sprintf("ch%d", i)
		fmt.Fprintf(&manifest, `<item id="%s" href="text/%s.xhtml" media-type="application/xhtml+xml"/>`, id, id)
		fmt.Fprintf(&spine, `<itemref idref="%s"/>`, id)
		add("OEBPS/text/"+id+".xhtml", fixzip.Deflate, fmt.Sprintf(
			`<html xmlns="http://www.w3.org/1999/xhtml"><head><title>%s</title></head><body><h1>%s</h1><p>%s</p></body></html>`,
			ch.Title, ch.Title, ch.Body))
	}
	if b.Cover != nil {
		manifest.WriteString(`<item id="cover" href="images/cover.png" media-type="image/png" properties="cover-image"/>`)
		add("OEBPS/images/cover.png", fixzip.Store, string(b.Cover))
	}

	spineAttr := ""
	if b.NCX {
		manifest.WriteString(`<item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>`)
		spineAttr = ` toc="ncx"`
		add("OEBPS/toc.ncx", fixzip.Deflate, ncx(b.Chapters))
	} else {
		manifest.WriteString(`<item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>`)
		add("OEBPS/nav.xhtml", fixzip.Deflate, nav(b.Chapters))
	}

	add("OEBPS/content.opf", fixzip.Deflate, fmt.Sprintf(`<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>%s</dc:title>
    <dc:creator>%s</dc:creator>
  </metadata>
  <manifest>%s</manifest>
  <spine%s>%s</spine>
</package>`, b.Title, b.Author, manifest.String(), spineAttr, spine.String()))

	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return full
}

func flatten(chapters []Chapter) []Chapter {
	var out []Chapter
	for _, ch := range chapters {
		out = append(out, ch)
		out = append(out, flatten(ch.Children)...)
	}
	return out
}

func ncx(chapters []Chapter) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1"><navMap>`)
	n := 0
	var walk func([]Chapter)
	walk = func(list []Chapter) {
		for _, ch := range list {
			fmt.Fprintf(&sb, `<navPoint id="np%d"><navLabel><text>%s</text></navLabel><content src="text/ch%d.xhtml"/>`, n, ch.Title, n)
			n++
			walk(ch.Children)
			sb.WriteString(`</navPoint>`)
		}
	}
	walk(chapters)
	sb.WriteString(`</navMap></ncx>`)
	return sb.String()
}

func nav(chapters []Chapter) string {
	var sb strings.Builder
	sb.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops"><body>`)
	sb.WriteString(`<nav epub:type="landmarks"><ol><li><a href="text/ch0.xhtml">Start</a></li></ol></nav>`)
	sb.WriteString(`<nav epub:type="toc"><ol>`)
	n := 0
	var walk func([]Chapter)
	walk = func(list []Chapter) {
		for _, ch := range list {
			fmt.Fprintf(&sb, `<li><a href="text/ch%d.xhtml#top"><span>%s</span></a>`, n, ch.Title)
			n++
			if len(ch.Children) > 0 {
				sb.WriteString(`<ol>`)
				walk(ch.Children)
				sb.WriteString(`</ol>`)
			}
			sb.WriteString(`</li>`)
		}
	}
	walk(chapters)
	sb.WriteString(`</ol></nav></body></html>`)
	return sb.String()
}

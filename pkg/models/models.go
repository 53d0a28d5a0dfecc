package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Placeholder values used when the catalog omits fields
const (
	UntitledBook  = "Untitled"
	UnknownAuthor = "Unknown"
	UnknownBookID = "unknown"
)

// SampleBook is served in place of the catalog when no backend is available
var SampleBook = Book{
	ID:     "sample2.epub",
	Title:  "Sample Book",
	Author: UnknownAuthor,
}

// Book represents an entry in the catalog
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Cover  string `json:"cover,omitempty"`
}

// TocItem represents one entry in a book's table of contents
type TocItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Index  int    `json:"index"`
	Href   string `json:"href,omitempty"`
	Parent string `json:"parent,omitempty"`
}

// Chapter is the loaded body of a chapter. Content is markup.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RawBook is a catalog entry as the backend sends it
type RawBook struct {
	ID       FlexString `json:"id,omitempty"`
	Filename string     `json:"filename,omitempty"`
	Name     string     `json:"name,omitempty"`
	Author   string     `json:"author,omitempty"`
	Cover    string     `json:"cover,omitempty"`
}

// Book maps the wire entry to a Book, filling placeholders
func (r RawBook) Book() Book {
	b := Book{
		ID:     string(r.ID),
		Title:  r.Name,
		Author: r.Author,
		Cover:  r.Cover,
	}
	if b.ID == "" {
		b.ID = r.Filename
	}
	if b.ID == "" {
		b.ID = UnknownBookID
	}
	if b.Title == "" {
		b.Title = UntitledBook
	}
	if b.Author == "" {
		b.Author = UnknownAuthor
	}
	return b
}

// RawTocItem is a TOC entry as the backend sends it. Index is optional.
type RawTocItem struct {
	ID     FlexString `json:"id"`
	Title  string     `json:"title"`
	Index  *int       `json:"index,omitempty"`
	Href   string     `json:"href,omitempty"`
	Parent *string    `json:"parent,omitempty"`
}

// TocItem maps the wire entry to a TocItem; pos is used when Index is absent
func (r RawTocItem) TocItem(pos int) TocItem {
	item := TocItem{
		ID:    string(r.ID),
		Title: r.Title,
		Index: pos,
		Href:  r.Href,
	}
	if r.Index != nil {
		item.Index = *r.Index
	}
	if r.Parent != nil {
		item.Parent = *r.Parent
	}
	if item.ID == "" {
		item.ID = strconv.Itoa(pos)
	}
	return item
}

// FlexString decodes from either a JSON string or a JSON number
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Message returns whichever error field the backend filled
func (e ErrorResponse) Message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawBook_FillsPlaceholders(t *testing.T) {
	var raw []RawBook
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "a.epub", "name": "A", "author": "Ann", "cover": "/c.png"},
		{"filename": "b.epub"},
		{}
	]`), &raw))

	assert.Equal(t, Book{ID: "a.epub", Title: "A", Author: "Ann", Cover: "/c.png"}, raw[0].Book())
	assert.Equal(t, Book{ID: "b.epub", Title: UntitledBook, Author: UnknownAuthor}, raw[1].Book())
	assert.Equal(t, Book{ID: UnknownBookID, Title: UntitledBook, Author: UnknownAuthor}, raw[2].Book())
}

func TestRawTocItem_AcceptsNumericIDs(t *testing.T) {
	var raw []RawTocItem
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 0, "title": "Intro", "href": "intro.xhtml", "parent": null},
		{"id": "ch-2", "title": "Two", "index": 7, "parent": "Intro"}
	]`), &raw))

	first := raw[0].TocItem(0)
	assert.Equal(t, "0", first.ID)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "intro.xhtml", first.Href)
	assert.Empty(t, first.Parent)

	second := raw[1].TocItem(1)
	assert.Equal(t, "ch-2", second.ID)
	assert.Equal(t, 7, second.Index)
	assert.Equal(t, "Intro", second.Parent)
}

func TestFlexString_RejectsObjects(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &f))
}

func TestErrorResponse_Message(t *testing.T) {
	assert.Equal(t, "bad", ErrorResponse{Error: "bad", Detail: "worse"}.Message())
	assert.Equal(t, "Book not found", ErrorResponse{Detail: "Book not found"}.Message())
}

package store

import "fmt"

// FetchKind names the request a failure belongs to
type FetchKind int

const (
	FetchBooks FetchKind = iota
	FetchToc
	FetchChapter
)

// String returns the name of the fetch kind
func (k FetchKind) String() string {
	switch k {
	case FetchBooks:
		return "books"
	case FetchToc:
		return "toc"
	case FetchChapter:
		return "chapter"
	default:
		return "unknown"
	}
}

// FetchFailure is the only error the store recognizes. It never changes
// state beyond clearing IsFetching.
type FetchFailure struct {
	Kind FetchKind
	Err  error
}

func (f *FetchFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("fetch %s failed", f.Kind)
	}
	return fmt.Sprintf("fetch %s: %v", f.Kind, f.Err)
}

func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// failureOf returns the failure carried by ev, if any
func failureOf(ev Event) *FetchFailure {
	switch ev := ev.(type) {
	case BooksFailed:
		return &FetchFailure{Kind: FetchBooks, Err: ev.Err}
	case TocFailed:
		return &FetchFailure{Kind: FetchToc, Err: ev.Err}
	case ChapterFailed:
		return &FetchFailure{Kind: FetchChapter, Err: ev.Err}
	}
	return nil
}

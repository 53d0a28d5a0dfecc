package store

import "github.com/justyntemme/novel-t/pkg/models"

// Direction of a chapter step
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Notice is a user-facing message that is not an error
type Notice string

const (
	NoticeLastChapter  Notice = "Already at the last chapter"
	NoticeFirstChapter Notice = "Already at the first chapter"
	NoticeNoContents   Notice = "No table of contents loaded"
)

// Step is the outcome of StepChapter: either a target or a notice
type Step struct {
	Index  int
	Item   models.TocItem
	Notice Notice
}

// OK reports whether the step has a target
func (s Step) OK() bool {
	return s.Notice == ""
}

// StepChapter resolves the chapter one step away from the current one.
// Stepping off either end of the TOC yields a notice and no target.
func StepChapter(s LibraryState, dir Direction) Step {
	if s.SelectedBook == nil || len(s.TOC) == 0 {
		return Step{Index: s.CurrentChapterIdx, Notice: NoticeNoContents}
	}
	next := s.CurrentChapterIdx + 1
	if dir == Backward {
		next = s.CurrentChapterIdx - 1
	}
	switch {
	case next >= len(s.TOC):
		return Step{Index: s.CurrentChapterIdx, Notice: NoticeLastChapter}
	case next < 0:
		return Step{Index: s.CurrentChapterIdx, Notice: NoticeFirstChapter}
	}
	return Step{Index: next, Item: s.TOC[next]}
}

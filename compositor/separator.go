package compositor

import (
	"sort"

	"github.com/paulrobello/termcellrender/cellrender"
)

// separatorMergeThreshold is how close (in screen rows) two mapped
// separator marks must be to coalesce into one. Not a correctness
// requirement per spec.md §4.8 ("a small 'merge threshold'"); kept as
// an adjustable tuning constant.
const separatorMergeThreshold = 2

// ScreenMark is a SeparatorMark after mapping from absolute scrollback
// line to the current screen's row coordinates.
type ScreenMark struct {
	Row   int
	Color cellrender.RGBA
}

// mapSeparatorMarksToScreen maps a pane's absolute-line separator marks
// into the currently visible screen-row window
// [scrollbackLen−scrollOffset, scrollbackLen−scrollOffset+visibleLines),
// dropping marks outside it, then merges marks within
// separatorMergeThreshold screen rows of each other — the merged mark
// keeps the earliest screen row and the latest non-zero color.
func mapSeparatorMarksToScreen(marks []cellrender.SeparatorMark, scrollbackLen, scrollOffset, visibleLines int) []ScreenMark {
	windowStart := scrollbackLen - scrollOffset
	windowEnd := windowStart + visibleLines

	visible := make([]ScreenMark, 0, len(marks))
	for _, m := range marks {
		if m.Line >= windowStart && m.Line < windowEnd {
			visible = append(visible, ScreenMark{Row: m.Line - windowStart, Color: m.Color})
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Row < visible[j].Row })
	return mergeScreenMarks(visible)
}

func mergeScreenMarks(marks []ScreenMark) []ScreenMark {
	if len(marks) == 0 {
		return marks
	}
	out := make([]ScreenMark, 0, len(marks))
	cur := marks[0]
	for _, m := range marks[1:] {
		if m.Row-cur.Row <= separatorMergeThreshold {
			if m.Color != (cellrender.RGBA{}) {
				cur.Color = m.Color
			}
			continue
		}
		out = append(out, cur)
		cur = m
	}
	out = append(out, cur)
	return out
}

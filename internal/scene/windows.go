package scene

// SlideWindow is a bounded time range assigned to one rendered slide.
// Windows produced by PartitionWindows are contiguous and non-overlapping.
type SlideWindow struct {
	Start float64
	End   float64
	Index int
}

// Duration returns the window length in seconds.
func (w SlideWindow) Duration() float64 {
	return w.End - w.Start
}

// PartitionWindows converts an ordered change list into contiguous windows.
// The first window starts at zero, each window ends at the next change, and
// the final window extends timeLimit past the last change. Any window longer
// than timeLimit is split into sub-windows of at most timeLimit seconds.
// The union of the returned windows covers [0, last.Timestamp+timeLimit]
// with no gaps and no overlaps.
func PartitionWindows(changes []SceneChange, timeLimit float64) []SlideWindow {
	if len(changes) == 0 {
		return nil
	}

	var windows []SlideWindow

	for i := range changes {
		var start, end float64
		if i == 0 {
			start = 0
		} else {
			start = changes[i].Timestamp
		}
		if i < len(changes)-1 {
			end = changes[i+1].Timestamp
		} else {
			end = changes[i].Timestamp + timeLimit
		}

		// Split oversized windows into sub-windows capped at timeLimit.
		for current := start; current < end; {
			subEnd := current + timeLimit
			if subEnd > end {
				subEnd = end
			}
			windows = append(windows, SlideWindow{
				Start: current,
				End:   subEnd,
				Index: len(windows),
			})
			current = subEnd
		}
	}

	return windows
}

// FilterWindowsWithContent keeps only windows for which hasContent reports
// true. A window with no overlapping transcript is skipped, not an error.
// Surviving windows are reindexed.
func FilterWindowsWithContent(windows []SlideWindow, hasContent func(SlideWindow) bool) []SlideWindow {
	var kept []SlideWindow
	for _, w := range windows {
		if hasContent(w) {
			w.Index = len(kept)
			kept = append(kept, w)
		}
	}
	return kept
}

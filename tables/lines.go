package tables

import (
	"sort"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// MergeLines cleans rule lines before use. Lines of one orientation whose
// positions lie within SnapTolerance are snapped to their mean position,
// collinear pieces separated by at most JoinTolerance are joined, and lines
// shorter than EdgeMinLength are dropped. The input is not modified.
func MergeLines(lines []*model.Line, s Settings) []*model.Line {
	h, v := nest.New(lines...).Split(func(l *model.Line) bool {
		return l.Orientation() == model.Horizontal
	})

	out := append(mergeAxis(h, model.Horizontal, s), mergeAxis(v, model.Vertical, s)...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y0 < out[j].Y0 })
	return out
}

func mergeAxis(lines *nest.Nest[*model.Line], o model.Orientation, s Settings) []*model.Line {
	pos, start, end := nest.MidY, nest.X0, nest.X1
	if o == model.Vertical {
		pos, start, end = nest.MidX, nest.Y0, nest.Y1
	}

	var out []*model.Line
	for _, group := range nest.Cluster(lines, pos, s.SnapTolerance, true).Items() {
		at := nest.Mean.Of(group.Values(pos))

		var lo, hi float64
		open := false
		flush := func() {
			if open && hi-lo >= s.EdgeMinLength {
				out = append(out, model.NewLine(lineAt(o, at, lo, hi)))
			}
		}
		for _, l := range group.SortBy(start, false).Items() {
			b := l.Bounds()
			if open && start(b) <= hi+s.JoinTolerance {
				hi = max(hi, end(b))
				continue
			}
			flush()
			lo, hi, open = start(b), end(b), true
		}
		flush()
	}
	return out
}

func lineAt(o model.Orientation, at, lo, hi float64) model.Box {
	if o == model.Vertical {
		return model.Box{X0: at, X1: at, Y0: lo, Y1: hi}
	}
	return model.Box{X0: lo, X1: hi, Y0: at, Y1: at}
}

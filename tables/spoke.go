package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// Spoke binds a label path to the data words aligned with it: a column
// below a header label (vertical) or a row beside a row label (horizontal).
type Spoke struct {
	Orientation model.Orientation
	Labels      []*model.Word // outermost label first
	Data        *nest.Nest[*model.Word]
	Value       float64 // data midpoint across the spoke's axis
	box         model.Box
}

// newSpoke orders the labels and data for the orientation and computes the
// box as the union of labels and data.
func newSpoke(o model.Orientation, labels []*model.Word, data *nest.Nest[*model.Word]) *Spoke {
	lbls := append([]*model.Word(nil), labels...)
	var ordered *nest.Nest[*model.Word]
	if o == model.Vertical {
		sort.SliceStable(lbls, func(i, j int) bool { return lbls[i].Y0 > lbls[j].Y0 })
		ordered = data.SortBy(nest.Y1, true)
	} else {
		sort.SliceStable(lbls, func(i, j int) bool { return lbls[i].X0 < lbls[j].X0 })
		ordered = data.SortBy(nest.X0, false)
	}

	s := &Spoke{Orientation: o, Labels: lbls, Data: ordered}
	dataBox, hasData := ordered.Box()
	box, ok := dataBox, hasData
	for _, l := range lbls {
		if !ok {
			box, ok = l.Box, true
			continue
		}
		box = box.Union(l.Box)
	}
	s.box = box

	// without data the position falls back to the labels
	if hasData {
		box = dataBox
	}
	if o == model.Vertical {
		s.Value = box.MidX()
	} else {
		s.Value = box.MidY()
	}
	return s
}

// Bounds returns the union of labels and data
func (s *Spoke) Bounds() model.Box {
	return s.box
}

// Translate moves the spoke's box and position. Its words belong to the
// page and move with it.
func (s *Spoke) Translate(dx, dy float64) {
	s.box = s.box.Shift(dx, dy)
	if s.Orientation == model.Vertical {
		s.Value += dx
	} else {
		s.Value += dy
	}
}

// Title joins the label path with ", "
func (s *Spoke) Title() string {
	return strings.Join(s.Path(), ", ")
}

// Path returns the label texts, outermost first
func (s *Spoke) Path() []string {
	out := make([]string, 0, len(s.Labels))
	for _, l := range s.Labels {
		if t := strings.TrimSpace(l.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Cells returns the data words in reading order: top to bottom for a
// vertical spoke, left to right for a horizontal one.
func (s *Spoke) Cells() []*model.Word {
	return s.Data.Items()
}

func (s *Spoke) String() string {
	return fmt.Sprintf("%s: %s (%s)", s.Title(), formatCoord(s.Value), s.Orientation)
}

// Spokes is the ordered result of table reconstruction: vertical spokes
// left to right followed by horizontal spokes top to bottom.
type Spokes struct {
	*nest.Nest[*Spoke]
}

// NewSpokes orders the given spokes
func NewSpokes(spokes ...*Spoke) *Spokes {
	var v, h []*Spoke
	for _, s := range spokes {
		if s.Orientation == model.Vertical {
			v = append(v, s)
		} else {
			h = append(h, s)
		}
	}
	sort.SliceStable(v, func(i, j int) bool { return v[i].Value < v[j].Value })
	sort.SliceStable(h, func(i, j int) bool { return h[i].Value > h[j].Value })
	return &Spokes{Nest: nest.New(append(v, h...)...)}
}

// Vertical returns the column spokes, left to right
func (s *Spokes) Vertical() []*Spoke {
	return s.Filter(func(sp *Spoke) bool { return sp.Orientation == model.Vertical }).Items()
}

// Horizontal returns the row spokes, top to bottom
func (s *Spokes) Horizontal() []*Spoke {
	return s.Filter(func(sp *Spoke) bool { return sp.Orientation == model.Horizontal }).Items()
}

// Matrix lays the spokes out as a grid. The first row holds the column
// titles and the first column the row titles; a cell holds the words shared
// by its row and column spoke. Without row spokes, rows follow the order
// of each column's data.
func (s *Spokes) Matrix() *model.Matrix {
	cols := s.Vertical()
	rows := s.Horizontal()

	if len(rows) == 0 {
		return columnMatrix(cols)
	}

	m := model.NewMatrix(len(rows)+1, len(cols)+1)
	for j, c := range cols {
		m.Rows[0][j+1] = model.Cell{Text: c.Title(), Box: c.Bounds(), IsHeader: true}
	}
	for i, r := range rows {
		m.Rows[i+1][0] = model.Cell{Text: r.Title(), Box: r.Bounds(), IsHeader: true}
		for j, c := range cols {
			shared := r.Data.Filter(c.Data.Contains)
			if shared.Empty() {
				continue
			}
			m.Rows[i+1][j+1] = model.Cell{Text: joinWords(shared), Box: shared.Bounds()}
		}
	}
	return m
}

func columnMatrix(cols []*Spoke) *model.Matrix {
	depth := 0
	for _, c := range cols {
		if c.Data.Len() > depth {
			depth = c.Data.Len()
		}
	}

	m := model.NewMatrix(depth+1, len(cols))
	for j, c := range cols {
		m.Rows[0][j] = model.Cell{Text: c.Title(), Box: c.Bounds(), IsHeader: true}
		for i, w := range c.Cells() {
			m.Rows[i+1][j] = model.Cell{Text: w.Text, Box: w.Box}
		}
	}
	return m
}

func joinWords(n *nest.Nest[*model.Word]) string {
	var parts []string
	for _, w := range n.SortBy(nest.X0, false).Items() {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

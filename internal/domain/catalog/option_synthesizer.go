package catalog

import "slices"

// Option is one selectable value within an axis
type Option struct {
	ID   int64  `json:"option_id"`
	Name string `json:"option_name"`
}

// OptionGroup lists the distinct options of one variation axis
type OptionGroup struct {
	AxisID   int64    `json:"axis_id"`
	AxisName string   `json:"axis_name"`
	Options  []Option `json:"options"`
}

// axisGroup accumulates options for one axis, keeping first-seen order
type axisGroup struct {
	name    string
	options []Option
	seen    map[int64]struct{}
}

func (g *axisGroup) add(opt Option) {
	if _, ok := g.seen[opt.ID]; ok {
		return
	}
	g.seen[opt.ID] = struct{}{}
	g.options = append(g.options, opt)
}

// axisIndex is an insertion-tracking map of axis id to group
type axisIndex struct {
	groups map[int64]*axisGroup
	ids    []int64
}

func newAxisIndex() *axisIndex {
	return &axisIndex{groups: make(map[int64]*axisGroup)}
}

func (x *axisIndex) group(slot VariationSlot) *axisGroup {
	if g, ok := x.groups[slot.AxisID]; ok {
		return g
	}
	g := &axisGroup{
		name: slot.DisplayAxisName(),
		seen: make(map[int64]struct{}),
	}
	x.groups[slot.AxisID] = g
	x.ids = append(x.ids, slot.AxisID)
	return g
}

// sorted emits the groups ordered by ascending axis id
func (x *axisIndex) sorted() []OptionGroup {
	ids := slices.Clone(x.ids)
	slices.Sort(ids)

	out := make([]OptionGroup, 0, len(ids))
	for _, id := range ids {
		g := x.groups[id]
		out = append(out, OptionGroup{
			AxisID:   id,
			AxisName: g.name,
			Options:  slices.Clone(g.options),
		})
	}
	return out
}

// SynthesizeOptions builds the per-axis option lists for a product's
// combinations. Groups come out by ascending axis id; options keep the order in
// which they were first seen and are unique by option id within their axis.
// The first name seen for an axis or an option wins.
//
// Slots without an axis id or with a blank option name are skipped. An empty
// input yields an empty, non-nil slice.
func SynthesizeOptions(combinations []Combination) []OptionGroup {
	index := newAxisIndex()
	for _, combo := range combinations {
		for _, slot := range combo.Slots {
			if !slot.IsPopulated() {
				continue
			}
			index.group(slot).add(Option{
				ID:   slot.OptionID,
				Name: slot.DisplayOptionName(),
			})
		}
	}
	return index.sorted()
}

// OptionCount returns the total number of distinct options across groups
func OptionCount(groups []OptionGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Options)
	}
	return n
}

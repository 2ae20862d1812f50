// Package layout holds the fixed table of scene layouts and the lookups used to
// pick one for a submitted scene.
package layout

import (
	"fmt"

	"github.com/Vasu1712/scenecast/internal/models"
)

// DefaultID is the layout used when nothing else matches.
const DefaultID = "2v3"

// Table is an ordered, read-only set of layouts.
type Table struct {
	layouts  []models.Layout
	byID     map[string]models.Layout
	maxLeft  int
	maxRight int
}

func entry(left, right int) models.Layout {
	return models.Layout{
		ID:    fmt.Sprintf("%dv%d", left, right),
		Label: fmt.Sprintf("%d vs %d", left, right),
		Left:  left,
		Right: right,
	}
}

// Default returns the standard eleven-entry table.
func Default() *Table {
	return NewTable([]models.Layout{
		entry(1, 0),
		entry(0, 1),
		entry(1, 1),
		entry(2, 1),
		entry(1, 2),
		entry(2, 2),
		entry(2, 3),
		entry(1, 3),
		entry(3, 1),
		entry(3, 2),
		entry(3, 3),
	})
}

// NewTable indexes layouts, keeping their order. The first entry with a given id wins.
func NewTable(layouts []models.Layout) *Table {
	t := &Table{
		layouts: append([]models.Layout{}, layouts...),
		byID:    make(map[string]models.Layout, len(layouts)),
	}
	for _, l := range layouts {
		if _, dup := t.byID[l.ID]; !dup {
			t.byID[l.ID] = l
		}
		t.maxLeft = max(t.maxLeft, l.Left)
		t.maxRight = max(t.maxRight, l.Right)
	}
	return t
}

// All returns the layouts in table order.
func (t *Table) All() []models.Layout {
	return append([]models.Layout{}, t.layouts...)
}

// MaxArity is the largest left and right slot count across the table.
func (t *Table) MaxArity() (left, right int) {
	return t.maxLeft, t.maxRight
}

// ByID looks up a layout by its id.
func (t *Table) ByID(id string) (models.Layout, bool) {
	l, ok := t.byID[id]
	return l, ok
}

// ByArity finds the first layout whose slot counts equal left and right after
// clamping each to the table maximum.
func (t *Table) ByArity(left, right int) (models.Layout, bool) {
	left = min(max(left, 0), t.maxLeft)
	right = min(max(right, 0), t.maxRight)
	for _, l := range t.layouts {
		if l.Left == left && l.Right == right {
			return l, true
		}
	}
	return models.Layout{}, false
}

// Fallback returns the designated default layout, else the first table entry.
func (t *Table) Fallback() (models.Layout, bool) {
	if l, ok := t.byID[DefaultID]; ok {
		return l, true
	}
	if len(t.layouts) > 0 {
		return t.layouts[0], true
	}
	return models.Layout{}, false
}

// Lookup is one step of a resolution chain.
type Lookup func() (models.Layout, bool)

// Resolve picks the layout for a scene: the named layout, else the one matching
// the submitted slot counts, else the fallback. The boolean is false only for
// an empty table.
func (t *Table) Resolve(id string, left, right int) (models.Layout, bool) {
	return First(
		func() (models.Layout, bool) { return t.ByID(id) },
		func() (models.Layout, bool) { return t.ByArity(left, right) },
		t.Fallback,
	)
}

// First returns the result of the first lookup that succeeds.
func First(lookups ...Lookup) (models.Layout, bool) {
	for _, lookup := range lookups {
		if l, ok := lookup(); ok {
			return l, true
		}
	}
	return models.Layout{}, false
}

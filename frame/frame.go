package frame

import (
	"reflect"
)

// Builder assembles a Frame. Every slice handed to a Builder method is
// copied, so callers may keep mutating their working state afterwards.
// A Builder is single-use: call Build once.
type Builder struct {
	f Frame
}

// New starts a frame at index with the given highlight line and narrative.
func New(index int, line, narrative string) *Builder {
	return &Builder{f: Frame{Index: index, Line: line, Narrative: narrative}}
}

// Var appends a scalar variable. Variables keep insertion order.
func (b *Builder) Var(name string, value any) *Builder {
	b.f.Variables = append(b.f.Variables, Variable{Name: name, Value: value})
	return b
}

// Array appends an array container. flags, if non-nil, is asked for the
// flags of every index; nil or empty results leave the cell unflagged.
func (b *Builder) Array(name string, values []int, flags func(i int) []Flag) *Builder {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i].Value = v
		if flags == nil {
			continue
		}
		if fl := flags(i); len(fl) > 0 {
			cells[i].Flags = append([]Flag(nil), fl...)
		}
	}
	b.f.Containers = append(b.f.Containers, Container{Name: name, Kind: KindArray, Cells: cells})
	return b
}

// Queue appends a queue container, front first.
func (b *Builder) Queue(name string, items []string) *Builder {
	return b.items(name, KindQueue, items)
}

// Stack appends a stack container, bottom first.
func (b *Builder) Stack(name string, items []string) *Builder {
	return b.items(name, KindStack, items)
}

// List appends an ordered list container.
func (b *Builder) List(name string, items []string) *Builder {
	return b.items(name, KindList, items)
}

func (b *Builder) items(name string, kind Kind, items []string) *Builder {
	b.f.Containers = append(b.f.Containers, Container{
		Name:  name,
		Kind:  kind,
		Items: append(make([]string, 0, len(items)), items...),
	})
	return b
}

// Map appends a map container with entries in the given order.
func (b *Builder) Map(name string, entries []Entry) *Builder {
	b.f.Containers = append(b.f.Containers, Container{
		Name:    name,
		Kind:    KindMap,
		Entries: append(make([]Entry, 0, len(entries)), entries...),
	})
	return b
}

// Grid appends a grid container; rows and their flags are deep-copied.
func (b *Builder) Grid(name string, rows [][]GridCell) *Builder {
	b.f.Containers = append(b.f.Containers, Container{Name: name, Kind: KindGrid, Grid: copyGrid(rows)})
	return b
}

// Container appends a prepared container, deep-copying it.
func (b *Builder) Container(c Container) *Builder {
	b.f.Containers = append(b.f.Containers, c.clone())
	return b
}

// Final marks the frame as the terminal frame of its sequence.
func (b *Builder) Final() *Builder {
	b.f.Final = true
	return b
}

// Build returns the assembled frame.
func (b *Builder) Build() Frame {
	return b.f
}

// Var returns the value of the named variable.
func (f Frame) Var(name string) (any, bool) {
	for _, v := range f.Variables {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Container returns the named container.
func (f Frame) Container(name string) (Container, bool) {
	for _, c := range f.Containers {
		if c.Name == name {
			return c, true
		}
	}
	return Container{}, false
}

// SameState reports whether f and o hold identical variables and containers.
// Index, narrative and highlight line are ignored.
func (f Frame) SameState(o Frame) bool {
	return reflect.DeepEqual(f.Variables, o.Variables) &&
		reflect.DeepEqual(f.Containers, o.Containers)
}

// Equal reports whether f and o are identical in every field.
func (f Frame) Equal(o Frame) bool {
	return reflect.DeepEqual(f, o)
}

// Clone returns a deep copy of f. Nil and empty slices stay as they were,
// so the copy is Equal to f.
func (f Frame) Clone() Frame {
	out := f
	out.Variables = copySlice(f.Variables)
	if f.Containers != nil {
		out.Containers = make([]Container, len(f.Containers))
		for i, c := range f.Containers {
			out.Containers[i] = c.clone()
		}
	}
	return out
}

func (c Container) clone() Container {
	out := c
	if c.Cells != nil {
		out.Cells = make([]Cell, len(c.Cells))
		for i, cell := range c.Cells {
			out.Cells[i] = Cell{Value: cell.Value, Flags: copySlice(cell.Flags)}
		}
	}
	out.Items = copySlice(c.Items)
	out.Entries = copySlice(c.Entries)
	out.Grid = copyGrid(c.Grid)
	return out
}

// copySlice copies s, keeping a nil slice nil and an empty one empty.
func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func copyGrid(rows [][]GridCell) [][]GridCell {
	if rows == nil {
		return nil
	}
	out := make([][]GridCell, len(rows))
	for y, row := range rows {
		out[y] = make([]GridCell, len(row))
		for x, cell := range row {
			out[y][x] = GridCell{Land: cell.Land, Component: cell.Component, Flags: copySlice(cell.Flags)}
		}
	}
	return out
}

package cpu

import (
	"iter"
	"maps"
	"slices"
)

// LABEL_UNRESOLVED is the index of a label that is referenced but not yet defined.
const LABEL_UNRESOLVED = -1

// Store is a named storage location.
type Store struct {
	Name  string
	Value int32
}

// Storage is the bank of named storage locations, in order of first reference.
type Storage struct {
	Stores []Store

	index map[string]int
}

// Resolve returns the slot of the named store, creating a zero valued
// store if the name has not been seen before.
func (st *Storage) Resolve(name string) int {
	if st.index == nil {
		st.index = make(map[string]int, 16)
	}

	slot, ok := st.index[name]
	if !ok {
		slot = len(st.Stores)
		st.Stores = append(st.Stores, Store{Name: name})
		st.index[name] = slot
	}

	return slot
}

// All returns an iterator over the name and value of every store.
func (st *Storage) All() iter.Seq2[string, int32] {
	return func(yield func(string, int32) bool) {
		for _, store := range st.Stores {
			if !yield(store.Name, store.Value) {
				return
			}
		}
	}
}

// Label is a jump label.
type Label struct {
	Name   string
	LineNo int   // Source line of the definition, 0 if not defined.
	Index  int   // Instruction index, LABEL_UNRESOLVED if not defined.
	Uses   []int // Positions in the instruction list awaiting the index.
}

// Labels is the jump label table.
type Labels struct {
	Label map[string]*Label
}

func (lt *Labels) get(name string) (label *Label) {
	if lt.Label == nil {
		lt.Label = make(map[string]*Label, 16)
	}

	label, ok := lt.Label[name]
	if !ok {
		label = &Label{Name: name, Index: LABEL_UNRESOLVED}
		lt.Label[name] = label
	}

	return
}

// Define sets the instruction index of a label. A label that is already
// defined keeps its first definition, and ErrLabelDuplicate is returned.
func (lt *Labels) Define(name string, index int, lineno int) (err error) {
	label := lt.get(name)
	if label.Index != LABEL_UNRESOLVED {
		err = ErrLabelDuplicate{FirstLineNo: label.LineNo}
		return
	}

	label.Index = index
	label.LineNo = lineno

	return
}

// Reference records a use of a label at a position in the instruction
// list. The label need not be defined yet.
func (lt *Labels) Reference(name string, site int) {
	label := lt.get(name)
	label.Uses = append(label.Uses, site)
}

// Link patches every use of every label with the label's instruction index.
// An ErrLabelMissing is returned for each label that was never defined,
// in name order.
func (lt *Labels) Link(code []Instruction) (errs []error) {
	for _, name := range slices.Sorted(maps.Keys(lt.Label)) {
		label := lt.Label[name]
		if label.Index == LABEL_UNRESOLVED {
			errs = append(errs, ErrLabelMissing(name))
			continue
		}
		for _, site := range label.Uses {
			code[site].Operand = int32(label.Index)
		}
	}

	return
}

package yeoda

import "sort"

// Table is a set of discovered records with one field acting as index.
type Table struct {
	Index Field
	Rows  []Record
}

// Group is a set of records sharing the same value of a field.
type Group struct {
	Key  string
	Rows []Record
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Filter returns a table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{Index: t.Index}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// FilterIndex keeps the rows whose index value satisfies keep.
func (t *Table) FilterIndex(keep func(string) bool) *Table {
	return t.Filter(func(r Record) bool { return keep(r.Field(t.Index)) })
}

// GroupBy partitions the rows by the value of f. Groups are sorted by key
// and rows keep their table order.
func (t *Table) GroupBy(f Field) []Group {
	pos := map[string]int{}
	var groups []Group
	for _, r := range t.Rows {
		k := r.Field(f)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

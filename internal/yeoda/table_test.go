package yeoda

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_GroupBy(t *testing.T) {
	tbl := &Table{Index: ExtraField, Rows: []Record{
		{Path: "a", ExtraField: "D080"},
		{Path: "b", ExtraField: "A015"},
		{Path: "c", ExtraField: "D080"},
	}}

	groups := tbl.GroupBy(ExtraField)
	require.Len(t, groups, 2)
	assert.Equal(t, "A015", groups[0].Key)
	assert.Len(t, groups[0].Rows, 1)
	assert.Equal(t, "D080", groups[1].Key)
	assert.Equal(t, "a", groups[1].Rows[0].Path)
	assert.Equal(t, "c", groups[1].Rows[1].Path)
}

func TestTable_FilterIndex(t *testing.T) {
	tbl := &Table{Index: ExtraField, Rows: []Record{
		{Path: "a", ExtraField: "D080"},
		{Path: "b", ExtraField: "A015"},
		{Path: "c", ExtraField: "D080A"},
	}}

	got := tbl.FilterIndex(func(k string) bool { return strings.Contains(k, "D080") })
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, ExtraField, got.Index)
	assert.Equal(t, 3, tbl.Len())

	none := tbl.FilterIndex(func(k string) bool { return strings.Contains(k, "X999") })
	assert.Equal(t, 0, none.Len())
	assert.Empty(t, none.GroupBy(ExtraField))
}

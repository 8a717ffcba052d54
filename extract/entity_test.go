package extract_test

import (
	"testing"

	"go.nownabe.dev/fleetloader/extract"
	"go.nownabe.dev/fleetloader/workbook"
)

func TestBuildEntityMap(t *testing.T) {
	t.Parallel()

	rows := [][]any{
		{nil, nil, nil, "Vessel", "Sheet"},
		{nil, nil, nil, "MV Example", "12"},
		{nil, nil, nil, "MV Alpha", " ABC "},
		{nil, nil, nil, "MV Seven", 7.0},
		{nil, nil, nil, nil, 8},
		{nil, nil, nil, "MV Later", 12},
	}
	for len(rows) < 150 {
		rows = append(rows, []any{})
	}
	rows = append(rows, []any{nil, nil, nil, "MV Too Far", 99})

	s, err := workbook.NewGrid().AddSheet("Overview", rows).Sheet("Overview")
	if err != nil {
		t.Fatal(err)
	}

	m := extract.BuildEntityMap(s, extract.DefaultEntityIndex())

	expect := map[extract.EntityKey]string{
		extract.IntKey(12):       "MV Later",
		extract.StringKey("ABC"): "MV Alpha",
		extract.IntKey(7):        "MV Seven",
	}

	if len(m) != len(expect) {
		t.Errorf("Expected %d entries but %d: %v", len(expect), len(m), m)
	}
	for k, v := range expect {
		if m[k] != v {
			t.Errorf("Expected %s -> %q but %q", k, v, m[k])
		}
	}

	if name, ok := m.Lookup("12"); !ok || name != "MV Later" {
		t.Errorf(`Expected sheet "12" to map to "MV Later" but %q`, name)
	}
	if _, ok := m.Lookup("99"); ok {
		t.Errorf("Expected rows past the index window to be ignored")
	}
}

func TestKeyOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  workbook.Cell
		expect extract.EntityKey
	}{
		{name: "int text", input: workbook.TextCell("12"), expect: extract.IntKey(12)},
		{name: "padded int text", input: workbook.TextCell(" 12 "), expect: extract.IntKey(12)},
		{name: "number", input: workbook.NumberCell(12), expect: extract.IntKey(12)},
		{name: "fraction", input: workbook.NumberCell(12.7), expect: extract.IntKey(12)},
		{name: "decimal text", input: workbook.TextCell("12.5"), expect: extract.StringKey("12.5")},
		{name: "text", input: workbook.TextCell(" Alpha "), expect: extract.StringKey("Alpha")},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if actual := extract.KeyOf(c.input); actual != c.expect {
				t.Errorf("Expected %v but %v", c.expect, actual)
			}
		})
	}
}

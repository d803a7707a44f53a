package dataset

import (
	"testing"

	"github.com/netgraph/netgraph/pkg/model"
)

func sampleDataset() *Dataset {
	d := New([]string{"id", "name", "score"})
	d.AppendRow([]model.Value{model.StringValue("1"), model.StringValue("Alice"), model.StringValue("90")})
	d.AppendRow([]model.Value{model.StringValue("2"), model.StringValue("Bob"), model.NullValue()})
	d.AppendRow([]model.Value{model.StringValue("3"), model.StringValue("Alice"), model.StringValue("75")})
	return d
}

func TestColumnAccess(t *testing.T) {
	d := sampleDataset()

	if d.NumRows() != 3 || d.NumColumns() != 3 {
		t.Fatalf("Shape = %dx%d, want 3x3", d.NumRows(), d.NumColumns())
	}
	if !d.HasColumn("score") || d.HasColumn("missing") {
		t.Error("HasColumn wrong")
	}
	if idx, ok := d.ColumnIndex("name"); !ok || idx != 1 {
		t.Errorf("ColumnIndex(name) = %d, %v", idx, ok)
	}

	names := d.Column("name")
	if len(names) != 3 || names[0].Text() != "Alice" {
		t.Errorf("Column(name) = %v", names)
	}
	if d.Column("missing") != nil {
		t.Error("Column(missing) should be nil")
	}
}

func TestCell(t *testing.T) {
	d := sampleDataset()

	if v, ok := d.Cell(1, "name"); !ok || v.Text() != "Bob" {
		t.Errorf("Cell(1, name) = %v, %v", v.Text(), ok)
	}
	if _, ok := d.Cell(5, "name"); ok {
		t.Error("Cell out of range should not be ok")
	}
	if _, ok := d.Cell(0, "missing"); ok {
		t.Error("Cell on missing column should not be ok")
	}
}

func TestAppendRow_PadsAndTruncates(t *testing.T) {
	d := New([]string{"a", "b", "c"})

	d.AppendRow([]model.Value{model.StringValue("x")})
	if v, _ := d.Cell(0, "c"); !v.IsNull() {
		t.Error("Short row should be padded with nulls")
	}

	d.AppendRow([]model.Value{
		model.StringValue("1"), model.StringValue("2"),
		model.StringValue("3"), model.StringValue("4"),
	})
	if len(d.Rows[1]) != 3 {
		t.Errorf("Long row kept %d cells, want 3", len(d.Rows[1]))
	}
}

func TestHead(t *testing.T) {
	d := sampleDataset()

	head := d.Head(2)
	if head.NumRows() != 2 {
		t.Fatalf("Head(2) rows = %d", head.NumRows())
	}

	// Head copies rows; mutating the copy must not touch the source
	head.Rows[0][1] = model.StringValue("changed")
	if v, _ := d.Cell(0, "name"); v.Text() != "Alice" {
		t.Error("Head mutation leaked into source dataset")
	}

	if d.Head(100).NumRows() != 3 {
		t.Error("Head beyond row count should return all rows")
	}
}

func TestRecords(t *testing.T) {
	d := sampleDataset()

	records := d.Records()
	if len(records) != 3 {
		t.Fatalf("Records = %d, want 3", len(records))
	}
	if records[1]["name"].Text() != "Bob" {
		t.Errorf("record 1 name = %q", records[1]["name"].Text())
	}
	if !records[1]["score"].IsNull() {
		t.Error("record 1 score should be null")
	}
}

func TestColumnStats(t *testing.T) {
	d := sampleDataset()

	if got := d.MissingCount("score"); got != 1 {
		t.Errorf("MissingCount(score) = %d, want 1", got)
	}
	if got := len(d.NonNull("score")); got != 2 {
		t.Errorf("NonNull(score) = %d values, want 2", got)
	}
	if got := d.UniqueCount("name"); got != 2 {
		t.Errorf("UniqueCount(name) = %d, want 2 (Alice repeats)", got)
	}
	if got := d.UniqueCount("score"); got != 2 {
		t.Errorf("UniqueCount(score) = %d, want 2 (null not counted)", got)
	}
}

func TestSetColumn(t *testing.T) {
	d := sampleDataset()

	d.SetColumn("score", []model.Value{
		model.IntValue(90), model.NullValue(), model.IntValue(75),
	})
	if v, _ := d.Cell(0, "score"); v.Type != model.TypeInt {
		t.Errorf("score[0] type = %v, want integer", v.Type)
	}

	// length mismatch is a no-op
	d.SetColumn("score", []model.Value{model.IntValue(1)})
	if v, _ := d.Cell(0, "score"); v.Type != model.TypeInt {
		t.Error("Mismatched SetColumn should not modify the column")
	}
}

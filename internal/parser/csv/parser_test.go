package csv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testCols = []Column{
	{Name: "id", Type: TypeInt, Nullable: false},
	{Name: "name", Type: TypeString, Nullable: false},
	{Name: "iata", Type: TypeString, Nullable: true},
	{Name: "lat", Type: TypeFloat, Nullable: true},
	{Name: "active", Type: TypeBool, Nullable: true},
}

// collect parses input and returns the records plus row errors.
func collect(t *testing.T, cols []Column, input string) ([]Record, []RowError) {
	t.Helper()

	p := NewParser(cols)
	var recs []Record
	var errs []RowError
	err := p.Parse(context.Background(), strings.NewReader(input),
		func(line int, rec Record) error {
			recs = append(recs, rec)
			return nil
		},
		func(re RowError) { errs = append(errs, re) },
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return recs, errs
}

func TestParse_quotedFieldsWithCommas(t *testing.T) {
	recs, errs := collect(t, testCols, `1,"Paris Charles de Gaulle, Terminal 1","CDG",49.0097,Y`+"\n")

	if len(errs) != 0 {
		t.Fatalf("row errors = %v, want none", errs)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	rec := recs[0]
	if got, want := rec["id"], int64(1); got != want {
		t.Fatalf("id = %v (%T), want %v", got, got, want)
	}
	if got, want := rec["name"], "Paris Charles de Gaulle, Terminal 1"; got != want {
		t.Fatalf("name = %q, want %q", got, want)
	}
	if got, want := rec["lat"], 49.0097; got != want {
		t.Fatalf("lat = %v, want %v", got, want)
	}
	if got, want := rec["active"], true; got != want {
		t.Fatalf("active = %v, want %v", got, want)
	}
}

func TestParse_nullSentinel(t *testing.T) {
	recs, errs := collect(t, testCols, `2,Somewhere,\N,\N,\N`+"\n")

	if len(errs) != 0 {
		t.Fatalf("row errors = %v, want none", errs)
	}
	rec := recs[0]
	for _, col := range []string{"iata", "lat", "active"} {
		v, ok := rec[col]
		if !ok {
			t.Fatalf("column %s missing from record", col)
		}
		if v != nil {
			t.Fatalf("%s = %v, want nil", col, v)
		}
	}
}

func TestParse_nullInRequiredColumnSkipsRow(t *testing.T) {
	recs, errs := collect(t, testCols, `\N,Somewhere,CDG,1.0,Y`+"\n")

	if len(recs) != 0 {
		t.Fatalf("records = %v, want none", recs)
	}
	if len(errs) != 1 {
		t.Fatalf("row errors = %v, want 1", errs)
	}
	if errs[0].Line != 1 {
		t.Fatalf("error line = %d, want 1", errs[0].Line)
	}
}

func TestParse_nonNumericIdentifierSkipsRow(t *testing.T) {
	recs, errs := collect(t, testCols, "abc,Somewhere,CDG,1.0,Y\n3,Elsewhere,ORY,2.0,N\n")

	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (bad row skipped)", len(recs))
	}
	if got, want := recs[0]["id"], int64(3); got != want {
		t.Fatalf("surviving id = %v, want %v", got, want)
	}
	if len(errs) != 1 {
		t.Fatalf("row errors = %v, want 1", errs)
	}
}

func TestParse_garbageInNullableColumnCoercesToNull(t *testing.T) {
	recs, errs := collect(t, testCols, "4,Somewhere,CDG,not-a-float,Y\n")

	if len(errs) != 0 {
		t.Fatalf("row errors = %v, want none (nullable column coerces to null)", errs)
	}
	if v := recs[0]["lat"]; v != nil {
		t.Fatalf("lat = %v, want nil", v)
	}
}

func TestParse_extraFieldsSkipRow(t *testing.T) {
	recs, errs := collect(t, testCols, "5,Somewhere,CDG,1.0,Y,surplus\n6,Somewhere,CDG,1.0,Y\n")

	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if len(errs) != 1 {
		t.Fatalf("row errors = %v, want 1", errs)
	}
}

func TestParse_shortRowPadsNullableTrailingColumns(t *testing.T) {
	recs, errs := collect(t, testCols, "5,OnlyTwoFields\n")

	if len(errs) != 0 {
		t.Fatalf("row errors = %v, want none (trailing columns are nullable)", errs)
	}
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	rec := recs[0]
	if got, want := rec["id"], int64(5); got != want {
		t.Fatalf("id = %v, want %v", got, want)
	}
	for _, col := range []string{"iata", "lat", "active"} {
		v, ok := rec[col]
		if !ok {
			t.Fatalf("column %s missing from record", col)
		}
		if v != nil {
			t.Fatalf("%s = %v, want nil padding", col, v)
		}
	}
}

func TestParse_shortRowMissingRequiredColumnSkips(t *testing.T) {
	cols := []Column{
		{Name: "id", Type: TypeInt},
		{Name: "name", Type: TypeString},
	}
	recs, errs := collect(t, cols, "5\n")

	if len(recs) != 0 {
		t.Fatalf("records = %v, want none (name is non-nullable)", recs)
	}
	if len(errs) != 1 {
		t.Fatalf("row errors = %v, want 1", errs)
	}
}

func TestParse_bomStripped(t *testing.T) {
	recs, errs := collect(t, testCols, "\xEF\xBB\xBF7,Somewhere,CDG,1.0,Y\n")

	if len(errs) != 0 {
		t.Fatalf("row errors = %v, want none", errs)
	}
	if got, want := recs[0]["id"], int64(7); got != want {
		t.Fatalf("id = %v, want %v (BOM should not reach the first cell)", got, want)
	}
}

func TestParse_lineNumbersSurviveMultiLineFields(t *testing.T) {
	input := "1,\"Two\nLines\",CDG,1.0,Y\n\\N,Bad,CDG,1.0,Y\n"

	p := NewParser(testCols)
	var gotLines []int
	var errs []RowError
	err := p.Parse(context.Background(), strings.NewReader(input),
		func(line int, rec Record) error {
			gotLines = append(gotLines, line)
			return nil
		},
		func(re RowError) { errs = append(errs, re) },
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(gotLines) != 1 || gotLines[0] != 1 {
		t.Fatalf("record lines = %v, want [1]", gotLines)
	}
	if len(errs) != 1 {
		t.Fatalf("row errors = %v, want 1", errs)
	}
	// The bad row starts on physical line 3: the first record spans two.
	if errs[0].Line != 3 {
		t.Fatalf("error line = %d, want 3", errs[0].Line)
	}
}

func TestParseFile_restartable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.dat")
	if err := os.WriteFile(path, []byte("8,Somewhere,CDG,1.0,Y\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewParser(testCols)
	for pass := 0; pass < 2; pass++ {
		var n int
		err := p.ParseFile(context.Background(), path, func(line int, rec Record) error {
			n++
			return nil
		}, nil)
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if n != 1 {
			t.Fatalf("pass %d: records = %d, want 1", pass, n)
		}
	}
}

func TestParseFile_missingFileIsFatal(t *testing.T) {
	p := NewParser(testCols)
	err := p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.dat"), func(int, Record) error { return nil }, nil)
	if err == nil {
		t.Fatal("ParseFile() = nil, want error for missing file")
	}
}

func TestParse_callbackErrorStopsIteration(t *testing.T) {
	p := NewParser(testCols)
	calls := 0
	err := p.Parse(context.Background(), strings.NewReader("1,A,\\N,\\N,\\N\n2,B,\\N,\\N,\\N\n"),
		func(line int, rec Record) error {
			calls++
			return context.Canceled
		}, nil)
	if err == nil {
		t.Fatal("parse() = nil, want callback error")
	}
	if calls != 1 {
		t.Fatalf("callback calls = %d, want 1", calls)
	}
}

package testutil

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestFormatLogRow_FieldCount(t *testing.T) {
	t.Parallel()

	row := FormatLogRow(LogRow{Micros: 1400000000000000, Northing: 5735000.5, Easting: 620000.25})
	fields := strings.Split(row, ",")
	if len(fields) != 15 {
		t.Fatalf("row has %d fields, want 15", len(fields))
	}
	if fields[0] != "1400000000000000" {
		t.Errorf("field 0 = %q", fields[0])
	}
	if fields[5] != "5735000.500000" || fields[6] != "620000.250000" {
		t.Errorf("northing/easting = %q/%q", fields[5], fields[6])
	}
	if got := len(strings.Split(LogHeader, ",")); got != 15 {
		t.Errorf("header has %d fields, want 15", got)
	}
}

func TestConstantVelocityRows(t *testing.T) {
	t.Parallel()

	rows := ConstantVelocityRows(LogRow{Micros: 1000, Northing: 10, Easting: 20}, 3, 0.5, 2, -1)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	last := rows[2]
	if last.Micros != 1000+1000000 || last.Easting != 22 || last.Northing != 9 {
		t.Errorf("unexpected last row: %+v", last)
	}
}

func TestWriteLogFile(t *testing.T) {
	t.Parallel()

	path := WriteLogFile(t, t.TempDir(), "ins.csv", LogRow{}, LogRow{Micros: 1})
	data, err := os.ReadFile(path)
	AssertNoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want header + 2 rows", len(lines))
	}
}

func TestAssertHelpers(t *testing.T) {
	t.Parallel()

	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))
}

// Package testutil provides shared test utilities and fixtures.
//
// The trajectory fixtures mirror the 15-column INS export consumed by the
// trajectory loader: field 0 is a microsecond timestamp, field 5 northing
// and field 6 easting.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LogHeader is the header line of an INS trajectory export.
const LogHeader = "timestamp,ins_status,latitude,longitude,altitude,northing,easting,down,utm_zone,velocity_north,velocity_east,velocity_down,roll,pitch,yaw"

// LogRow is one fixture row. Only the fields the loader reads are variable.
type LogRow struct {
	Micros   int64
	Northing float64
	Easting  float64
}

// FormatLogRow renders a row with all 15 fields.
func FormatLogRow(r LogRow) string {
	return fmt.Sprintf("%d,INS_SOLUTION_GOOD,51.7600,-1.2600,110.0,%.6f,%.6f,-110.0,30U,0.0,0.0,0.0,0.0,0.0,0.0",
		r.Micros, r.Northing, r.Easting)
}

// LogCSV renders a complete log file body including the header.
func LogCSV(rows ...LogRow) string {
	var b strings.Builder
	b.WriteString(LogHeader)
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(FormatLogRow(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// ConstantVelocityRows returns n rows starting at origin, spaced stepSeconds
// apart, moving at (vx, vy) m/s in easting/northing.
func ConstantVelocityRows(origin LogRow, n int, stepSeconds, vx, vy float64) []LogRow {
	rows := make([]LogRow, n)
	for i := range rows {
		dt := float64(i) * stepSeconds
		rows[i] = LogRow{
			Micros:   origin.Micros + int64(dt*1e6),
			Northing: origin.Northing + vy*dt,
			Easting:  origin.Easting + vx*dt,
		}
	}
	return rows
}

// WriteLogFile writes a fixture log into dir and returns its path.
func WriteLogFile(t testing.TB, dir, name string, rows ...LogRow) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(LogCSV(rows...)), 0644); err != nil {
		t.Fatalf("failed to write log fixture: %v", err)
	}
	return path
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

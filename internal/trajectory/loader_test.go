package trajectory

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/testutil"
)

func TestParse_NormalisesToFirstRow(t *testing.T) {
	t.Parallel()

	body := testutil.LogCSV(
		testutil.LogRow{Micros: 1400000000000000, Northing: 5735000.25, Easting: 620000.5},
		testutil.LogRow{Micros: 1400000000500000, Northing: 5735001.25, Easting: 620002.5},
		testutil.LogRow{Micros: 1400000002000000, Northing: 5734998.25, Easting: 620010.0},
	)

	log, err := Parse(strings.NewReader(body))
	require.NoError(t, err)

	want := []Sample{
		{Timestamp: 0, X: 0, Y: 0},
		{Timestamp: 0.5, X: 2, Y: 1},
		{Timestamp: 2.0, X: 9.5, Y: -2},
	}
	if diff := cmp.Diff(want, log.Samples(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 2.0, log.Duration(), 1e-9)
}

func TestParse_EmptyInputs(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"no bytes":    "",
		"header only": testutil.LogHeader + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			log, err := Parse(strings.NewReader(body))
			require.NoError(t, err)
			assert.True(t, log.Empty())
			assert.Equal(t, 0, log.Len())
		})
	}
}

func TestParse_WrongFieldCount(t *testing.T) {
	t.Parallel()

	good := testutil.FormatLogRow(testutil.LogRow{Micros: 10, Northing: 1, Easting: 2})
	tests := []struct {
		name   string
		row    string
		fields int
	}{
		{"fourteen fields", good[:strings.LastIndex(good, ",")], 14},
		{"sixteen fields", good + ",extra", 16},
		{"single field", "12345", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := testutil.LogHeader + "\n" + good + "\n" + tt.row + "\n"
			log, err := Parse(strings.NewReader(body))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.fields, fe.Fields)
			assert.Equal(t, 3, fe.Line)
			assert.True(t, log.Empty(), "partial rows must be discarded")
			assert.Contains(t, err.Error(), "wrong file format")
		})
	}
}

func TestParse_TrailingComma(t *testing.T) {
	t.Parallel()

	good := testutil.FormatLogRow(testutil.LogRow{Micros: 10, Northing: 1, Easting: 2})
	next := testutil.FormatLogRow(testutil.LogRow{Micros: 1000010, Northing: 4, Easting: 6})

	t.Run("fifteen fields accepted", func(t *testing.T) {
		body := testutil.LogHeader + "\n" + good + ",\n" + next + ",\n"
		log, err := Parse(strings.NewReader(body))
		require.NoError(t, err)
		require.Equal(t, 2, log.Len())
		if diff := cmp.Diff(Sample{Timestamp: 1, X: 4, Y: 3}, log.At(1), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("sample mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fourteen fields still rejected", func(t *testing.T) {
		short := good[:strings.LastIndex(good, ",")+1]
		body := testutil.LogHeader + "\n" + good + "\n" + short + "\n"
		_, err := Parse(strings.NewReader(body))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 14, fe.Fields)
	})
}

func TestParse_BlankLines(t *testing.T) {
	t.Parallel()

	good := testutil.FormatLogRow(testutil.LogRow{Micros: 10, Northing: 1, Easting: 2})
	next := testutil.FormatLogRow(testutil.LogRow{Micros: 20, Northing: 1, Easting: 3})

	t.Run("between rows", func(t *testing.T) {
		body := testutil.LogHeader + "\n" + good + "\n\n" + next + "\n"
		log, err := Parse(strings.NewReader(body))

		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 3, fe.Line)
		assert.Equal(t, 0, fe.Fields)
		assert.True(t, log.Empty())
	})

	t.Run("after header", func(t *testing.T) {
		body := testutil.LogHeader + "\n\n" + good + "\n"
		_, err := Parse(strings.NewReader(body))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 2, fe.Line)
	})

	t.Run("at end of file", func(t *testing.T) {
		body := testutil.LogHeader + "\n" + good + "\n" + next + "\n\n\n"
		log, err := Parse(strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, 2, log.Len())
	})
}

func TestParse_BadNumbers(t *testing.T) {
	t.Parallel()

	good := testutil.FormatLogRow(testutil.LogRow{Micros: 10, Northing: 1, Easting: 2})
	replaceField := func(field int, value string) string {
		parts := strings.Split(good, ",")
		parts[field] = value
		return strings.Join(parts, ",")
	}

	tests := []struct {
		name  string
		row   string
		field int
	}{
		{"timestamp", replaceField(0, "12.5e"), 0},
		{"northing", replaceField(5, "north"), 5},
		{"easting", replaceField(6, ""), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := testutil.LogHeader + "\n" + good + "\n" + tt.row + "\n"
			log, err := Parse(strings.NewReader(body))

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, 3, pe.Line)
			assert.ErrorIs(t, err, strconv.ErrSyntax)
			assert.True(t, log.Empty())

			var fe *FormatError
			assert.False(t, errors.As(err, &fe), "parse errors are distinct from format errors")
		})
	}
}

func TestParse_MalformedCSV(t *testing.T) {
	t.Parallel()

	body := testutil.LogHeader + "\n" + `1,"unterminated` + "\n"
	_, err := Parse(strings.NewReader(body))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.NotNil(t, fe.Unwrap())
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	rows := testutil.ConstantVelocityRows(testutil.LogRow{Micros: 5000000, Northing: 100, Easting: 200}, 4, 1.0, 2, 0)
	require.NoError(t, mfs.WriteFile("/data/ins.csv", []byte(testutil.LogCSV(rows...)), 0644))

	t.Run("loads", func(t *testing.T) {
		log, err := ReadFile(mfs, "/data/ins.csv")
		require.NoError(t, err)
		require.Equal(t, 4, log.Len())
		assert.InDelta(t, 6.0, log.At(3).X, 1e-9)
		assert.InDelta(t, 3.0, log.At(3).Timestamp, 1e-9)
	})

	t.Run("missing file is a format error", func(t *testing.T) {
		_, err := ReadFile(mfs, "/data/missing.csv")
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "/data/missing.csv", fe.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("errors carry the path", func(t *testing.T) {
		require.NoError(t, mfs.WriteFile("/data/bad.csv", []byte(testutil.LogHeader+"\n1,2,3\n"), 0644))
		_, err := ReadFile(mfs, "/data/bad.csv")
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "/data/bad.csv", fe.Path)
		assert.Contains(t, err.Error(), "/data/bad.csv:2")
	})
}

func TestReadFile_OSFileSystem(t *testing.T) {
	t.Parallel()

	path := testutil.WriteLogFile(t, t.TempDir(), "ins.csv",
		testutil.LogRow{Micros: 0, Northing: 1, Easting: 1},
		testutil.LogRow{Micros: 1000000, Northing: 1, Easting: 11},
	)
	log, err := ReadFile(fsutil.OSFileSystem{}, path)
	require.NoError(t, err)
	require.Equal(t, 2, log.Len())
	assert.InDelta(t, 10.0, log.At(1).X, 1e-9)
}

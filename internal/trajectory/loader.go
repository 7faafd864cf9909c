package trajectory

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/platoon/internal/fsutil"
	"github.com/banshee-data/platoon/internal/monitoring"
)

// Layout of an INS trajectory export row.
const (
	FieldCount     = 15
	fieldTimestamp = 0 // microseconds
	fieldNorthing  = 5 // metres, maps to Y
	fieldEasting   = 6 // metres, maps to X
)

// Parse reads an INS trajectory export. The first record is a header and is
// skipped. Every other record must have exactly FieldCount fields; a single
// trailing comma does not count as a field, and a blank line between rows is
// a record with no fields. Blank lines after the last row are ignored. Timestamps
// are converted to seconds and, like positions, offset by the first row so
// the log starts at t=0 at the origin.
//
// On any error the returned Log is empty: partially read rows are discarded.
func Parse(r io.Reader) (Log, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.TrimLeadingSpace = true

	var (
		samples        []Sample
		firstMicros    int64
		firstNorthing  float64
		firstEasting   float64
		headerConsumed bool
		prevLine       int
	)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Log{}, &FormatError{Err: err}
		}
		line, _ := cr.FieldPos(0)
		// csv skips empty lines; a gap in line numbers is one.
		if headerConsumed && line > prevLine+1 {
			return Log{}, &FormatError{Line: prevLine + 1, Fields: 0}
		}
		prevLine, _ = cr.FieldPos(len(record) - 1)
		if !headerConsumed {
			headerConsumed = true
			continue
		}
		fields := len(record)
		if fields > 0 && record[fields-1] == "" {
			fields--
		}
		if fields != FieldCount {
			return Log{}, &FormatError{Line: line, Fields: fields}
		}

		micros, err := strconv.ParseInt(strings.TrimSpace(record[fieldTimestamp]), 10, 64)
		if err != nil {
			return Log{}, &ParseError{Line: line, Field: fieldTimestamp, Value: record[fieldTimestamp], Err: err}
		}
		northing, err := parseFloatField(record, fieldNorthing, line)
		if err != nil {
			return Log{}, err
		}
		easting, err := parseFloatField(record, fieldEasting, line)
		if err != nil {
			return Log{}, err
		}

		if len(samples) == 0 {
			firstMicros, firstNorthing, firstEasting = micros, northing, easting
		}
		samples = append(samples, Sample{
			Timestamp: float64(micros-firstMicros) * 1e-6,
			X:         easting - firstEasting,
			Y:         northing - firstNorthing,
		})
	}
	return Log{samples: samples}, nil
}

func parseFloatField(record []string, field, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(record[field]), 64)
	if err != nil {
		return 0, &ParseError{Line: line, Field: field, Value: record[field], Err: err}
	}
	return v, nil
}

// ReadFile opens path on fsys and parses it with Parse. A file that cannot be
// opened is reported as a FormatError. Errors carry the path.
func ReadFile(fsys fsutil.FileSystem, path string) (Log, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Log{}, &FormatError{Path: path, Err: err}
	}
	defer f.Close()

	log, err := Parse(f)
	if err != nil {
		var fe *FormatError
		var pe *ParseError
		switch {
		case errors.As(err, &fe):
			fe.Path = path
		case errors.As(err, &pe):
			pe.Path = path
		}
		return Log{}, err
	}

	monitoring.Verbosef("trajectory: loaded %d samples (%.1fs) from %s", log.Len(), log.Duration(), path)
	return log, nil
}

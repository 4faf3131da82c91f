// Package dataset loads the launch records table into memory.
//
// The table is read once at startup and never mutated afterwards, so a
// *Dataset can be shared freely between request handlers.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lueurxax/launch-dashboard/internal/core/domain"
	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
)

// Column headers recognized in the dataset file.
const (
	ColumnFlightNumber     = "Flight Number"
	ColumnLaunchSite       = "Launch Site"
	ColumnPayloadMass      = "Payload Mass (kg)"
	ColumnClass            = "class"
	ColumnBoosterVersion   = "Booster Version"
	ColumnBoosterCategory  = "Booster Version Category"
	errFmtLine             = "%w: line %d: %s"
	errFmtMissingColumn    = "%w: missing column %q"
	firstDataLine          = 2
	payloadParseBitSize    = 64
	flightNumberParseBase  = 10
	flightNumberParseWidth = 32
	utf8BOM                = "\ufeff"
)

var requiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterVersion,
}

// Dataset is an immutable, ordered table of launch records together with
// the payload mass bounds observed across all records.
type Dataset struct {
	launches   []domain.Launch
	MinPayload float64
	MaxPayload float64
}

// LoadFile reads and parses the CSV dataset at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDatasetNotFound, path)
		}

		return nil, fmt.Errorf("open dataset: %w", err)
	}

	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return ds, nil
}

// Parse reads a CSV dataset with a header row from r.
// Columns are matched by name; unknown columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", apperrors.ErrMalformedDataset)
		}

		return nil, fmt.Errorf("%w: read header: %v", apperrors.ErrMalformedDataset, err)
	}

	idx, err := indexColumns(headers)
	if err != nil {
		return nil, err
	}

	var launches []domain.Launch

	for line := firstDataLine; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf(errFmtLine, apperrors.ErrMalformedDataset, line, err.Error())
		}

		launch, err := idx.parseRow(row)
		if err != nil {
			return nil, fmt.Errorf(errFmtLine, apperrors.ErrMalformedDataset, line, err.Error())
		}

		launches = append(launches, launch)
	}

	if len(launches) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMalformedDataset, apperrors.ErrDatasetEmpty)
	}

	return FromLaunches(launches), nil
}

// FromLaunches builds a Dataset from records already in memory.
// The slice is owned by the Dataset afterwards and must not be modified.
func FromLaunches(launches []domain.Launch) *Dataset {
	ds := &Dataset{launches: launches}

	for i, l := range launches {
		if i == 0 || l.PayloadMassKg < ds.MinPayload {
			ds.MinPayload = l.PayloadMassKg
		}

		if i == 0 || l.PayloadMassKg > ds.MaxPayload {
			ds.MaxPayload = l.PayloadMassKg
		}
	}

	return ds
}

// Launches returns the records in dataset order. Callers must not modify
// the returned slice.
func (d *Dataset) Launches() []domain.Launch {
	return d.launches
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.launches)
}

// columnIndex maps a recognized column to its position in the header, -1 if absent.
type columnIndex struct {
	flightNumber    int
	launchSite      int
	payloadMass     int
	class           int
	boosterVersion  int
	boosterCategory int
}

func indexColumns(headers []string) (columnIndex, error) {
	positions := make(map[string]int, len(headers))

	for i, h := range headers {
		key := normalizeHeader(h)
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := positions[normalizeHeader(col)]; !ok {
			return columnIndex{}, fmt.Errorf(errFmtMissingColumn, apperrors.ErrMalformedDataset, col)
		}
	}

	lookup := func(col string) int {
		if i, ok := positions[normalizeHeader(col)]; ok {
			return i
		}

		return -1
	}

	return columnIndex{
		flightNumber:    lookup(ColumnFlightNumber),
		launchSite:      lookup(ColumnLaunchSite),
		payloadMass:     lookup(ColumnPayloadMass),
		class:           lookup(ColumnClass),
		boosterVersion:  lookup(ColumnBoosterVersion),
		boosterCategory: lookup(ColumnBoosterCategory),
	}, nil
}

func (c columnIndex) parseRow(row []string) (domain.Launch, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(field(c.payloadMass), payloadParseBitSize)
	if err != nil {
		return domain.Launch{}, fmt.Errorf("payload mass %q is not a number", field(c.payloadMass))
	}

	if math.IsNaN(payload) || math.IsInf(payload, 0) {
		return domain.Launch{}, fmt.Errorf("payload mass %q is not a finite number", field(c.payloadMass))
	}

	if payload < 0 {
		return domain.Launch{}, fmt.Errorf("payload mass %v is negative", payload)
	}

	class, err := parseClass(field(c.class))
	if err != nil {
		return domain.Launch{}, err
	}

	launch := domain.Launch{
		LaunchSite:             field(c.launchSite),
		PayloadMassKg:          payload,
		Class:                  class,
		BoosterVersion:         field(c.boosterVersion),
		BoosterVersionCategory: field(c.boosterCategory),
	}

	if raw := field(c.flightNumber); raw != "" {
		n, err := strconv.ParseInt(raw, flightNumberParseBase, flightNumberParseWidth)
		if err != nil {
			return domain.Launch{}, fmt.Errorf("flight number %q is not an integer", raw)
		}

		launch.FlightNumber = int(n)
	}

	return launch, nil
}

// parseClass accepts "0" and "1", and their float spellings written by
// spreadsheet exports ("0.0", "1.0").
func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(raw, payloadParseBitSize)
	if err != nil {
		return 0, fmt.Errorf("class %q is not a number", raw)
	}

	switch v {
	case domain.ClassFailure:
		return domain.ClassFailure, nil
	case domain.ClassSuccess:
		return domain.ClassSuccess, nil
	default:
		return 0, fmt.Errorf("class %v is not 0 or 1", v)
	}
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, utf8BOM)))
}

// Package series loads univariate numeric series from delimited text.
package series

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sartorproj/goarima/timeseries"
)

// ErrNoData is returned when no numeric value could be read.
var ErrNoData = errors.New("series: no valid data found")

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Column    string // header name of the value column; empty selects the last column
	HasHeader bool
	Delimiter rune
}

// DefaultCSVOptions returns options for a comma-separated file with a header.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{HasHeader: true, Delimiter: ','}
}

// LoadFile reads a series from a CSV file. A path of "-" reads stdin.
func LoadFile(path string, opts CSVOptions) ([]float64, error) {
	if path == "-" {
		return LoadCSV(os.Stdin, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: open %s: %w", path, err)
	}
	defer f.Close()

	return LoadCSV(f, opts)
}

// LoadCSV reads one numeric column. Empty, NA, NaN and null cells are
// skipped, as are cells that do not parse as numbers or parse to a
// non-finite value.
func LoadCSV(r io.Reader, opts CSVOptions) ([]float64, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	if !opts.HasHeader && opts.Column != "" {
		return nil, fmt.Errorf("series: column %q requires a header row", opts.Column)
	}

	br := bufio.NewReader(r)

	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("series: read header: %w", err)
	}
	if strings.TrimSpace(first) == "" {
		return nil, ErrNoData
	}

	fields, err := splitRecord(first, opts.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("series: read header: %w", err)
	}

	header := first
	body := io.Reader(br)

	if !opts.HasHeader {
		// The first line is data: name the columns so the value column
		// can be selected by name, then feed the line back as a row.
		names := make([]string, len(fields))
		for i := range names {
			names[i] = "c" + strconv.Itoa(i)
		}
		fields = names
		header = strings.Join(names, string(opts.Delimiter)) + "\n"
		body = io.MultiReader(strings.NewReader(ensureNewline(first)), br)
	}

	column, err := valueColumn(fields, opts.Column)
	if err != nil {
		return nil, err
	}

	s, err := timeseries.LoadCSVFromReader(io.MultiReader(strings.NewReader(ensureNewline(header)), body), &timeseries.CSVOptions{
		ValueColumn: column,
		HasHeader:   true,
		Delimiter:   opts.Delimiter,
	})
	if err != nil {
		if strings.Contains(err.Error(), "no valid data") {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("series: %w", err)
	}

	values := make([]float64, 0, len(s.Values))
	skipped := 0

	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			skipped++
			continue
		}
		values = append(values, v)
	}

	if skipped > 0 {
		slog.Debug("series: skipped non-finite values", "count", skipped)
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}

	return values, nil
}

func splitRecord(line string, delimiter rune) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	return reader.Read()
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// valueColumn resolves the header name of the value column. An empty
// column selects the last header field.
func valueColumn(header []string, column string) (string, error) {
	if column == "" {
		return strings.TrimSpace(strings.Trim(header[len(header)-1], "\"")), nil
	}

	for _, h := range header {
		if strings.TrimSpace(strings.Trim(h, "\"")) == column {
			return column, nil
		}
	}

	return "", fmt.Errorf("series: column %q not found in header %v", column, header)
}

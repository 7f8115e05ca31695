package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/timetable/internal/constants"
	apperr "github.com/julianstephens/timetable/internal/errors"
	"github.com/julianstephens/timetable/internal/logger"
)

const (
	separator = string(constants.CSVSeparator)
	quote     = string(constants.CSVQuote)
)

// Codec converts records of E to and from semicolon separated text
type Codec[E any] struct {
	factory   func() *E
	selectors []Selector[E]
	byName    map[string]Selector[E]
}

// NewCodec validates the column names and returns a codec for them.
// Names are trimmed and must be non-empty, unique and free of separators and line breaks.
func NewCodec[E any](factory func() *E, selectors ...Selector[E]) (*Codec[E], error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: a record factory is required", apperr.ErrInvalidAccessor)
	}
	if len(selectors) == 0 {
		return nil, fmt.Errorf("%w: at least one column is required", apperr.ErrInvalidColumn)
	}

	c := &Codec[E]{factory: factory, byName: make(map[string]Selector[E], len(selectors))}
	var errs []error
	for _, s := range selectors {
		if s.err != nil {
			errs = append(errs, s.err)
			continue
		}
		s.Name = strings.TrimSpace(s.Name)
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("%w: empty name", apperr.ErrInvalidColumn))
			continue
		case strings.ContainsAny(s.Name, separator+"\r\n"):
			errs = append(errs, fmt.Errorf("%w: %q contains a separator or line break", apperr.ErrInvalidColumn, s.Name))
			continue
		}
		if _, dup := c.byName[s.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate name %q", apperr.ErrInvalidColumn, s.Name))
			continue
		}
		c.byName[s.Name] = s
		c.selectors = append(c.selectors, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Names returns the column names in export order
func (c *Codec[E]) Names() []string {
	names := make([]string, len(c.selectors))
	for i, s := range c.selectors {
		names[i] = s.Name
	}
	return names
}

// Table renders the header row followed by one escaped row per record. Records with a
// value containing the separator or a line break are left out and reported in the
// returned error; the remaining rows are still returned.
func (c *Codec[E]) Table(records []*E) ([][]string, error) {
	table := [][]string{c.Names()}
	var errs []error
	for i, rec := range records {
		if rec == nil {
			continue
		}
		row, err := c.row(rec)
		if err != nil {
			logger.Warn("Skipping record on export", "record", i+1, "error", err)
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		table = append(table, row)
	}
	return table, errors.Join(errs...)
}

func (c *Codec[E]) row(rec *E) ([]string, error) {
	row := make([]string, len(c.selectors))
	var errs []error
	for i, s := range c.selectors {
		v, err := s.format(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		v = strings.TrimSpace(v)
		if strings.ContainsAny(v, separator+"\r\n") {
			errs = append(errs, fmt.Errorf("%w: %s value %q contains a separator or line break", apperr.ErrInvalidContent, s.Name, v))
			continue
		}
		row[i] = escape(v)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return row, nil
}

// Export writes the table for records to w. Write failures are returned immediately;
// skipped records are reported after everything else was written.
func (c *Codec[E]) Export(w io.Writer, records []*E) error {
	table, rowErr := c.Table(records)
	bw := bufio.NewWriter(w)
	for _, row := range table {
		if _, err := bw.WriteString(strings.Join(row, separator) + "\n"); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return rowErr
}

// Import reads records from r. The first non-blank line is the header; columns match
// selectors by trimmed name and unknown columns are ignored. Rows that fail to convert
// are skipped and reported in the returned error alongside the parsed records.
// A read failure aborts the whole import.
func (c *Codec[E]) Import(r io.Reader) ([]*E, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		columns []*Selector[E]
		records []*E
		errs    []error
		line    int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, separator)
		if columns == nil {
			columns = c.match(fields)
			continue
		}

		rec := c.factory()
		if err := c.apply(rec, columns, fields); err != nil {
			logger.Warn("Skipping row on import", "line", line, "error", err)
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}
	return records, errors.Join(errs...)
}

// match maps header positions to writable selectors; unknown names map to nil
func (c *Codec[E]) match(header []string) []*Selector[E] {
	columns := make([]*Selector[E], len(header))
	for i, name := range header {
		s, ok := c.byName[strings.TrimSpace(unescape(strings.TrimSpace(name)))]
		if !ok || !s.Writable() {
			continue
		}
		columns[i] = &s
	}
	return columns
}

func (c *Codec[E]) apply(rec *E, columns []*Selector[E], fields []string) error {
	for i, s := range columns {
		if s == nil || i >= len(fields) {
			continue
		}
		if err := s.parse(rec, unescape(strings.TrimSpace(fields[i]))); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

// escape quotes values containing a comma or a quote, doubling inner quotes
func escape(v string) string {
	if !strings.ContainsAny(v, ","+quote) {
		return v
	}
	return quote + strings.ReplaceAll(v, quote, quote+quote) + quote
}

// unescape reverses escape for a quoted value and leaves anything else as is
func unescape(v string) string {
	if len(v) < 2 || !strings.HasPrefix(v, quote) || !strings.HasSuffix(v, quote) {
		return v
	}
	return strings.ReplaceAll(v[1:len(v)-1], quote+quote, quote)
}

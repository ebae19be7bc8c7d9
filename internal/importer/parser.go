package importer

import (
	"errors"
	"fmt"
	"strings"
)

const TimeColumn = "date_time"

var (
	ErrEmptyFile      = errors.New("file has no header line")
	ErrInvalidHeaders = errors.New("invalid header line")
)

// Parser checks lines of an observation file against its header. Only the
// date_time column has to be present; the rest are copied as they are.
type Parser struct {
	columns []string
	timeIdx int
}

// NewParser validates the header line and returns a parser for the lines after it.
func NewParser(hs []string) (*Parser, error) {
	if len(hs) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidHeaders)
	}

	columns := make([]string, len(hs))
	seen := make(map[string]bool, len(hs))
	timeIdx := -1
	for i, h := range hs {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidHeaders, i+1)
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidHeaders, h)
		}
		seen[h] = true
		if h == TimeColumn {
			timeIdx = i
		}
		columns[i] = h
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("%w: missing %s column", ErrInvalidHeaders, TimeColumn)
	}

	return &Parser{columns: columns, timeIdx: timeIdx}, nil
}

func (p *Parser) Columns() []string {
	return p.columns
}

// parse trims every field. On failure it returns the reasons instead of the line.
func (p *Parser) parse(line []string) ([]string, bool) {
	var errFields []string
	if len(line) != len(p.columns) {
		errFields = append(errFields, fmt.Sprintf("fields given: %d, want %d", len(line), len(p.columns)))
		return errFields, false
	}

	for i := range line {
		line[i] = strings.TrimSpace(line[i])
	}
	if line[p.timeIdx] == "" {
		errFields = append(errFields, TimeColumn+" is empty")
		return errFields, false
	}
	return line, true
}

package content

import (
	"strings"

	"golang.org/x/text/cases"
)

// Column names expected in the spreadsheet export.
const (
	ColumnDate = "date"
	ColumnType = "type"
	ColumnURL  = "url"
	ColumnID   = "id"
)

type ParseStats struct {
	Rows    int // non-blank data rows seen
	Kept    int
	Skipped int
}

// CSVParser turns a spreadsheet CSV export into a Sequence.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Run parses data. The first line is the header. Malformed rows are dropped
// and counted in the returned stats; parsing never fails as a whole.
func (p *CSVParser) Run(data []byte) (Sequence, ParseStats) {
	var stats ParseStats

	lines := strings.Split(string(data), "\n")
	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return Sequence{}, stats
	}

	headers := p.parseHeader(lines[headerIdx])
	grouper := NewGrouper()

	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Rows++

		row, ok := p.parseRow(headers, line)
		if !ok {
			stats.Skipped++
			continue
		}

		date, item, ok := rowToItem(row)
		if !ok {
			stats.Skipped++
			continue
		}

		grouper.Add(date, item)
		stats.Kept++
	}

	return grouper.Sequence(), stats
}

func (p *CSVParser) parseHeader(line string) []string {
	fold := cases.Fold()
	fields := SplitQuoted(strings.TrimRight(line, "\r"))
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = fold.String(strings.TrimSpace(field))
	}
	return headers
}

func (p *CSVParser) parseRow(headers []string, line string) (map[string]string, bool) {
	fields := SplitQuoted(line)
	if len(fields) < len(headers) {
		return nil, false
	}

	row := make(map[string]string, len(headers))
	for i, header := range headers {
		row[header] = strings.TrimSpace(fields[i])
	}
	return row, true
}

func rowToItem(row map[string]string) (string, Item, bool) {
	date := row[ColumnDate]
	itemType := row[ColumnType]
	if date == "" || itemType == "" {
		return "", Item{}, false
	}

	switch itemType {
	case SourceTypeVideo:
		if row[ColumnURL] == "" {
			return "", Item{}, false
		}
		return date, NewVideo(row[ColumnURL]), true
	case SourceTypePost:
		if row[ColumnID] == "" {
			return "", Item{}, false
		}
		return date, NewPost(row[ColumnID]), true
	default:
		return "", Item{}, false
	}
}

// SplitQuoted splits line on commas that are not inside double quotes and
// strips the quote characters from each field.
func SplitQuoted(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())

	return fields
}

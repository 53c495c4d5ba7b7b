package transfer

import (
	"errors"
	"strings"
)

var (
	// ErrUnterminatedQuote is returned for a quoted field with no closing quote.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	// ErrTextAfterQuote is returned when a closing quote is followed by
	// something other than a separator.
	ErrTextAfterQuote = errors.New("unexpected text after closing quote")
)

// ParseLine splits one CSV line into fields.
//
// A field wrapped in double quotes may contain commas and doubled quotes
// (""), which decode to a single quote. Quotes inside an unquoted field are
// kept literally. Whitespace around a quoted field is ignored.
func ParseLine(line string) ([]string, error) {
	var (
		fields []string
		field  strings.Builder
	)
	i := 0
	for {
		// Skip leading blanks so ` "x"` is still read as a quoted field.
		j := i
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}

		if j < len(line) && line[j] == '"' {
			i = j + 1
			closed := false
			for i < len(line) {
				c := line[i]
				if c == '"' {
					if i+1 < len(line) && line[i+1] == '"' {
						field.WriteByte('"')
						i += 2
						continue
					}
					closed = true
					i++
					break
				}
				field.WriteByte(c)
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
				i++
			}
			if i < len(line) && line[i] != ',' {
				return nil, ErrTextAfterQuote
			}
		} else {
			end := strings.IndexByte(line[i:], ',')
			if end < 0 {
				end = len(line) - i
			}
			field.WriteString(line[i : i+end])
			i += end
		}

		fields = append(fields, field.String())
		field.Reset()

		if i >= len(line) {
			return fields, nil
		}
		i++ // separator
	}
}

// quote renders s as a quoted CSV cell.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

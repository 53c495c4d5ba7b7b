package transfer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"nexus/internal/domain"
)

// maxLineSize bounds a single CSV line.
const maxLineSize = 1 << 20

// ErrLineTooLong marks a line longer than maxLineSize. The line is skipped and
// parsing continues with the next one.
var ErrLineTooLong = fmt.Errorf("line exceeds %d bytes", maxLineSize)

// Row is one tokenized data line. Line is 1-based within the input.
type Row struct {
	Line   int
	Fields []string
}

// Field returns the trimmed i-th field, or "" when the row is shorter.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

// Result is a parsed CSV document.
type Result struct {
	Header []string
	Rows   []Row
	Errors []*domain.RowError
}

// Lines returns how many non-blank lines after the header were found, parsed
// or not, plus a header that failed to parse.
func (r Result) Lines() int { return len(r.Rows) + len(r.Errors) }

// Parse reads r line by line. Blank lines are dropped, the first remaining
// line is the header, and every following line is tokenized on its own. A
// malformed or oversized line, header included, becomes a RowError; the
// returned error is reserved for read failures.
func Parse(r io.Reader) (Result, error) {
	var res Result

	br := bufio.NewReaderSize(r, 64*1024)
	lineNo := 0
	seenHeader := false
	for {
		line, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		lineNo++

		var fields []string
		if tooLong {
			err = ErrLineTooLong
		} else {
			line = strings.TrimSuffix(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if lineNo == 1 {
				line = strings.TrimPrefix(line, "\ufeff")
			}
			fields, err = ParseLine(line)
		}

		if !seenHeader {
			seenHeader = true
			if err != nil {
				res.Errors = append(res.Errors, &domain.RowError{Line: lineNo, Err: fmt.Errorf("header: %w", err)})
				continue
			}
			res.Header = fields
			continue
		}
		if err != nil {
			res.Errors = append(res.Errors, &domain.RowError{Line: lineNo, Err: err})
			continue
		}
		res.Rows = append(res.Rows, Row{Line: lineNo, Fields: fields})
	}
	return res, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is drained and reported through tooLong with an empty text.
// io.EOF is returned only when no bytes remain.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	started, tooLong := false, false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && started {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		started = true
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

package gsheet

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

var sheetsURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/([\w\-]+)(?:/.*)?$`)

// Append writes rows after the last occupied row of a worksheet. The header is written
// first if the worksheet has none, if it differs from the existing first row or if
// repeatHeader is set.
func Append(ctx context.Context, values Values, spreadsheet, worksheet string, header []any, rows [][]any, repeatHeader bool) error {
	for _, arg := range []string{spreadsheet, worksheet} {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("invalid argument '%s'", arg)
		}
	}

	area := Range(worksheet, "A1:A")
	column, err := values.Get(ctx, spreadsheet, area)
	if err != nil {
		return &APIError{Op: "get", Range: area, Err: err}
	}

	area = Range(worksheet, "A1:1")
	first, err := values.Get(ctx, spreadsheet, area)
	if err != nil {
		return &APIError{Op: "get", Range: area, Err: err}
	}

	n := len(column)
	existing := []any{}
	if len(first) > 0 {
		existing = first[0]
	}

	if len(existing) == 0 || repeatHeader || !same(existing, header) {
		area = Range(worksheet, fmt.Sprintf("A%d", n+1))
		if err := values.Update(ctx, spreadsheet, area, UserEntered, [][]any{header}); err != nil {
			return &APIError{Op: "update", Range: area, Err: err}
		}

		log.WithFields(log.Fields{"worksheet": worksheet, "row": n + 1}).Debug("wrote header")
		n++
	}

	area = Range(worksheet, fmt.Sprintf("A%d", n+1))
	if err := values.Update(ctx, spreadsheet, area, UserEntered, rows); err != nil {
		return &APIError{Op: "update", Range: area, Err: err}
	}

	return nil
}

// URL returns the browser link for a spreadsheet.
func URL(spreadsheet string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", spreadsheet)
}

// ParseURL extracts the spreadsheet ID from a spreadsheet link.
func ParseURL(url string) (string, error) {
	match := sheetsURL.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func same(p, q []any) bool {
	if len(p) != len(q) {
		return false
	}

	for i := range p {
		if fmt.Sprintf("%v", p[i]) != fmt.Sprintf("%v", q[i]) {
			return false
		}
	}

	return true
}

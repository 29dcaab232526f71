package gsheet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cell is one end of an A1 range. Column is zero-based and Row is one-based; a negative
// Column or a zero Row means the component was omitted (e.g. the 'A' in 'A2:A' has no row).
type Cell struct {
	Column int
	Row    int
}

// Area is a parsed '<sheet>!<cell>[:<cell>]' range.
type Area struct {
	Sheet string
	From  Cell
	To    *Cell
}

var a1 = regexp.MustCompile(`^(?:'((?:[^']|'')+)'|([^!']+))!([A-Za-z]*)([0-9]*)(?::([A-Za-z]*)([0-9]*))?$`)
var bare = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Range formats a range for a worksheet, quoting the worksheet name if it contains anything
// other than letters, digits or underscores.
func Range(worksheet, cells string) string {
	name := strings.TrimSuffix(strings.TrimSpace(worksheet), "!")
	if !bare.MatchString(name) {
		name = "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}

	return fmt.Sprintf("%s!%s", name, cells)
}

func ParseArea(s string) (*Area, error) {
	match := a1.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return nil, fmt.Errorf("invalid spreadsheet range '%s'", s)
	}

	sheet := match[2]
	if match[1] != "" {
		sheet = strings.ReplaceAll(match[1], "''", "'")
	}

	from, err := cell(match[3], match[4])
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' (%w)", s, err)
	} else if from.Column < 0 && from.Row == 0 {
		return nil, fmt.Errorf("invalid spreadsheet range '%s'", s)
	}

	area := Area{
		Sheet: sheet,
		From:  from,
	}

	if strings.Contains(match[0], ":") {
		to, err := cell(match[5], match[6])
		if err != nil {
			return nil, fmt.Errorf("invalid spreadsheet range '%s' (%w)", s, err)
		} else if to.Column < 0 && to.Row == 0 {
			return nil, fmt.Errorf("invalid spreadsheet range '%s'", s)
		}

		area.To = &to
	}

	return &area, nil
}

func (a Area) String() string {
	s := a.From.String()
	if a.To != nil {
		s += ":" + a.To.String()
	}

	return Range(a.Sheet, s)
}

// Bounds returns the zero-based, inclusive row and column limits of the area. Omitted
// components on the right hand side of a range are unbounded.
func (a Area) Bounds() (top, left, bottom, right int) {
	top, left = 0, 0
	if a.From.Row > 0 {
		top = a.From.Row - 1
	}

	if a.From.Column >= 0 {
		left = a.From.Column
	}

	if a.To == nil {
		bottom, right = top, left
		if a.From.Row == 0 {
			bottom = math.MaxInt
		}
		if a.From.Column < 0 {
			right = math.MaxInt
		}
		return
	}

	bottom, right = math.MaxInt, math.MaxInt
	if a.To.Row > 0 {
		bottom = a.To.Row - 1
	}

	if a.To.Column >= 0 {
		right = a.To.Column
	}

	// ... Sheets normalises reversed ranges
	if bottom < top {
		top, bottom = bottom, top
	}

	if right < left {
		left, right = right, left
	}

	return
}

func (c Cell) String() string {
	s := ""
	if c.Column >= 0 {
		s = ColumnName(c.Column)
	}

	if c.Row > 0 {
		s += strconv.Itoa(c.Row)
	}

	return s
}

// Column converts spreadsheet column letters to a zero-based index i.e. A -> 0, Z -> 25, AA -> 26.
func Column(letters string) (int, error) {
	if letters == "" {
		return -1, fmt.Errorf("missing column")
	}

	index := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return -1, fmt.Errorf("invalid column '%s'", letters)
		}

		index = index*26 + int(ch-'A'+1)
	}

	return index - 1, nil
}

// ColumnName is the inverse of Column.
func ColumnName(index int) string {
	name := ""
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}

	return name
}

func cell(letters, digits string) (Cell, error) {
	c := Cell{Column: -1}

	if letters != "" {
		col, err := Column(letters)
		if err != nil {
			return c, err
		}
		c.Column = col
	}

	if digits != "" {
		row, err := strconv.Atoi(digits)
		if err != nil || row < 1 {
			return c, fmt.Errorf("invalid row '%s'", digits)
		}
		c.Row = row
	}

	return c, nil
}

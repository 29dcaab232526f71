package gsheet

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-memory grid that behaves like the Sheets values API closely enough to
// exercise Sync and Append without a network: get trims trailing empty rows and cells, clear
// blanks cells without shifting anything and USER_ENTERED updates interpret numeric and
// boolean strings.
type Memory struct {
	mu    sync.Mutex
	Calls []Call

	sheets map[string]map[string][][]any
	fail   map[string]error
}

// Call records a single API request made against a Memory grid.
type Call struct {
	Op          string
	Spreadsheet string
	Range       string
	Option      string
	Rows        int
}

func NewMemory() *Memory {
	return &Memory{
		sheets: map[string]map[string][][]any{},
		fail:   map[string]error{},
	}
}

// Put replaces the contents of a worksheet.
func (m *Memory) Put(spreadsheet, worksheet string, rows [][]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	grid := make([][]any, len(rows))
	for i, row := range rows {
		grid[i] = append([]any{}, row...)
	}

	m.worksheets(spreadsheet)[worksheet] = grid
}

// Rows returns a copy of the occupied part of a worksheet.
func (m *Memory) Rows(spreadsheet, worksheet string) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return extract(m.worksheets(spreadsheet)[worksheet], 0, 0, len(m.worksheets(spreadsheet)[worksheet]), -1)
}

// FailOn makes every subsequent call of op ("get", "clear" or "update") return err.
func (m *Memory) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fail[op] = err
}

func (m *Memory) Get(ctx context.Context, spreadsheet, area string) ([][]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, Call{Op: "get", Spreadsheet: spreadsheet, Range: area})

	if err := m.fail["get"]; err != nil {
		return nil, err
	}

	a, err := ParseArea(area)
	if err != nil {
		return nil, err
	}

	top, left, bottom, right := a.Bounds()

	return extract(m.worksheets(spreadsheet)[a.Sheet], top, left, bottom, right), nil
}

func (m *Memory) Clear(ctx context.Context, spreadsheet, area string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, Call{Op: "clear", Spreadsheet: spreadsheet, Range: area})

	if err := m.fail["clear"]; err != nil {
		return err
	}

	a, err := ParseArea(area)
	if err != nil {
		return err
	}

	top, left, bottom, right := a.Bounds()
	grid := m.worksheets(spreadsheet)[a.Sheet]

	for r := top; r < len(grid) && r <= bottom; r++ {
		for c := left; c < len(grid[r]) && c <= right; c++ {
			grid[r][c] = nil
		}
	}

	return nil
}

func (m *Memory) Update(ctx context.Context, spreadsheet, area, option string, rows [][]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, Call{Op: "update", Spreadsheet: spreadsheet, Range: area, Option: option, Rows: len(rows)})

	if err := m.fail["update"]; err != nil {
		return err
	}

	a, err := ParseArea(area)
	if err != nil {
		return err
	}

	top, left, _, _ := a.Bounds()
	worksheets := m.worksheets(spreadsheet)
	grid := worksheets[a.Sheet]

	for i, row := range rows {
		r := top + i
		for len(grid) <= r {
			grid = append(grid, []any{})
		}

		for len(grid[r]) < left+len(row) {
			grid[r] = append(grid[r], nil)
		}

		for j, v := range row {
			if option == UserEntered {
				v = interpret(v)
			}

			grid[r][left+j] = v
		}
	}

	worksheets[a.Sheet] = grid

	return nil
}

// Ops returns the sequence of operations recorded so far.
func (m *Memory) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ops := []string{}
	for _, call := range m.Calls {
		ops = append(ops, call.Op)
	}

	return ops
}

func (m *Memory) worksheets(spreadsheet string) map[string][][]any {
	worksheets, ok := m.sheets[spreadsheet]
	if !ok {
		worksheets = map[string][][]any{}
		m.sheets[spreadsheet] = worksheets
	}

	return worksheets
}

// extract copies the [top,bottom] x [left,right] block of a grid, dropping trailing empty
// cells and rows. A negative right means unbounded.
func extract(grid [][]any, top, left, bottom, right int) [][]any {
	rows := [][]any{}

	for r := top; r < len(grid) && r <= bottom; r++ {
		row := []any{}
		for c := left; c < len(grid[r]) && (right < 0 || c <= right); c++ {
			row = append(row, grid[r][c])
		}

		for len(row) > 0 && empty(row[len(row)-1]) {
			row = row[:len(row)-1]
		}

		rows = append(rows, row)
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	if len(rows) == 0 {
		return nil
	}

	return rows
}

func empty(v any) bool {
	if v == nil {
		return true
	}

	s, ok := v.(string)

	return ok && s == ""
}

// interpret approximates how Sheets parses USER_ENTERED strings.
func interpret(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}

	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}

	return s
}

var _ Values = (*Memory)(nil)

package gsheet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

const (
	primary   = "1kvHv1OBCzr9GnFxRu9RTJC7jjQjc9M4rAiDnhyak2Sg"
	alternate = "1n2STANDARD96xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"
)

var targets = Targets{
	Variable: "MACHINE_TYPE",
	Spreadsheets: map[string]string{
		"n2-standard-96": alternate,
	},
}

func newTestSyncer(m *Memory, label string) (*Syncer, *int) {
	exited := -1
	s := NewSyncer(m, targets)
	s.getenv = func(key string) string {
		if key == "MACHINE_TYPE" {
			return label
		}
		return ""
	}
	s.exit = func(code int) { exited = code }

	return s, &exited
}

func header() []any {
	return []any{"Test", "Throughput", "Latency"}
}

func TestSyncReplacesExistingRows(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Sheet1", [][]any{
		header(),
		{"r1", 1.0, 10.0},
		{"r2", 2.0, 20.0},
		{"r3", 3.0, 30.0},
		{"r4", 4.0, 40.0},
		{"r5", 5.0, 50.0},
	})

	s, exited := newTestSyncer(m, "n2-standard-96")

	err := s.Sync(context.Background(), "Sheet1", [][]any{
		{"seq_read", "512.5", "7"},
		{"rand_read", "256", "11"},
		{"seq_write", "128", "13"},
	})

	require.NoError(t, err)
	require.Equal(t, -1, *exited)
	require.Equal(t, []Call{
		{Op: "get", Spreadsheet: alternate, Range: "Sheet1!A1:A"},
		{Op: "clear", Spreadsheet: alternate, Range: "Sheet1!A2:7"},
		{Op: "update", Spreadsheet: alternate, Range: "Sheet1!A2", Option: UserEntered, Rows: 3},
	}, m.Calls)

	require.Equal(t, [][]any{
		header(),
		{"seq_read", 512.5, 7.0},
		{"rand_read", 256.0, 11.0},
		{"seq_write", 128.0, 13.0},
	}, m.Rows(alternate, "Sheet1"))
}

func TestSyncWithLargerBatch(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Sheet1", [][]any{
		header(),
		{"r1", 1.0, 10.0},
	})

	s, _ := newTestSyncer(m, "n2-standard-96")

	rows := [][]any{
		{"a", 1, 2},
		{"b", 3, 4},
		{"c", 5, 6},
	}

	require.NoError(t, s.Sync(context.Background(), "Sheet1", rows))
	require.Equal(t, "Sheet1!A2:3", m.Calls[1].Range)
	require.Equal(t, append([][]any{header()}, rows...), m.Rows(alternate, "Sheet1"))
}

func TestSyncWithEmptyBatch(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Sheet1", [][]any{
		header(),
		{"r1", 1.0, 10.0},
		{"r2", 2.0, 20.0},
	})

	s, _ := newTestSyncer(m, "n2-standard-96")

	require.NoError(t, s.Sync(context.Background(), "Sheet1", [][]any{}))
	require.Equal(t, []string{"get", "clear", "update"}, m.Ops())
	require.Equal(t, [][]any{header()}, m.Rows(alternate, "Sheet1"))
}

func TestSyncWithEmptyWorksheet(t *testing.T) {
	m := NewMemory()
	s, _ := newTestSyncer(m, "n2-standard-96")

	require.NoError(t, s.Sync(context.Background(), "Sheet1", [][]any{{"x", "1"}}))
	require.Equal(t, "Sheet1!A2:2", m.Calls[1].Range)
	require.Equal(t, [][]any{{}, {"x", 1.0}}, m.Rows(alternate, "Sheet1"))
}

func TestSyncWithQuotedWorksheet(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Read Tests", [][]any{header(), {"r1"}})

	s, _ := newTestSyncer(m, "n2-standard-96")

	require.NoError(t, s.Sync(context.Background(), "Read Tests!", [][]any{{"r2"}}))
	require.Equal(t, "'Read Tests'!A1:A", m.Calls[0].Range)
	require.Equal(t, "'Read Tests'!A2:3", m.Calls[1].Range)
	require.Equal(t, "'Read Tests'!A2", m.Calls[2].Range)
	require.Equal(t, [][]any{header(), {"r2"}}, m.Rows(alternate, "Read Tests"))
}

func TestSyncWithUnknownMachineType(t *testing.T) {
	for _, label := range []string{"", "e2-standard-2", "N2-STANDARD-96", "n2-standard-96 "} {
		m := NewMemory()
		s, exited := newTestSyncer(m, label)

		err := s.Sync(context.Background(), "Sheet1", [][]any{{"a"}})

		require.ErrorIs(t, err, ErrUnknownMachineType, "label %q", label)
		require.Equal(t, 1, *exited, "label %q", label)
		require.Empty(t, m.Calls, "label %q", label)
	}
}

func TestSyncGetFailure(t *testing.T) {
	m := NewMemory()
	m.FailOn("get", &googleapi.Error{Code: 403, Message: "The caller does not have permission"})

	s, _ := newTestSyncer(m, "n2-standard-96")

	err := s.Sync(context.Background(), "Sheet1", [][]any{{"a"}})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "get", apiErr.Op)
	require.Equal(t, 403, StatusCode(err))
	require.Equal(t, []string{"get"}, m.Ops())
}

func TestSyncClearFailure(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Sheet1", [][]any{header(), {"r1"}, {"r2"}})
	m.FailOn("clear", &googleapi.Error{Code: 429, Message: "Quota exceeded"})

	s, _ := newTestSyncer(m, "n2-standard-96")

	err := s.Sync(context.Background(), "Sheet1", [][]any{{"a"}})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "clear", apiErr.Op)
	require.Equal(t, "Sheet1!A2:4", apiErr.Range)
	require.Equal(t, 429, StatusCode(err))
	require.Equal(t, []string{"get", "clear"}, m.Ops())
	require.Equal(t, [][]any{header(), {"r1"}, {"r2"}}, m.Rows(alternate, "Sheet1"))
}

func TestSyncUpdateFailureLeavesHeader(t *testing.T) {
	m := NewMemory()
	m.Put(alternate, "Sheet1", [][]any{header(), {"r1"}, {"r2"}})
	m.FailOn("update", errors.New("quota exceeded"))

	s, _ := newTestSyncer(m, "n2-standard-96")

	err := s.Sync(context.Background(), "Sheet1", [][]any{{"a"}})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "update", apiErr.Op)
	require.Equal(t, "Sheet1!A2", apiErr.Range)
	require.Equal(t, 0, StatusCode(err))
	require.Equal(t, [][]any{header()}, m.Rows(alternate, "Sheet1"))
}

func TestTargetsResolve(t *testing.T) {
	id, err := targets.Resolve(func(string) string { return "n2-standard-96" })
	require.NoError(t, err)
	require.Equal(t, alternate, id)

	_, err = targets.Resolve(func(string) string { return "" })
	require.ErrorIs(t, err, ErrUnknownMachineType)

	empty := Targets{Variable: "MACHINE_TYPE", Spreadsheets: map[string]string{"": primary}}
	_, err = empty.Resolve(func(string) string { return "" })
	require.ErrorIs(t, err, ErrUnknownMachineType)
}

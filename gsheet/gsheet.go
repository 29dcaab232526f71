// Package gsheet replaces the data rows of a Google Sheets worksheet with a new batch of
// performance metrics, keeping the header row intact.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	UserEntered = "USER_ENTERED"
	Raw         = "RAW"
)

// ErrUnknownMachineType is reported when the machine-type label does not select a spreadsheet.
var ErrUnknownMachineType = errors.New("unrecognised machine type")

// Values is the subset of the Sheets 'spreadsheets.values' API used to synchronise a worksheet.
type Values interface {
	Get(ctx context.Context, spreadsheet, area string) ([][]any, error)
	Clear(ctx context.Context, spreadsheet, area string) error
	Update(ctx context.Context, spreadsheet, area, option string, rows [][]any) error
}

// APIError wraps a failed remote call with the operation and range that failed.
type APIError struct {
	Op    string
	Range string
	Err   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s (%v)", e.Op, e.Range, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Targets maps machine-type labels to spreadsheet IDs. The label is read from the
// environment variable named by Variable.
type Targets struct {
	Variable     string
	Spreadsheets map[string]string
}

// Resolve returns the spreadsheet ID for the current machine type.
func (t Targets) Resolve(getenv func(string) string) (string, error) {
	label := getenv(t.Variable)
	if id, ok := t.Spreadsheets[label]; ok && label != "" && id != "" {
		return id, nil
	}

	return "", fmt.Errorf("%w: %s='%s'", ErrUnknownMachineType, t.Variable, label)
}

// Syncer makes the data rows of a worksheet equal to a supplied batch.
//
// Callers must serialise calls to Sync for any one worksheet: the measure/clear/write
// sequence is not isolated and a failure between clear and write leaves only the header.
type Syncer struct {
	Values  Values
	Targets Targets

	getenv func(string) string
	exit   func(int)
}

func NewSyncer(values Values, targets Targets) *Syncer {
	return &Syncer{
		Values:  values,
		Targets: targets,
		getenv:  os.Getenv,
		exit:    os.Exit,
	}
}

// Sync resolves the target spreadsheet from the machine-type label and replaces rows 2..n+1
// of the worksheet with rows. An unrecognised label terminates the process without
// contacting the API.
func (s *Syncer) Sync(ctx context.Context, worksheet string, rows [][]any) error {
	spreadsheet, err := s.resolve()
	if err != nil {
		log.WithFields(log.Fields{"worksheet": worksheet}).Errorf("%v", err)

		if s.exit != nil {
			s.exit(1)
		} else {
			os.Exit(1)
		}

		return err
	}

	return Replace(ctx, s.Values, spreadsheet, worksheet, rows)
}

func (s *Syncer) resolve() (string, error) {
	getenv := s.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	spreadsheet, err := s.Targets.Resolve(getenv)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"machine-type": getenv(s.Targets.Variable),
		"spreadsheet":  spreadsheet,
	}).Info("using spreadsheet for machine type")

	return spreadsheet, nil
}

// Replace is the measure/clear/write sequence behind Sync, for a known spreadsheet ID.
func Replace(ctx context.Context, values Values, spreadsheet, worksheet string, rows [][]any) error {
	// ... measure
	area := Range(worksheet, "A1:A")
	column, err := values.Get(ctx, spreadsheet, area)
	if err != nil {
		return &APIError{Op: "get", Range: area, Err: err}
	}

	entries := len(column)

	// ... clear everything below the header
	last := entries + 1
	if last < 2 {
		last = 2
	}

	area = Range(worksheet, fmt.Sprintf("A2:%d", last))
	if err := values.Clear(ctx, spreadsheet, area); err != nil {
		return &APIError{Op: "clear", Range: area, Err: err}
	}

	// ... write
	area = Range(worksheet, "A2")
	if err := values.Update(ctx, spreadsheet, area, UserEntered, rows); err != nil {
		return &APIError{Op: "update", Range: area, Err: err}
	}

	log.WithFields(log.Fields{
		"worksheet": worksheet,
		"occupied":  entries,
		"written":   len(rows),
	}).Debug("worksheet synchronised")

	return nil
}

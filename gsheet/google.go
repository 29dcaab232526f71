package gsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Google implements Values over the Sheets v4 API.
type Google struct {
	service *sheets.Service
}

func NewGoogle(ctx context.Context, client *http.Client) (*Google, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return &Google{
		service: service,
	}, nil
}

func (g *Google) Get(ctx context.Context, spreadsheet, area string) ([][]any, error) {
	response, err := g.service.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return response.Values, nil
}

func (g *Google) Clear(ctx context.Context, spreadsheet, area string) error {
	rq := sheets.ClearValuesRequest{}

	if _, err := g.service.Spreadsheets.Values.Clear(spreadsheet, area, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func (g *Google) Update(ctx context.Context, spreadsheet, area, option string, rows [][]any) error {
	vr := sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         rows,
	}

	if _, err := g.service.Spreadsheets.Values.Update(spreadsheet, area, &vr).ValueInputOption(option).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

// StatusCode returns the HTTP status of a failed Sheets API call, or 0 if err did not come
// from the API.
func StatusCode(err error) int {
	var e *googleapi.Error
	if errors.As(err, &e) {
		return e.Code
	}

	return 0
}

var _ Values = (*Google)(nil)

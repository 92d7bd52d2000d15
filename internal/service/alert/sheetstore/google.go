package sheetstore

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

type googleApi struct {
	svc           *sheets.Service
	spreadsheetId string
	sheetName     string
}

// NewGoogleApi adapts a Sheets client to the Api interface, scoped to one
// sheet of one spreadsheet.
func NewGoogleApi(svc *sheets.Service, spreadsheetId, sheetName string) Api {
	return &googleApi{
		svc:           svc,
		spreadsheetId: spreadsheetId,
		sheetName:     sheetName,
	}
}

func (g *googleApi) Get(ctx context.Context) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetId, g.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, fmt.Sprint(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (g *googleApi) Clear(ctx context.Context) error {
	_, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetId, g.sheetName, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (g *googleApi) Update(ctx context.Context, rows [][]string) error {
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, c := range row {
			cells = append(cells, c)
		}
		values = append(values, cells)
	}
	_, err := g.svc.Spreadsheets.Values.
		Update(g.spreadsheetId, g.sheetName+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

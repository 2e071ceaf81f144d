package storage

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const mirrorRange = "Заявки!A:N"

// SheetsMirror дублирует строки журнала в Google-таблицу. В отличие от
// локальной книги это настоящий append, поэтому зеркало переживает
// конкурентные записи; используется только как побочный канал.
type SheetsMirror struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewSheetsMirror(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*SheetsMirror, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &SheetsMirror{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// AppendRows дописывает уже сформированные строки журнала в таблицу.
func (m *SheetsMirror) AppendRows(ctx context.Context, rows [][]interface{}) error {
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := m.srv.Spreadsheets.Values.Append(m.spreadsheetID, mirrorRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

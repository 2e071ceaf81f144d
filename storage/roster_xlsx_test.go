package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mkrylova/entry-form/models"
)

func setupStore(t *testing.T) *XLSXRosterStore {
	t.Helper()
	return NewXLSXRosterStore(t.TempDir())
}

func readRows(t *testing.T, s *XLSXRosterStore) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(s.Path())
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	return rows
}

func TestEnsureLogCreatesHeaderOnce(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureLog(ctx))
	require.NoError(t, s.EnsureLog(ctx), "повторный вызов безвреден")

	rows := readRows(t, s)
	require.Len(t, rows, 1, "только заголовок, без строк данных")
	require.Len(t, rows[0], 14)
	require.Equal(t, "Время приёма", rows[0][0])
	require.Equal(t, "Виза врача", rows[0][13])
}

func TestAppendOneRowPerParticipant(t *testing.T) {
	s := setupStore(t)
	before := time.Now()

	sub := models.Submission{
		Date: "01.09.2025",
		City: "Мытищи",
		Club: "Звезда",
		Participants: []models.Participant{
			{Idx: 1, Name: "Петрова А.", BirthYear: "2012"},
			{Idx: 2, Name: "Сидорова В.", BirthYear: "2013", MedicalVisa: "есть"},
		},
	}

	written, err := s.Append(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, written, 2)

	rows := readRows(t, s)
	require.Len(t, rows, 3)
	for i, row := range rows[1:] {
		ts, err := time.ParseInLocation("2006-01-02 15:04:05", row[0], time.Local)
		require.NoError(t, err)
		require.WithinDuration(t, before, ts, 10*time.Second)

		require.Equal(t, "01.09.2025", row[1])
		require.Equal(t, "Мытищи", row[2])
		require.Equal(t, "Звезда", row[3], "поля заявки повторяются в каждой строке")
		require.Equal(t, sub.Participants[i].Name, row[9])
	}
	require.Equal(t, "1", rows[1][8])
	require.Equal(t, "2", rows[2][8])
	require.Equal(t, "есть", rows[2][13])
}

func TestAppendWithoutParticipantsWritesBlankRow(t *testing.T) {
	s := setupStore(t)

	written, err := s.Append(context.Background(), models.Submission{Club: "Орбита"})
	require.NoError(t, err)
	require.Len(t, written, 1)

	rows := readRows(t, s)
	require.Len(t, rows, 2)
	require.Equal(t, "Орбита", rows[1][3])
	// GetRows обрезает пустой хвост строки, так что её длина может быть
	// меньше 14; важно лишь, что после полей заявки нет ничего содержательного.
	require.LessOrEqual(t, len(rows[1]), 8, "поля участника остаются пустыми")
	for _, cell := range rows[1][4:] {
		require.Empty(t, cell)
	}
}

func TestAppendAccumulatesAcrossCalls(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, models.Submission{
		Club:         "Звезда",
		Participants: []models.Participant{{Idx: 1, Name: "Петрова А."}},
	})
	require.NoError(t, err)
	_, err = s.Append(ctx, models.Submission{
		Club:         "Орбита",
		Participants: []models.Participant{{Idx: 1, Name: "Козлова Е."}},
	})
	require.NoError(t, err)

	rows := readRows(t, s)
	require.Len(t, rows, 3)
	require.Equal(t, "Звезда", rows[1][3])
	require.Equal(t, "Орбита", rows[2][3])
}

func TestAppendReplacesLogAtomically(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Append(ctx, models.Submission{
		Club:         "Звезда",
		Participants: []models.Participant{{Idx: 1, Name: "Петрова А."}},
	})
	require.NoError(t, err)

	// Обрывок незавершённой записи не мешает следующему добавлению
	// и не доживает до конца операции.
	require.NoError(t, os.WriteFile(s.Path()+".tmp", []byte("обрывок"), 0o644))
	_, err = s.Append(ctx, models.Submission{Club: "Орбита"})
	require.NoError(t, err)

	require.NoFileExists(t, s.Path()+".tmp")
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "в каталоге данных остаётся только книга журнала")

	rows := readRows(t, s)
	require.Len(t, rows, 3, "прежние строки пережили перезапись")
	require.Equal(t, "Звезда", rows[1][3])
	require.Equal(t, "Орбита", rows[2][3])
}

func TestWorkbookCreatesLogIfAbsent(t *testing.T) {
	s := setupStore(t)

	data, err := s.Workbook(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	rows := readRows(t, s)
	require.Len(t, rows, 1)
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkrylova/entry-form/models"
)

const (
	rosterSheet    = "Заявки"
	rosterFileName = "submissions.xlsx"
	appendTSLayout = "2006-01-02 15:04:05"
)

// rosterHeader — фиксированная схема журнала: 14 колонок, создаётся один раз
// вместе с файлом и дальше не меняется.
var rosterHeader = []interface{}{
	"Время приёма",
	"Дата заявки",
	"Город",
	"Клуб",
	"Контакты",
	"Тренер",
	"Судья",
	"Категория судьи",
	"№ участника",
	"Участник",
	"Год рождения",
	"Имеет разряд",
	"Выступает по разряду",
	"Виза врача",
}

// XLSXRosterStore накапливает все принятые заявки в одной книге XLSX.
// Запись — это чтение и перезапись файла целиком; mutex сериализует её
// внутри процесса. Между процессами записи не синхронизированы, при
// параллельном запуске нескольких экземпляров строки могут теряться.
type XLSXRosterStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewXLSXRosterStore(dataDir string) *XLSXRosterStore {
	return &XLSXRosterStore{
		path: filepath.Join(dataDir, rosterFileName),
		now:  time.Now,
	}
}

// Path возвращает расположение книги журнала.
func (s *XLSXRosterStore) Path() string { return s.path }

// EnsureLog создаёт книгу с заголовком и без строк данных, если её ещё нет.
// Идемпотентна.
func (s *XLSXRosterStore) EnsureLog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLogLocked()
}

func (s *XLSXRosterStore) ensureLogLocked() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat roster log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return fmt.Errorf("failed to rename roster sheet: %w", err)
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}
	return s.saveLocked(f)
}

// Append дописывает заявку в журнал: по строке на участника, с повторением
// полей заявки в каждой строке; заявка без участников даёт ровно одну строку
// с пустыми полями участника. Время приёма — момент вызова, не дата из формы.
// Возвращает записанные строки (их использует зеркало журнала).
func (s *XLSXRosterStore) Append(ctx context.Context, sub models.Submission) ([][]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLogLocked(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster log: %w", err)
	}
	defer f.Close()

	existing, err := f.GetRows(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster sheet: %w", err)
	}

	rows := submissionRows(sub, s.now().Format(appendTSLayout))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, len(existing)+1+i)
		if err != nil {
			return nil, fmt.Errorf("failed to locate append position: %w", err)
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write roster row: %w", err)
		}
	}

	if err := s.saveLocked(f); err != nil {
		return nil, err
	}
	return rows, nil
}

// saveLocked перезаписывает книгу целиком: сначала во временный файл рядом,
// затем атомарный rename поверх журнала. Оборванная запись (диск кончился,
// процесс убит) оставляет на диске прежнюю книгу, а не усечённую.
func (s *XLSXRosterStore) saveLocked(f *excelize.File) error {
	tmp := s.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to persist roster log: %w", err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to persist roster log: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to persist roster log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace roster log: %w", err)
	}
	return nil
}

// Workbook отдаёт текущее содержимое книги журнала, предварительно создав
// пустую книгу, если файла ещё нет.
func (s *XLSXRosterStore) Workbook(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLogLocked(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster log: %w", err)
	}
	return data, nil
}

func submissionRows(sub models.Submission, ts string) [][]interface{} {
	base := []interface{}{
		ts, sub.Date, sub.City, sub.Club, sub.Contacts,
		sub.Coach, sub.Judge, sub.JudgeCategory,
	}

	if len(sub.Participants) == 0 {
		row := append(append([]interface{}{}, base...), "", "", "", "", "", "")
		return [][]interface{}{row}
	}

	rows := make([][]interface{}, 0, len(sub.Participants))
	for _, p := range sub.Participants {
		row := append(append([]interface{}{}, base...),
			p.Idx, p.Name, p.BirthYear, p.HasRank, p.PerformingRank, p.MedicalVisa)
		rows = append(rows, row)
	}
	return rows
}

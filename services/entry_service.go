package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrylova/entry-form/models"
	"github.com/mkrylova/entry-form/storage"
)

// RosterStore — журнал принятых заявок. Append возвращает записанные
// строки, чтобы их можно было продублировать в зеркало.
type RosterStore interface {
	Append(ctx context.Context, sub models.Submission) ([][]interface{}, error)
	Workbook(ctx context.Context) ([]byte, error)
}

// DocumentRenderer отдаёт байты печатной формы заявки.
type DocumentRenderer interface {
	Render(sub models.Submission) ([]byte, error)
}

// RowMirror — необязательный внешний дубль журнала (Google Sheets).
type RowMirror interface {
	AppendRows(ctx context.Context, rows [][]interface{}) error
}

type EntryService interface {
	// Submit проводит заявку через весь конвейер:
	// нормализация → журнал → документ → письмо.
	Submit(ctx context.Context, raw map[string]interface{}) error
	// RenderDocument строит документ без записи в журнал и рассылки.
	RenderDocument(raw map[string]interface{}) (doc []byte, filename string, err error)
	// RosterWorkbook отдаёт текущую книгу журнала.
	RosterWorkbook(ctx context.Context) ([]byte, error)
}

type entryService struct {
	store    RosterStore
	renderer DocumentRenderer
	mailer   Mailer
	notifyTo string
	uploader storage.FileUploader // nil, если архив не настроен
	mirror   RowMirror            // nil, если зеркало не настроено
	logger   *slog.Logger
	now      func() time.Time
}

func NewEntryService(
	store RosterStore,
	renderer DocumentRenderer,
	mailer Mailer,
	notifyTo string,
	uploader storage.FileUploader,
	mirror RowMirror,
	logger *slog.Logger,
) EntryService {
	return &entryService{
		store:    store,
		renderer: renderer,
		mailer:   mailer,
		notifyTo: notifyTo,
		uploader: uploader,
		mirror:   mirror,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *entryService) Submit(ctx context.Context, raw map[string]interface{}) error {
	sub := NormalizeSubmission(raw, s.now())

	// Шаги с побочными эффектами идут в фиксированном порядке, запрос
	// падает на первом же сбое. Если журнал уже пополнен, а письмо не
	// ушло, строка остаётся — клиент при этом видит ошибку.
	rows, err := s.store.Append(ctx, sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLogWrite, err)
	}

	doc, err := s.renderer.Render(sub)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	mail := BuildNotification(s.notifyTo, sub, doc)
	if err := s.mailer.Send(ctx, mail); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	s.mirrorRows(ctx, rows)
	s.archiveDocument(ctx, mail.Filename, doc)
	return nil
}

func (s *entryService) RenderDocument(raw map[string]interface{}) ([]byte, string, error) {
	sub := NormalizeSubmission(raw, s.now())
	doc, err := s.renderer.Render(sub)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return doc, AttachmentFileName(sub.Club), nil
}

func (s *entryService) RosterWorkbook(ctx context.Context) ([]byte, error) {
	data, err := s.store.Workbook(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogWrite, err)
	}
	return data, nil
}

// mirrorRows и archiveDocument — побочные каналы после успешной отправки:
// их сбои пишутся в журнал сервера и не меняют исход запроса.
func (s *entryService) mirrorRows(ctx context.Context, rows [][]interface{}) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.AppendRows(ctx, rows); err != nil {
		s.logger.Warn("failed to mirror roster rows", slog.Any("error", err))
	}
}

func (s *entryService) archiveDocument(ctx context.Context, filename string, doc []byte) {
	if s.uploader == nil {
		return
	}
	key := fmt.Sprintf("entries/%d/%s", s.now().Year(), filename)
	if _, err := s.uploader.Upload(ctx, key, docxContentType, bytes.NewReader(doc)); err != nil {
		s.logger.Warn("failed to archive entry document", slog.String("key", key), slog.Any("error", err))
	}
}

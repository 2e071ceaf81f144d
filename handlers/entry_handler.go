package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mkrylova/entry-form/services"
)

// Текст, который видит пользователь формы при любом сбое конвейера.
// Какой именно этап упал, остаётся только в журнале сервера.
const genericFailureMessage = "Не удалось отправить заявку. Попробуйте ещё раз позже."

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type EntryHandler struct {
	entryService services.EntryService
	logger       *slog.Logger
}

func NewEntryHandler(es services.EntryService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{entryService: es, logger: logger}
}

// SubmitHandler принимает заявку и проводит её через весь конвейер.
// Ответ — только флаг успеха: при сбое клиент получает общий текст,
// а этап и причина пишутся в журнал.
func (h *EntryHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := readRawJSON(w, r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if err := h.entryService.Submit(r.Context(), raw); err != nil {
		h.logger.Error("submit pipeline failed", slog.Any("error", err))
		_ = writeJSON(w, http.StatusInternalServerError, jsonResponse{
			"success": false,
			"message": genericFailureMessage,
		})
		return
	}

	_ = writeJSON(w, http.StatusOK, jsonResponse{"success": true})
}

// DownloadDocxHandler отдаёт печатную форму по тому же телу запроса,
// минуя журнал и рассылку.
func (h *EntryHandler) DownloadDocxHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := readRawJSON(w, r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	doc, filename, err := h.entryService.RenderDocument(raw)
	if err != nil {
		h.logger.Error("document rendering failed", slog.Any("error", err))
		_ = writeJSON(w, http.StatusInternalServerError, jsonResponse{
			"success": false,
			"message": genericFailureMessage,
		})
		return
	}

	sendFile(w, filename, docxContentType, doc)
}

// DownloadExcelHandler отдаёт книгу журнала, создавая пустую при первом
// обращении.
func (h *EntryHandler) DownloadExcelHandler(w http.ResponseWriter, r *http.Request) {
	data, err := h.entryService.RosterWorkbook(r.Context())
	if err != nil {
		h.logger.Error("roster workbook read failed", slog.Any("error", err))
		_ = writeJSON(w, http.StatusInternalServerError, jsonResponse{
			"success": false,
			"message": genericFailureMessage,
		})
		return
	}

	sendFile(w, "submissions.xlsx", xlsxContentType, data)
}

func sendFile(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// contentDisposition собирает заголовок с именем файла. Кириллические имена
// нельзя класть в заголовок сырыми байтами: такие кодируются по RFC 5987
// (filename* в UTF-8) с ASCII-запасным вариантом в filename.
func contentDisposition(filename string) string {
	ascii := true
	for _, r := range filename {
		if r >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return fmt.Sprintf("attachment; filename=%q", filename)
	}
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s",
		asciiFileName(filename), url.PathEscape(filename))
}

func asciiFileName(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		if r < 0x80 {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return out
}

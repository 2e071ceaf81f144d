package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkrylova/entry-form/handlers"
)

// SetupRoutes настраивает маршруты формы. CORS открыт: форму отправляет
// браузер, отдельного фронтенд-домена в конфигурации нет.
func SetupRoutes(router *chi.Mux, entryHandler *handlers.EntryHandler) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Post("/submit", entryHandler.SubmitHandler)
	router.Post("/download-docx", entryHandler.DownloadDocxHandler)
	router.Get("/download-excel", entryHandler.DownloadExcelHandler)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/codebuildervaibhav/segment-scripter/internal/config"
	"github.com/codebuildervaibhav/segment-scripter/internal/session"
)

// Register mounts the page, form, API, download and stream routes
func Register(app *fiber.App, store *session.Store, site config.Site) {
	sess := SessionMiddleware(store)

	pageHandler := NewPageHandler(site)
	formHandler := NewFormHandler()
	apiHandler := NewAPIHandler()
	downloadHandler := NewDownloadHandler()
	streamHandler := NewStreamHandler()

	app.Get("/", sess, pageHandler.Handle)

	app.Post("/url", sess, formHandler.SetURL)
	app.Post("/ranges", sess, formHandler.AddRange)
	app.Post("/ranges/:id", sess, formHandler.UpdateRange)
	app.Post("/ranges/:id/delete", sess, formHandler.RemoveRange)
	app.Post("/submit", sess, formHandler.Submit)

	app.Get("/download/:format", sess, downloadHandler.Handle)

	app.Get("/api/state", sess, apiHandler.State)
	app.Post("/api/submit", sess, apiHandler.Submit)

	app.Get("/ws/state", streamHandler.Upgrade, sess, websocket.New(streamHandler.Handle))
}

package handlers

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// ChatPageHandler serves the embedded chat widget page.
func ChatPageHandler(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/chatbot.html")
	if err != nil {
		logRH.Error("Chat page missing from embedded assets", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// StaticHandler serves the embedded css/js assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

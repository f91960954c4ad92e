package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadImage stores an image under the upload directory configured at
// startup and returns its URL plus a deletion handle (the stored name).
func (app *application) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.clientError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		app.clientError(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(app.uploadDir, name))
	if err != nil {
		app.serverError(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"url":      "/uploads/" + name,
		"publicId": name,
	})
}

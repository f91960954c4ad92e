package main

import (
	"net/http"
	"time"
)

func (app *application) submitInquiry(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Item     string `json:"item"`
		Quantity int    `json:"quantity"`
		Unit     string `json:"unit"`
		Email    string `json:"email"`
		Message  string `json:"message"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Item == "" || input.Quantity <= 0 || input.Email == "" {
		app.clientError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	err := app.mailer.SendInquiry(input.Item, input.Quantity, input.Unit, input.Email, input.Message)
	if err != nil {
		app.errorLog.Println("send inquiry mail:", err)
		app.clientError(w, http.StatusInternalServerError, "Failed to send inquiry")
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Inquiry sent successfully",
		"inquiry": envelope{
			"item":      input.Item,
			"quantity":  input.Quantity,
			"unit":      input.Unit,
			"email":     input.Email,
			"message":   input.Message,
			"createdAt": time.Now(),
		},
	})
}

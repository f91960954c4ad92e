package main

import (
	"net/http"
	"time"

	"ecomstore/internal/models"
	"ecomstore/internal/token"
)

const tokenTTL = 7 * 24 * time.Hour

func (app *application) status(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "E-commerce API is running!",
		"version": "1.0.0",
	})
}

type userResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:     u.ID.Hex(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}

func (app *application) registerUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		app.clientError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if len(input.Password) < 6 {
		app.clientError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user, err := app.store.InsertUser(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		app.modelError(w, err)
		return
	}

	t, err := token.New(app.jwtSecret, user.ID.Hex(), user.Email, user.Name, user.Role, tokenTTL)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"message": "User registered successfully",
		"token":   t,
		"user":    newUserResponse(user),
	})
}

func (app *application) loginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		app.clientError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := app.store.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		app.modelError(w, err)
		return
	}

	t, err := token.New(app.jwtSecret, user.ID.Hex(), user.Email, user.Name, user.Role, tokenTTL)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Login successful",
		"token":   t,
		"user":    newUserResponse(user),
	})
}

func (app *application) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.store.GetUser(r.Context(), app.contextUser(r).ID)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"user": newUserResponse(user)})
}

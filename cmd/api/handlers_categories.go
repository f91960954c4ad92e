package main

import (
	"net/http"

	"ecomstore/internal/models"
)

func (app *application) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.GetCategories(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"categories": categories,
		"total":      len(categories),
	})
}

func (app *application) showCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Category not found")
		return
	}

	category, err := app.store.GetCategory(r.Context(), id)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, category)
}

func (app *application) createCategory(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" {
		app.clientError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := app.store.InsertCategory(r.Context(), category); err != nil {
		app.modelError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"message":  "Category created successfully",
		"category": category,
	})
}

func (app *application) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Category not found")
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := app.store.UpdateCategory(r.Context(), id, models.CategoryUpdate{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    input.IsActive,
	})
	if err != nil {
		app.modelError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message":  "Category updated successfully",
		"category": category,
	})
}

func (app *application) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Category not found")
		return
	}

	if err := app.store.DeleteCategory(r.Context(), id); err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "Category deleted successfully"})
}

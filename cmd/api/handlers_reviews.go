package main

import (
	"net/http"

	"ecomstore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (app *application) listProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := app.pathID(r, "productID")
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	page, limit := pagination(r)
	reviews, total, err := app.store.GetReviewsByProduct(r.Context(), productID, page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"reviews": reviews,
		"pagination": envelope{
			"currentPage":  page,
			"totalPages":   totalPages(total, limit),
			"totalReviews": total,
			"hasNext":      page*limit < total,
			"hasPrev":      page > 1,
		},
	})
}

func (app *application) listMyReviews(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	reviews, total, err := app.store.GetReviewsByUser(r.Context(), app.contextUser(r).ID, page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"reviews": reviews,
		"pagination": envelope{
			"currentPage":  page,
			"totalPages":   totalPages(total, limit),
			"totalReviews": total,
			"hasNext":      page*limit < total,
			"hasPrev":      page > 1,
		},
	})
}

func (app *application) createReview(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Product string         `json:"product"`
		Rating  int            `json:"rating"`
		Comment string         `json:"comment"`
		Images  []models.Image `json:"images"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Product == "" || input.Rating == 0 {
		app.clientError(w, http.StatusBadRequest, "Product and rating are required")
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		app.clientError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.Product)
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	review := &models.Review{
		UserID:    app.contextUser(r).ID,
		ProductID: productID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Images:    input.Images,
	}
	if err := app.store.CreateReview(r.Context(), review); err != nil {
		app.modelError(w, err)
		return
	}

	// the review write already succeeded; an aggregation failure is logged
	// and not surfaced to the caller
	if err := app.store.RecomputeProductRating(r.Context(), productID); err != nil {
		app.errorLog.Println("recompute product rating:", err)
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"message": "Review created successfully",
		"review":  review,
	})
}

func (app *application) updateReview(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Review not found")
		return
	}

	var input struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		app.clientError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	review, err := app.store.UpdateReview(r.Context(), id, app.contextUser(r).ID, input.Rating, input.Comment)
	if err != nil {
		app.modelError(w, err)
		return
	}

	if err := app.store.RecomputeProductRating(r.Context(), review.ProductID); err != nil {
		app.errorLog.Println("recompute product rating:", err)
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Review updated successfully",
		"review":  review,
	})
}

func (app *application) addReviewImages(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Review not found")
		return
	}

	var input struct {
		Images []models.Image `json:"images"`
	}
	if err := app.readJSON(w, r, &input); err != nil || len(input.Images) == 0 {
		app.clientError(w, http.StatusBadRequest, "No images provided")
		return
	}

	review, err := app.store.AddReviewImages(r.Context(), id, app.contextUser(r).ID, input.Images)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Images added successfully",
		"review":  review,
	})
}

func (app *application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Review not found")
		return
	}

	user := app.contextUser(r)
	productID, err := app.store.DeleteReview(r.Context(), id, user.ID, user.Role == models.RoleAdmin)
	if err != nil {
		app.modelError(w, err)
		return
	}

	if err := app.store.RecomputeProductRating(r.Context(), productID); err != nil {
		app.errorLog.Println("recompute product rating:", err)
	}

	app.writeJSON(w, http.StatusOK, envelope{"message": "Review deleted successfully"})
}

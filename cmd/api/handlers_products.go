package main

import (
	"net/http"
	"strconv"

	"ecomstore/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f models.ProductFilter
	if hex := q.Get("category"); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		f.Category = oid
	}
	if v := q.Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		f.MinPrice = &min
	}
	if v := q.Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		f.MaxPrice = &max
	}
	f.Search = q.Get("search")
	f.SortBy = q.Get("sortBy")
	f.SortDesc = q.Get("sortOrder") != "asc"

	page, limit := pagination(r)
	products, total, err := app.store.GetProducts(r.Context(), f, page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"products": products,
		"pagination": envelope{
			"currentPage":   page,
			"totalPages":    totalPages(total, limit),
			"totalProducts": total,
			"hasNext":       page*limit < total,
			"hasPrev":       page > 1,
		},
	})
}

func (app *application) showProduct(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	product, err := app.store.GetProduct(r.Context(), id)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, product)
}

func (app *application) createProduct(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name           string            `json:"name"`
		Description    string            `json:"description"`
		Price          float64           `json:"price"`
		Category       string            `json:"category"`
		SKU            string            `json:"sku"`
		Brand          string            `json:"brand"`
		Stock          int               `json:"stock"`
		Specifications map[string]string `json:"specifications"`
		Tags           []string          `json:"tags"`
		Images         []models.Image    `json:"images"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" || input.Description == "" || input.Price <= 0 || input.Category == "" {
		app.clientError(w, http.StatusBadRequest, "Please provide all required fields: name, description, price, category")
		return
	}
	if input.Stock < 0 {
		app.clientError(w, http.StatusBadRequest, "Stock cannot be negative")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	product := &models.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		SKU:            input.SKU,
		CategoryID:     categoryID,
		Brand:          input.Brand,
		Stock:          input.Stock,
		Specifications: input.Specifications,
		Tags:           input.Tags,
		Images:         input.Images,
	}
	if err := app.store.InsertProduct(r.Context(), product); err != nil {
		app.modelError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"message": "Product created successfully with SKU: " + product.SKU,
		"product": product,
	})
}

func (app *application) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	var input struct {
		Name           *string           `json:"name"`
		Description    *string           `json:"description"`
		Price          *float64          `json:"price"`
		Category       *string           `json:"category"`
		SKU            *string           `json:"sku"`
		Brand          *string           `json:"brand"`
		Stock          *int              `json:"stock"`
		Specifications map[string]string `json:"specifications"`
		IsActive       *bool             `json:"isActive"`
		Tags           []string          `json:"tags"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := models.ProductUpdate{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		SKU:            input.SKU,
		Brand:          input.Brand,
		Stock:          input.Stock,
		Specifications: input.Specifications,
		IsActive:       input.IsActive,
		Tags:           input.Tags,
	}
	if input.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*input.Category)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		upd.CategoryID = &categoryID
	}
	if input.Stock != nil && *input.Stock < 0 {
		app.clientError(w, http.StatusBadRequest, "Stock cannot be negative")
		return
	}

	product, err := app.store.UpdateProduct(r.Context(), id, upd)
	if err != nil {
		app.modelError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (app *application) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	if err := app.store.DeleteProduct(r.Context(), id); err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "Product deleted successfully"})
}

func (app *application) addProductImages(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Product not found")
		return
	}

	var input struct {
		Images []models.Image `json:"images"`
	}
	if err := app.readJSON(w, r, &input); err != nil || len(input.Images) == 0 {
		app.clientError(w, http.StatusBadRequest, "No images provided")
		return
	}

	product, err := app.store.AddProductImages(r.Context(), id, input.Images)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Images added successfully",
		"product": product,
	})
}

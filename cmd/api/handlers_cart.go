package main

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (app *application) showCart(w http.ResponseWriter, r *http.Request) {
	cart, err := app.store.GetOrCreateCart(r.Context(), app.contextUser(r).ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, cart)
}

func (app *application) addCartItem(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Quantity < 1 {
		app.clientError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	productID, err := primitive.ObjectIDFromHex(input.Product)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := app.store.AddCartItem(r.Context(), app.contextUser(r).ID, productID, input.Quantity)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Item added to cart",
		"cart":    cart,
	})
}

func (app *application) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := app.pathID(r, "productID")
	if err != nil {
		app.notFound(w, "Cart item not found")
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Quantity < 1 {
		app.clientError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	cart, err := app.store.UpdateCartItem(r.Context(), app.contextUser(r).ID, productID, input.Quantity)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Cart updated",
		"cart":    cart,
	})
}

func (app *application) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := app.pathID(r, "productID")
	if err != nil {
		app.notFound(w, "Cart item not found")
		return
	}

	cart, err := app.store.RemoveCartItem(r.Context(), app.contextUser(r).ID, productID)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"message": "Item removed from cart",
		"cart":    cart,
	})
}

func (app *application) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := app.store.ClearCart(r.Context(), app.contextUser(r).ID); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"message": "Cart cleared"})
}

package main

import (
	"net/http"
	"time"

	"ecomstore/internal/models"
)

func (app *application) placeOrder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ShippingAddress models.Address `json:"shippingAddress"`
		BillingAddress  models.Address `json:"billingAddress"`
		PaymentMethod   string         `json:"paymentMethod"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// billing defaults to shipping, as on the checkout form
	if input.BillingAddress == (models.Address{}) {
		input.BillingAddress = input.ShippingAddress
	}

	order, err := app.store.PlaceOrder(r.Context(), app.contextUser(r).ID,
		input.ShippingAddress, input.BillingAddress, input.PaymentMethod)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, order)
}

func (app *application) listMyOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	orders, total, err := app.store.GetOrdersByUser(r.Context(), app.contextUser(r).ID, page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (app *application) showOrder(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Order not found")
		return
	}

	order, err := app.store.GetOrder(r.Context(), id)
	if err != nil {
		app.modelError(w, err)
		return
	}

	// owner or admin; read access is broader than cancellation
	user := app.contextUser(r)
	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		app.clientError(w, http.StatusForbidden, "Access denied")
		return
	}
	app.writeJSON(w, http.StatusOK, order)
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := models.OrderFilter{
		Status:        q.Get("status"),
		PaymentStatus: q.Get("paymentStatus"),
	}
	if v := q.Get("startDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		f.StartDate = t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			app.clientError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		f.EndDate = t
	}

	page, limit := pagination(r)
	orders, total, err := app.store.GetAllOrders(r.Context(), f, page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	app.writeJSON(w, http.StatusOK, envelope{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (app *application) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Order not found")
		return
	}

	var input struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidStatus(input.OrderStatus) {
		app.clientError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := app.store.UpdateOrderStatus(r.Context(), id, input.OrderStatus)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, order)
}

func (app *application) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := app.pathID(r, "id")
	if err != nil {
		app.notFound(w, "Order not found")
		return
	}

	order, err := app.store.CancelOrder(r.Context(), id, app.contextUser(r).ID)
	if err != nil {
		app.modelError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, order)
}

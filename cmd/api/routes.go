package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/", http.HandlerFunc(app.status))

	mux.Post("/api/auth/register", http.HandlerFunc(app.registerUser))
	mux.Post("/api/auth/login", http.HandlerFunc(app.loginUser))
	mux.Get("/api/auth/me", app.requireAuth(app.currentUser))

	mux.Get("/api/products", http.HandlerFunc(app.listProducts))
	mux.Post("/api/products", app.requireRole("admin", app.createProduct))
	mux.Post("/api/products/:id/images", app.requireRole("admin", app.addProductImages))
	mux.Get("/api/products/:id", http.HandlerFunc(app.showProduct))
	mux.Put("/api/products/:id", app.requireRole("admin", app.updateProduct))
	mux.Del("/api/products/:id", app.requireRole("admin", app.deleteProduct))

	mux.Get("/api/categories", http.HandlerFunc(app.listCategories))
	mux.Post("/api/categories", app.requireRole("admin", app.createCategory))
	mux.Get("/api/categories/:id", http.HandlerFunc(app.showCategory))
	mux.Put("/api/categories/:id", app.requireRole("admin", app.updateCategory))
	mux.Del("/api/categories/:id", app.requireRole("admin", app.deleteCategory))

	mux.Get("/api/cart", app.requireAuth(app.showCart))
	mux.Post("/api/cart/items", app.requireAuth(app.addCartItem))
	mux.Put("/api/cart/items/:productID", app.requireAuth(app.updateCartItem))
	mux.Del("/api/cart/items/:productID", app.requireAuth(app.removeCartItem))
	mux.Del("/api/cart", app.requireAuth(app.clearCart))

	// literal routes must be registered before the :id patterns
	mux.Get("/api/orders/my-orders", app.requireAuth(app.listMyOrders))
	mux.Post("/api/orders", app.requireAuth(app.placeOrder))
	mux.Get("/api/orders", app.requireRole("admin", app.listOrders))
	mux.Put("/api/orders/:id/cancel", app.requireAuth(app.cancelOrder))
	mux.Put("/api/orders/:id/status", app.requireRole("admin", app.updateOrderStatus))
	mux.Get("/api/orders/:id", app.requireAuth(app.showOrder))

	mux.Get("/api/reviews/product/:productID", http.HandlerFunc(app.listProductReviews))
	mux.Get("/api/reviews/user", app.requireAuth(app.listMyReviews))
	mux.Post("/api/reviews", app.requireAuth(app.createReview))
	mux.Post("/api/reviews/:id/images", app.requireAuth(app.addReviewImages))
	mux.Put("/api/reviews/:id", app.requireAuth(app.updateReview))
	mux.Del("/api/reviews/:id", app.requireAuth(app.deleteReview))

	mux.Post("/api/inquiry", http.HandlerFunc(app.submitInquiry))
	mux.Post("/api/upload", app.requireRole("admin", app.uploadImage))

	mux.Get("/uploads/:name", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.uploadDir))))

	return app.logRequest(app.recoverPanic(app.enableCORS(mux)))
}

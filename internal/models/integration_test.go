package models

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestDB connects to the database named by TEST_MONGO_URI and hands each
// test its own throwaway database. Tests are skipped when the variable is
// unset.
func newTestDB(t *testing.T) *MongoDB {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("set TEST_MONGO_URI to run database tests")
	}

	client, err := OpenDB(uri)
	require.NoError(t, err)

	db := client.Database("ecomstore_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx := context.Background()
		db.Drop(ctx)
		client.Disconnect(ctx)
	})
	return NewMongoDB(db)
}

func seedProduct(t *testing.T, db *MongoDB, name string, price float64, stock int) *Product {
	t.Helper()
	p := &Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		CategoryID:  primitive.NewObjectID(),
		Stock:       stock,
	}
	require.NoError(t, db.InsertProduct(context.Background(), p))
	return p
}

func TestPlaceOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	p := seedProduct(t, db, "Widget", 20, 5)
	_, err := db.AddCartItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)

	addr := Address{Street: "1 Main St", City: "Springfield", Country: "US"}
	order, err := db.PlaceOrder(ctx, userID, addr, addr, "card")
	require.NoError(t, err)

	assert.Equal(t, 40.0, order.Subtotal)
	assert.Equal(t, 3.2, order.Tax)
	assert.Equal(t, 10.0, order.Shipping)
	assert.Equal(t, 53.2, order.Total)
	assert.Equal(t, StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Widget", order.Items[0].Name)
	assert.Equal(t, 20.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	got, err := db.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	cart, err := db.GetCartByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	persisted, err := db.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, persisted.Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.PlaceOrder(ctx, primitive.NewObjectID(), Address{}, Address{}, "card")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	p := seedProduct(t, db, "Widget", 20, 5)

	// each add passes the per-add stock check, but the merged line exceeds it
	_, err := db.AddCartItem(ctx, userID, p.ID, 3)
	require.NoError(t, err)
	_, err = db.AddCartItem(ctx, userID, p.ID, 3)
	require.NoError(t, err)

	_, err = db.PlaceOrder(ctx, userID, Address{}, Address{}, "card")
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Widget", stockErr.ProductName)

	got, err := db.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "failed placement must not touch stock")

	cart, err := db.GetCartByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity, "failed placement must not touch the cart")

	_, total, err := db.GetOrdersByUser(ctx, userID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total, "failed placement must not create an order")
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	p := seedProduct(t, db, "Widget", 20, 5)
	_, err := db.AddCartItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	order, err := db.PlaceOrder(ctx, userID, Address{}, Address{}, "card")
	require.NoError(t, err)

	_, err = db.CancelOrder(ctx, order.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := db.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	cancelled, err := db.CancelOrder(ctx, order.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	got, err = db.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "cancellation must restore stock")

	_, err = db.CancelOrder(ctx, order.ID, userID)
	assert.ErrorIs(t, err, ErrStageGuard)
}

func TestCancelShippedOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	p := seedProduct(t, db, "Widget", 20, 5)
	_, err := db.AddCartItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	order, err := db.PlaceOrder(ctx, userID, Address{}, Address{}, "card")
	require.NoError(t, err)

	shipped, err := db.UpdateOrderStatus(ctx, order.ID, StatusShipped)
	require.NoError(t, err)
	assert.Contains(t, shipped.TrackingNumber, "TRK-")

	_, err = db.CancelOrder(ctx, order.ID, userID)
	assert.ErrorIs(t, err, ErrStageGuard)

	got, err := db.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock, "failed cancellation must not touch stock")

	delivered, err := db.UpdateOrderStatus(ctx, order.ID, StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, shipped.TrackingNumber, delivered.TrackingNumber)
}

func TestReviewAggregation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedProduct(t, db, "Widget", 20, 5)
	u1, u2, u3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	create := func(userID primitive.ObjectID, rating int) *Review {
		r := &Review{UserID: userID, ProductID: p.ID, Rating: rating, Comment: "ok"}
		require.NoError(t, db.CreateReview(ctx, r))
		require.NoError(t, db.RecomputeProductRating(ctx, p.ID))
		return r
	}

	ratingOf := func() (float64, int) {
		got, err := db.GetProduct(ctx, p.ID)
		require.NoError(t, err)
		return got.AverageRating, got.NumReviews
	}

	create(u1, 5)
	avg, n := ratingOf()
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, n)

	err := db.CreateReview(ctx, &Review{UserID: u1, ProductID: p.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrDuplicateReview)
	avg, n = ratingOf()
	assert.Equal(t, 5.0, avg, "rejected duplicate must not alter the aggregate")
	assert.Equal(t, 1, n)

	create(u2, 4)
	avg, n = ratingOf()
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, n)

	r3 := create(u3, 3)
	avg, n = ratingOf()
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, n)

	// recompute with no intervening writes is idempotent
	require.NoError(t, db.RecomputeProductRating(ctx, p.ID))
	avg, n = ratingOf()
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 3, n)

	rating := 5
	_, err = db.UpdateReview(ctx, r3.ID, u1, &rating, nil)
	assert.ErrorIs(t, err, ErrNoRecord, "only the owner may update")

	_, err = db.UpdateReview(ctx, r3.ID, u3, &rating, nil)
	require.NoError(t, err)
	require.NoError(t, db.RecomputeProductRating(ctx, p.ID))
	avg, n = ratingOf()
	assert.Equal(t, 4.7, avg)
	assert.Equal(t, 3, n)

	productID, err := db.DeleteReview(ctx, r3.ID, u3, false)
	require.NoError(t, err)
	require.NoError(t, db.RecomputeProductRating(ctx, productID))
	avg, n = ratingOf()
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, n)
}

func TestReviewDeleteAuthorization(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := seedProduct(t, db, "Widget", 20, 5)
	owner, stranger := primitive.NewObjectID(), primitive.NewObjectID()

	r := &Review{UserID: owner, ProductID: p.ID, Rating: 4}
	require.NoError(t, db.CreateReview(ctx, r))

	_, err := db.DeleteReview(ctx, r.ID, stranger, false)
	assert.ErrorIs(t, err, ErrNoRecord)

	// an admin may delete someone else's review
	_, err = db.DeleteReview(ctx, r.ID, stranger, true)
	require.NoError(t, err)
}

func TestCartMergeAndSnapshotPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	p := seedProduct(t, db, "Widget", 10, 10)
	_, err := db.AddCartItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)

	newPrice := 15.0
	_, err = db.UpdateProduct(ctx, p.ID, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	cart, err := db.AddCartItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].Price, "the line keeps the price snapshotted on first add")

	cart, err = db.UpdateCartItem(ctx, userID, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = db.RemoveCartItem(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCategoryGuards(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cat := &Category{Name: "Electronics", Description: "gadgets"}
	require.NoError(t, db.InsertCategory(ctx, cat))

	err := db.InsertCategory(ctx, &Category{Name: "Electronics"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	p := &Product{Name: "Widget", Description: "d", Price: 1, CategoryID: cat.ID, Stock: 1}
	require.NoError(t, db.InsertProduct(ctx, p))

	err = db.DeleteCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	got, err := db.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ProductCount)

	require.NoError(t, db.DeleteProduct(ctx, p.ID))
	require.NoError(t, db.DeleteCategory(ctx, cat.ID))

	_, err = db.GetCategory(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestUserRegistrationAndLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user, err := db.InsertUser(ctx, "Jane", "Jane@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role)

	_, err = db.InsertUser(ctx, "Jane Again", "jane@example.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := db.Authenticate(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = db.Authenticate(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = db.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProductSKUUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p1 := &Product{Name: "Widget", Description: "d", Price: 1, CategoryID: primitive.NewObjectID(), Stock: 1, SKU: "WIDG-GEN-XX-123"}
	require.NoError(t, db.InsertProduct(ctx, p1))

	p2 := &Product{Name: "Other", Description: "d", Price: 1, CategoryID: primitive.NewObjectID(), Stock: 1, SKU: "WIDG-GEN-XX-123"}
	err := db.InsertProduct(ctx, p2)
	assert.ErrorIs(t, err, ErrDuplicateSKU)

	p3 := &Product{Name: "Auto", Description: "d", Price: 1, CategoryID: primitive.NewObjectID(), Stock: 1}
	require.NoError(t, db.InsertProduct(ctx, p3))
	assert.NotEmpty(t, p3.SKU)
}

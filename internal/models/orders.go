package models

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const taxRate = 0.08

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeOrderTotals derives the order money fields from the cart lines using
// their snapshot prices. Shipping is free above a 100 subtotal (strictly
// greater); the totals are fixed here once and never recomputed.
func ComputeOrderTotals(items []CartItem) (subtotal, tax, shipping, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * taxRate)
	if subtotal > 100 {
		shipping = 0
	} else {
		shipping = 10
	}
	total = round2(subtotal + tax + shipping)
	return subtotal, tax, shipping, total
}

// CanCancel reports whether an order in the given status may still be
// cancelled by its owner.
func CanCancel(status string) bool {
	switch status {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return false
	}
	return true
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PlaceOrder turns the user's cart into a persisted order: validate every
// line against live stock, decrement stock, insert the order, clear the cart.
// The decrement is conditional on stock >= quantity so two concurrent
// placements cannot both take the last units; a line lost to such a race is
// compensated by re-incrementing the lines already taken and rejecting the
// order. The sequence as a whole is still not transactional.
func (m *MongoDB) PlaceOrder(ctx context.Context, userID primitive.ObjectID, shippingAddr, billingAddr Address, paymentMethod string) (*Order, error) {
	cart, err := m.GetCartByUser(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoRecord) {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	products := make(map[primitive.ObjectID]*Product, len(cart.Items))
	for _, item := range cart.Items {
		p, err := m.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p.Stock < item.Quantity {
			return nil, &InsufficientStockError{ProductName: p.Name}
		}
		products[item.ProductID] = p
	}

	var taken []CartItem
	restore := func() {
		for _, t := range taken {
			m.Products.UpdateOne(ctx, bson.M{"_id": t.ProductID},
				bson.M{"$inc": bson.M{"stock": t.Quantity}})
		}
	}
	for _, item := range cart.Items {
		res, err := m.Products.UpdateOne(ctx,
			bson.M{"_id": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"stock": -item.Quantity}})
		if err == nil && res.MatchedCount == 0 {
			err = &InsufficientStockError{ProductName: products[item.ProductID].Name}
		}
		if err != nil {
			restore()
			return nil, err
		}
		taken = append(taken, item)
	}

	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		p := products[item.ProductID]
		var image string
		if len(p.Images) > 0 {
			image = p.Images[0].URL
		}
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      p.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     image,
		})
	}

	subtotal, tax, shippingFee, total := ComputeOrderTotals(cart.Items)
	now := time.Now()
	order := &Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: shippingAddr,
		BillingAddress:  billingAddr,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   StatusPending,
		Subtotal:        subtotal,
		Tax:             tax,
		Shipping:        shippingFee,
		Total:           total,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := m.Orders.InsertOne(ctx, order); err != nil {
		restore()
		return nil, err
	}

	if err := m.ClearCart(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (m *MongoDB) GetOrder(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var o Order
	err := m.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		return nil, wrapNoDocuments(err)
	}
	return &o, nil
}

func (m *MongoDB) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]*Order, int64, error) {
	filter := bson.M{"user_id": userID}
	return m.findOrders(ctx, filter, page, limit)
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status        string
	PaymentStatus string
	StartDate     time.Time
	EndDate       time.Time
}

func (m *MongoDB) GetAllOrders(ctx context.Context, f OrderFilter, page, limit int64) ([]*Order, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		filter["payment_status"] = f.PaymentStatus
	}
	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		created := bson.M{}
		if !f.StartDate.IsZero() {
			created["$gte"] = f.StartDate
		}
		if !f.EndDate.IsZero() {
			created["$lte"] = f.EndDate
		}
		filter["created_at"] = created
	}
	return m.findOrders(ctx, filter, page, limit)
}

func (m *MongoDB) findOrders(ctx context.Context, filter bson.M, page, limit int64) ([]*Order, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := m.Orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var orders []*Order
	if err = cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	total, err := m.Orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateOrderStatus is the admin transition. Moving to shipped assigns a
// tracking number if the order has none; moving to delivered stamps the
// delivery time.
func (m *MongoDB) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*Order, error) {
	order, err := m.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"status": status, "updated_at": time.Now()}
	if status == StatusShipped && order.TrackingNumber == "" {
		set["tracking_number"] = "TRK-" + uuid.NewString()
	}
	if status == StatusDelivered {
		set["delivered_at"] = time.Now()
	}

	_, err = m.Orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return m.GetOrder(ctx, id)
}

// CancelOrder lets the owning user cancel a not-yet-shipped order and
// restores the stock taken at placement. The status update filters on the
// status the guard saw, so a concurrent transition loses exactly one writer.
func (m *MongoDB) CancelOrder(ctx context.Context, id, userID primitive.ObjectID) (*Order, error) {
	order, err := m.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotOwner
	}
	if !CanCancel(order.Status) {
		return nil, ErrStageGuard
	}

	res, err := m.Orders.UpdateOne(ctx,
		bson.M{"_id": id, "status": order.Status},
		bson.M{"$set": bson.M{"status": StatusCancelled, "updated_at": time.Now()}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrStageGuard
	}

	for _, item := range order.Items {
		_, err := m.Products.UpdateOne(ctx, bson.M{"_id": item.ProductID},
			bson.M{"$inc": bson.M{"stock": item.Quantity}})
		if err != nil {
			return nil, err
		}
	}
	return m.GetOrder(ctx, id)
}

package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCartByUser returns the user's cart, or ErrNoRecord if none exists yet.
func (m *MongoDB) GetCartByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	var c Cart
	err := m.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if err != nil {
		return nil, wrapNoDocuments(err)
	}
	return &c, nil
}

// GetOrCreateCart is the lazy-create read used by the cart endpoints.
func (m *MongoDB) GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	cart, err := m.GetCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrNoRecord) {
		return nil, err
	}

	cart = &Cart{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Items:     []CartItem{},
		UpdatedAt: time.Now(),
	}
	if _, err := m.Carts.InsertOne(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddCartItem puts quantity units of the product in the cart at its current
// price. Adding a product already in the cart merges into the existing line;
// the line keeps the price snapshotted on first add.
func (m *MongoDB) AddCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*Cart, error) {
	p, err := m.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, &InsufficientStockError{ProductName: p.Name}
	}

	now := time.Now()
	res, err := m.Carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": quantity},
			"$set": bson.M{"updated_at": now},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		item := CartItem{ProductID: productID, Quantity: quantity, Price: p.Price}
		_, err = m.Carts.UpdateOne(ctx,
			bson.M{"user_id": userID},
			bson.M{
				"$push": bson.M{"items": item},
				"$set":  bson.M{"updated_at": now},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			return nil, err
		}
	}
	return m.GetCartByUser(ctx, userID)
}

// UpdateCartItem sets the quantity of an existing line (must stay >= 1).
func (m *MongoDB) UpdateCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*Cart, error) {
	res, err := m.Carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$set": bson.M{"items.$.quantity": quantity, "updated_at": time.Now()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetCartByUser(ctx, userID)
}

func (m *MongoDB) RemoveCartItem(ctx context.Context, userID, productID primitive.ObjectID) (*Cart, error) {
	res, err := m.Carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetCartByUser(ctx, userID)
}

// ClearCart empties the cart but keeps the document; the cart survives order
// placement as an empty staging area.
func (m *MongoDB) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := m.Carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{"items": []CartItem{}, "updated_at": time.Now()},
		})
	return err
}

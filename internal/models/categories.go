package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCategories lists active categories by name, refreshing each stored
// product count that has drifted from the live count.
func (m *MongoDB) GetCategories(ctx context.Context) ([]*Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := m.Categories.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var categories []*Category
	if err = cur.All(ctx, &categories); err != nil {
		return nil, err
	}

	for _, cat := range categories {
		n, err := m.Products.CountDocuments(ctx, bson.M{"category_id": cat.ID})
		if err != nil {
			return nil, err
		}
		if cat.ProductCount != int(n) {
			cat.ProductCount = int(n)
			_, err = m.Categories.UpdateOne(ctx, bson.M{"_id": cat.ID},
				bson.M{"$set": bson.M{"product_count": cat.ProductCount}})
			if err != nil {
				return nil, err
			}
		}
	}
	return categories, nil
}

func (m *MongoDB) GetCategory(ctx context.Context, id primitive.ObjectID) (*Category, error) {
	var c Category
	err := m.Categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, wrapNoDocuments(err)
	}

	n, err := m.Products.CountDocuments(ctx, bson.M{"category_id": c.ID})
	if err != nil {
		return nil, err
	}
	c.ProductCount = int(n)
	return &c, nil
}

func (m *MongoDB) InsertCategory(ctx context.Context, c *Category) error {
	n, err := m.Categories.CountDocuments(ctx, bson.M{"name": c.Name})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateCategory
	}

	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.IsActive = true
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err = m.Categories.InsertOne(ctx, c)
	return err
}

// CategoryUpdate is a partial update; nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (m *MongoDB) UpdateCategory(ctx context.Context, id primitive.ObjectID, upd CategoryUpdate) (*Category, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		n, err := m.Categories.CountDocuments(ctx, bson.M{"name": *upd.Name, "_id": bson.M{"$ne": id}})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateCategory
		}
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	res, err := m.Categories.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetCategory(ctx, id)
}

// DeleteCategory refuses to delete a category that still has products.
func (m *MongoDB) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	n, err := m.Categories.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRecord
	}

	products, err := m.Products.CountDocuments(ctx, bson.M{"category_id": id})
	if err != nil {
		return err
	}
	if products > 0 {
		return ErrCategoryInUse
	}

	_, err = m.Categories.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

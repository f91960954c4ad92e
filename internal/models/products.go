package models

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) GetProduct(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := m.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, wrapNoDocuments(err)
	}
	return &p, nil
}

// ProductFilter narrows and orders the catalog listing. A nil price bound
// means unbounded on that side.
type ProductFilter struct {
	Category primitive.ObjectID
	MinPrice *float64
	MaxPrice *float64
	Search   string
	SortBy   string
	SortDesc bool
}

var productSortFields = map[string]string{
	"name":          "name",
	"price":         "price",
	"createdAt":     "created_at",
	"averageRating": "average_rating",
}

func (m *MongoDB) GetProducts(ctx context.Context, f ProductFilter, page, limit int64) ([]*Product, int64, error) {
	filter := bson.M{}
	if !f.Category.IsZero() {
		filter["category_id"] = f.Category
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"sku": regex},
		}
	}

	sortField, ok := productSortFields[f.SortBy]
	if !ok {
		sortField = "created_at"
	}
	order := 1
	if f.SortDesc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := m.Products.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var products []*Product
	if err = cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	total, err := m.Products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// InsertProduct stores a new product, generating a SKU when none was given
// and rejecting a provided SKU that is already taken.
func (m *MongoDB) InsertProduct(ctx context.Context, p *Product) error {
	if p.SKU == "" {
		var categoryName string
		if cat, err := m.GetCategory(ctx, p.CategoryID); err == nil {
			categoryName = cat.Name
		}
		sku, err := m.generateSKU(ctx, p.Name, categoryName, p.Brand)
		if err != nil {
			return err
		}
		p.SKU = sku
	} else {
		n, err := m.Products.CountDocuments(ctx, bson.M{"sku": p.SKU})
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateSKU
		}
	}

	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Images == nil {
		p.Images = []Image{}
	}

	_, err := m.Products.InsertOne(ctx, p)
	return err
}

// ProductUpdate is a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *float64
	CategoryID     *primitive.ObjectID
	Brand          *string
	Stock          *int
	SKU            *string
	Specifications map[string]string
	IsActive       *bool
	Tags           []string
}

func (m *MongoDB) UpdateProduct(ctx context.Context, id primitive.ObjectID, upd ProductUpdate) (*Product, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}
	if upd.Brand != nil {
		set["brand"] = *upd.Brand
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Specifications != nil {
		set["specifications"] = upd.Specifications
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if upd.SKU != nil {
		n, err := m.Products.CountDocuments(ctx, bson.M{"sku": *upd.SKU, "_id": bson.M{"$ne": id}})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrDuplicateSKU
		}
		set["sku"] = *upd.SKU
	}

	res, err := m.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetProduct(ctx, id)
}

func (m *MongoDB) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *MongoDB) AddProductImages(ctx context.Context, id primitive.ObjectID, images []Image) (*Product, error) {
	res, err := m.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"images": bson.M{"$each": images}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetProduct(ctx, id)
}

// skuParts builds the NAME-CAT-BR prefix: four, three and two alphanumeric
// characters, uppercased and padded with X (GEN for a missing category).
func skuParts(name, category, brand string) string {
	return skuToken(name, 4, "XXXX") + "-" + skuToken(category, 3, "GEN") + "-" + skuToken(brand, 2, "XX")
}

func skuToken(s string, n int, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ToUpper(b.String())
	if cleaned == "" {
		return fallback
	}
	if len(cleaned) > n {
		cleaned = cleaned[:n]
	}
	for len(cleaned) < n {
		cleaned += "X"
	}
	return cleaned
}

func (m *MongoDB) generateSKU(ctx context.Context, name, categoryName, brand string) (string, error) {
	base := fmt.Sprintf("%s-%d", skuParts(name, categoryName, brand), 100+rand.Intn(900))

	sku := base
	for counter := 1; ; counter++ {
		n, err := m.Products.CountDocuments(ctx, bson.M{"sku": sku})
		if err != nil {
			// fall back to a timestamp SKU rather than failing the insert
			return fmt.Sprintf("SKU-%d-%d", time.Now().UnixMilli(), rand.Intn(1000)), nil
		}
		if n == 0 {
			return sku, nil
		}
		sku = fmt.Sprintf("%s-%d", base, counter)
	}
}

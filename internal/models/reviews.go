package models

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AggregateRatings computes the one-decimal mean and count over a review set.
// Zero reviews yield (0, 0).
func AggregateRatings(reviews []*Review) (average float64, count int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return average, len(reviews)
}

// RecomputeProductRating rescans the product's reviews and overwrites the
// derived fields. A full recompute, not an incremental adjustment, so the
// aggregate cannot drift from the review set it was computed over.
func (m *MongoDB) RecomputeProductRating(ctx context.Context, productID primitive.ObjectID) error {
	cur, err := m.Reviews.Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var reviews []*Review
	if err = cur.All(ctx, &reviews); err != nil {
		return err
	}

	average, count := AggregateRatings(reviews)
	_, err = m.Products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{"average_rating": average, "num_reviews": count},
	})
	return err
}

// CreateReview enforces one review per (user, product): the product must
// exist and the user must not have reviewed it yet. The existence check and
// the insert are not atomic; a race between them can slip a duplicate in.
func (m *MongoDB) CreateReview(ctx context.Context, r *Review) error {
	if _, err := m.GetProduct(ctx, r.ProductID); err != nil {
		return err
	}

	n, err := m.Reviews.CountDocuments(ctx, bson.M{"user_id": r.UserID, "product_id": r.ProductID})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateReview
	}

	now := time.Now()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Images == nil {
		r.Images = []Image{}
	}

	_, err = m.Reviews.InsertOne(ctx, r)
	return err
}

func (m *MongoDB) GetReview(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	var r Review
	err := m.Reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err != nil {
		return nil, wrapNoDocuments(err)
	}
	return &r, nil
}

func (m *MongoDB) GetReviewsByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int64) ([]*Review, int64, error) {
	return m.findReviews(ctx, bson.M{"product_id": productID}, page, limit)
}

func (m *MongoDB) GetReviewsByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]*Review, int64, error) {
	return m.findReviews(ctx, bson.M{"user_id": userID}, page, limit)
}

func (m *MongoDB) findReviews(ctx context.Context, filter bson.M, page, limit int64) ([]*Review, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := m.Reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var reviews []*Review
	if err = cur.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	total, err := m.Reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// UpdateReview mutates rating and comment; only the owner's review matches.
func (m *MongoDB) UpdateReview(ctx context.Context, id, userID primitive.ObjectID, rating *int, comment *string) (*Review, error) {
	set := bson.M{"updated_at": time.Now()}
	if rating != nil {
		set["rating"] = *rating
	}
	if comment != nil {
		set["comment"] = *comment
	}

	res, err := m.Reviews.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetReview(ctx, id)
}

func (m *MongoDB) AddReviewImages(ctx context.Context, id, userID primitive.ObjectID, images []Image) (*Review, error) {
	res, err := m.Reviews.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{
		"$push": bson.M{"images": bson.M{"$each": images}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNoRecord
	}
	return m.GetReview(ctx, id)
}

// DeleteReview removes the review and reports which product it belonged to,
// so the caller can recompute that product's aggregate. Admins may delete any
// review; users only their own.
func (m *MongoDB) DeleteReview(ctx context.Context, id, userID primitive.ObjectID, isAdmin bool) (primitive.ObjectID, error) {
	filter := bson.M{"_id": id}
	if !isAdmin {
		filter["user_id"] = userID
	}

	var r Review
	err := m.Reviews.FindOneAndDelete(ctx, filter).Decode(&r)
	if err != nil {
		return primitive.NilObjectID, wrapNoDocuments(err)
	}
	return r.ProductID, nil
}

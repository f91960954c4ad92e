package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Products   *mongo.Collection
	Categories *mongo.Collection
	Reviews    *mongo.Collection
	Users      *mongo.Collection
	Orders     *mongo.Collection
	Carts      *mongo.Collection
}

func NewMongoDB(db *mongo.Database) *MongoDB {
	return &MongoDB{
		Products:   db.Collection("products"),
		Categories: db.Collection("categories"),
		Reviews:    db.Collection("reviews"),
		Users:      db.Collection("users"),
		Orders:     db.Collection("orders"),
		Carts:      db.Collection("carts"),
	}
}

func OpenDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func wrapNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoRecord
	}
	return err
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Cancelled is reachable from pending and processing only.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"publicId"`
	Alt      string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zip_code" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password_hash" json:"-"`
	Avatar       string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role         string               `bson:"role" json:"role"`
	Addresses    []Address            `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Wishlist     []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	SKU            string             `bson:"sku" json:"sku"`
	CategoryID     primitive.ObjectID `bson:"category_id" json:"category"`
	Brand          string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Stock          int                `bson:"stock" json:"stock"`
	Images         []Image            `bson:"images" json:"images"`
	Specifications map[string]string  `bson:"specifications,omitempty" json:"specifications,omitempty"`
	AverageRating  float64            `bson:"average_rating" json:"averageRating"`
	NumReviews     int                `bson:"num_reviews" json:"numReviews"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Image        Image              `bson:"image,omitempty" json:"image"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	ProductCount int                `bson:"product_count" json:"productCount"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user"`
	ProductID  primitive.ObjectID `bson:"product_id" json:"product"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	Images     []Image            `bson:"images,omitempty" json:"images,omitempty"`
	IsVerified bool               `bson:"is_verified" json:"isVerified"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CartItem carries the unit price snapshotted when the item was added. Order
// totals use this price, not the product's live price.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OrderItem is a frozen copy of the product at order time.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress Address            `bson:"shipping_address" json:"shippingAddress"`
	BillingAddress  Address            `bson:"billing_address" json:"billingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus   string             `bson:"payment_status" json:"paymentStatus"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	Shipping        float64            `bson:"shipping" json:"shipping"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"orderStatus"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"trackingNumber,omitempty"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// HasShipped reports whether the status implies a shipping timestamp.
func (s OrderStatus) HasShipped() bool {
	return s == OrderShipped || s == OrderDelivered
}

const (
	// TaxRate is applied to the order subtotal.
	TaxRate = 0.08
	// FreeShippingThreshold is the subtotal above which shipping is free.
	FreeShippingThreshold = 100.0
	// ShippingFee is charged at or below the threshold.
	ShippingFee = 9.99
)

// LineItem is one product within an order, with price and name snapshots.
type LineItem struct {
	ProductID   bson.ObjectID `bson:"productId" json:"productId"`
	ProductName string        `bson:"productName" json:"productName"`
	SKU         string        `bson:"sku" json:"sku"`
	Quantity    int           `bson:"quantity" json:"quantity"`
	Price       float64       `bson:"price" json:"price"`
	Total       float64       `bson:"total" json:"total"`
}

// Order is a customer purchase.
type Order struct {
	ID              bson.ObjectID `bson:"_id" json:"id"`
	OrderNumber     string        `bson:"orderNumber" json:"orderNumber"`
	UserID          bson.ObjectID `bson:"userId" json:"userId"`
	Items           []LineItem    `bson:"items" json:"items"`
	Subtotal        float64       `bson:"subtotal" json:"subtotal"`
	Tax             float64       `bson:"tax" json:"tax"`
	Shipping        float64       `bson:"shipping" json:"shipping"`
	Total           float64       `bson:"total" json:"total"`
	Status          OrderStatus   `bson:"status" json:"status"`
	ShippingAddress Address       `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string        `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
	ShippedAt       *time.Time    `bson:"shippedAt" json:"shippedAt"`
	DeliveredAt     *time.Time    `bson:"deliveredAt" json:"deliveredAt"`
}

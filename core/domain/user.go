package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role of a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// AccountStatus is shared by users and products.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

type Name struct {
	First string `bson:"first" json:"first"`
	Last  string `bson:"last" json:"last"`
}

type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

type Preferences struct {
	Newsletter    bool   `bson:"newsletter" json:"newsletter"`
	Notifications bool   `bson:"notifications" json:"notifications"`
	Currency      string `bson:"currency" json:"currency"`
	Language      string `bson:"language" json:"language"`
}

// User is a customer or administrator account.
type User struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Email       string        `bson:"email" json:"email"`
	Password    string        `bson:"password" json:"password"`
	Name        Name          `bson:"name" json:"name"`
	Phone       string        `bson:"phone" json:"phone"`
	Address     Address       `bson:"address" json:"address"`
	Preferences Preferences   `bson:"preferences" json:"preferences"`
	Role        Role          `bson:"role" json:"role"`
	Status      AccountStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	LastLogin   time.Time     `bson:"lastLogin" json:"lastLogin"`
}

// Customers returns the users whose role is customer, preserving order.
func Customers(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == RoleCustomer {
			out = append(out, u)
		}
	}
	return out
}

// UserIDs returns the identities of users in order.
func UserIDs(users []User) []bson.ObjectID {
	ids := make([]bson.ObjectID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

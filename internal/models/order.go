package models

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusDelivered = "Delivered"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID              int64       `json:"id"`
	Reference       string      `json:"reference"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	City            string      `json:"city"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ListingID string `json:"listingId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl"`
}

// Total returns the order value summed over its items.
func (o *Order) Total() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

type DashboardStats struct {
	TotalListings     int `json:"totalListings"`
	AvailableListings int `json:"availableListings"`
	TotalCategories   int `json:"totalCategories"`
	CategoriesInUse   int `json:"categoriesInUse"`
	TotalOrders       int `json:"totalOrders"`
	PendingOrders     int `json:"pendingOrders"`
	ConfirmedOrders   int `json:"confirmedOrders"`
	DeliveredOrders   int `json:"deliveredOrders"`
}

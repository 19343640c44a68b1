package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Store-side order statuses.
const (
	StoreStatusPending  = "PENDING"
	StoreStatusReady    = "READY"
	StoreStatusPickedUp = "PICKED_UP"
)

// Admin-side order statuses.
const (
	OrderStatusPlaced     = "ORDER_PLACED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// StoreStatuses returns the closed set of statuses a merchant may set.
func StoreStatuses() []string {
	return []string{StoreStatusPending, StoreStatusReady, StoreStatusPickedUp}
}

// AdminStatuses returns the closed set of statuses an administrator may set.
func AdminStatuses() []string {
	return []string{OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
}

// OrderItem is a line of a placed order.
type OrderItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name,omitempty"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
}

func (o *OrderItem) UnmarshalJSON(b []byte) error {
	var w struct {
		ProductID     json.RawMessage     `json:"productId"`
		Product       json.RawMessage     `json:"product"`
		Name          string              `json:"name"`
		Quantity      FlexInt             `json:"quantity"`
		Price         decimal.NullDecimal `json:"price"`
		SelectedColor string              `json:"selectedColor"`
		SelectedSize  string              `json:"selectedSize"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	o.ProductID = firstID(w.ProductID, w.Product)
	o.Name = w.Name
	if o.Name == "" && len(w.Product) > 0 && w.Product[0] == '{' {
		var p struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(w.Product, &p)
		o.Name = p.Name
	}
	o.Quantity = int(w.Quantity)
	o.Price = w.Price.Decimal
	o.SelectedColor = w.SelectedColor
	o.SelectedSize = w.SelectedSize
	return nil
}

// Order is a placed order as returned by the order endpoints.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId,omitempty"`
	StoreID       string          `json:"storeId,omitempty"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	AddressID     string          `json:"addressId,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID       json.RawMessage     `json:"_id"`
		ID            json.RawMessage     `json:"id"`
		User          json.RawMessage     `json:"user"`
		UserID        json.RawMessage     `json:"userId"`
		Store         json.RawMessage     `json:"store"`
		StoreID       json.RawMessage     `json:"storeId"`
		Items         []OrderItem         `json:"items"`
		TotalAmount   decimal.NullDecimal `json:"totalAmount"`
		Total         decimal.NullDecimal `json:"total"`
		Status        string              `json:"status"`
		PaymentMethod string              `json:"paymentMethod"`
		Address       json.RawMessage     `json:"address"`
		AddressID     json.RawMessage     `json:"addressId"`
		CreatedAt     *time.Time          `json:"createdAt"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	o.ID = firstID(w.MongoID, w.ID)
	o.UserID = firstID(w.UserID, w.User)
	o.StoreID = firstID(w.StoreID, w.Store)
	o.Items = w.Items
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	o.TotalAmount = w.TotalAmount.Decimal
	if !w.TotalAmount.Valid {
		o.TotalAmount = w.Total.Decimal
	}
	o.Status = w.Status
	o.PaymentMethod = w.PaymentMethod
	o.AddressID = firstID(w.AddressID, w.Address)
	o.CreatedAt = w.CreatedAt
	return nil
}

// NewOrder is the checkout request.
type NewOrder struct {
	AddressID     string `json:"addressId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=COD CARD ONLINE"`
}

// StoreStatusUpdate is a merchant status change.
type StoreStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=PENDING READY PICKED_UP"`
}

// AdminStatusUpdate is an administrator status change.
type AdminStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=ORDER_PLACED PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// Invoice is the merchant view of an order's bill.
type Invoice struct {
	OrderID       string          `json:"orderId"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status,omitempty"`
	IssuedAt      *time.Time      `json:"issuedAt,omitempty"`
}

func (i *Invoice) UnmarshalJSON(b []byte) error {
	var w struct {
		OrderID       json.RawMessage     `json:"orderId"`
		Order         json.RawMessage     `json:"order"`
		MongoID       json.RawMessage     `json:"_id"`
		InvoiceNumber string              `json:"invoiceNumber"`
		Customer      *struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"customer"`
		Items    []OrderItem         `json:"items"`
		Subtotal decimal.NullDecimal `json:"subtotal"`
		Tax      decimal.NullDecimal `json:"tax"`
		Total    decimal.NullDecimal `json:"total"`
		Status   string              `json:"status"`
		IssuedAt *time.Time          `json:"issuedAt"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	i.OrderID = firstID(w.OrderID, w.Order, w.MongoID)
	i.InvoiceNumber = w.InvoiceNumber
	if w.Customer != nil {
		i.CustomerName = w.Customer.Name
		i.CustomerEmail = w.Customer.Email
	}
	i.Items = w.Items
	if i.Items == nil {
		i.Items = []OrderItem{}
	}
	i.Subtotal = w.Subtotal.Decimal
	i.Tax = w.Tax.Decimal
	i.Total = w.Total.Decimal
	i.Status = w.Status
	i.IssuedAt = w.IssuedAt
	return nil
}

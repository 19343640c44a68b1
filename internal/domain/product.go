package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a catalog category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID json.RawMessage `json:"_id"`
		ID      json.RawMessage `json:"id"`
		Name    string          `json:"name"`
		Slug    string          `json:"slug"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.ID = firstID(w.MongoID, w.ID)
	c.Name = w.Name
	c.Slug = w.Slug
	return nil
}

// Product is a catalog product as displayed by the storefront. The API owns
// every field; the client only normalizes shapes.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	CategoryID  string          `json:"categoryId,omitempty"`
	StoreID     string          `json:"storeId,omitempty"`
	Stock       int             `json:"stock"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
}

func (p *Product) UnmarshalJSON(b []byte) error {
	var w struct {
		MongoID     json.RawMessage     `json:"_id"`
		ID          json.RawMessage     `json:"id"`
		Name        string              `json:"name"`
		Description string              `json:"description"`
		Price       decimal.NullDecimal `json:"price"`
		Images      json.RawMessage     `json:"images"`
		Sizes       json.RawMessage     `json:"sizes"`
		Colors      json.RawMessage     `json:"colors"`
		Category    json.RawMessage     `json:"category"`
		Store       json.RawMessage     `json:"store"`
		StoreID     json.RawMessage     `json:"storeId"`
		Stock       FlexInt             `json:"stock"`
		CreatedAt   *time.Time          `json:"createdAt"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	p.ID = firstID(w.MongoID, w.ID)
	p.Name = w.Name
	p.Description = w.Description
	p.Price = w.Price.Decimal
	p.Images = ParseStringList(w.Images)
	p.Sizes = ParseStringList(w.Sizes)
	p.Colors = ParseStringList(w.Colors)
	p.CategoryID = ParseID(w.Category)
	p.StoreID = firstID(w.StoreID, w.Store)
	p.Stock = int(w.Stock)
	p.CreatedAt = w.CreatedAt
	return nil
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// IsEmpty reports whether the page holds no products.
func (p ProductPage) IsEmpty() bool { return len(p.Products) == 0 }

// ProductQuery filters a product listing. Zero values are omitted.
type ProductQuery struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
	StoreID  string `json:"store,omitempty"`
	Page     int    `json:"page,omitempty" validate:"gte=0"`
	Limit    int    `json:"limit,omitempty" validate:"gte=0,lte=100"`
}

// NewProduct is the merchant form for creating a product. Images are sent as
// multipart file parts.
type NewProduct struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Images      []Upload        `json:"-"`
}

// Upload is one file part of a multipart request.
type Upload struct {
	FieldName string
	FileName  string
	Data      []byte
}

func firstID(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if id := ParseID(raw); id != "" {
			return id
		}
	}
	return ""
}

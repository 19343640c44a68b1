package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_UnmarshalJSON_NormalizesShapes(t *testing.T) {
	body := `{
		"_id": "p1",
		"name": "Linen Shirt",
		"price": 49.9,
		"images": "[\"a.jpg\",\"b.jpg\"]",
		"sizes": "S, M ,L",
		"colors": ["white", ""],
		"category": {"_id": "c1", "name": "Shirts"},
		"store": "s1",
		"stock": "12"
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, "p1", p.ID)
	assert.True(t, decimal.RequireFromString("49.9").Equal(p.Price))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)
	assert.Equal(t, []string{"white"}, p.Colors)
	assert.Equal(t, "c1", p.CategoryID)
	assert.Equal(t, "s1", p.StoreID)
	assert.Equal(t, 12, p.Stock)
}

func TestProduct_UnmarshalJSON_MissingLists(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p2","price":"10.00"}`), &p))

	assert.Equal(t, "p2", p.ID)
	assert.NotNil(t, p.Sizes)
	assert.NotNil(t, p.Colors)
	assert.NotNil(t, p.Images)
	assert.True(t, decimal.NewFromInt(10).Equal(p.Price))
}

func TestCategory_UnmarshalJSON(t *testing.T) {
	var cats []Category
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"c1","name":"Shoes"},{"id":"c2","name":"Hats"}]`), &cats))
	require.Len(t, cats, 2)
	assert.Equal(t, "c1", cats[0].ID)
	assert.Equal(t, "c2", cats[1].ID)
}

func TestOrder_UnmarshalJSON(t *testing.T) {
	body := `{
		"_id": "o1",
		"user": {"_id": "u1"},
		"items": [{"product": {"_id": "p1", "name": "Hat"}, "quantity": 2, "price": 5}],
		"total": 10,
		"status": "PROCESSING"
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(body), &o))

	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "u1", o.UserID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "Hat", o.Items[0].Name)
	assert.True(t, decimal.NewFromInt(10).Equal(o.TotalAmount))
	assert.Equal(t, OrderStatusProcessing, o.Status)
}

func TestOrder_TotalAmountPreferred(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":"o2","totalAmount":"20.50","total":1}`), &o))
	assert.True(t, decimal.RequireFromString("20.50").Equal(o.TotalAmount))
	assert.NotNil(t, o.Items)
}

func TestInvoice_UnmarshalJSON(t *testing.T) {
	body := `{
		"order": {"_id": "o1"},
		"invoiceNumber": "INV-7",
		"customer": {"name": "Ada", "email": "ada@example.com"},
		"subtotal": 100,
		"tax": 18,
		"total": 118
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(body), &inv))

	assert.Equal(t, "o1", inv.OrderID)
	assert.Equal(t, "INV-7", inv.InvoiceNumber)
	assert.Equal(t, "Ada", inv.CustomerName)
	assert.True(t, decimal.NewFromInt(118).Equal(inv.Total))
	assert.NotNil(t, inv.Items)
}

func TestUser_UnmarshalJSON_StoreShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"storeId", `{"_id":"u1","storeId":"s1"}`, "s1"},
		{"store_id", `{"_id":"u1","store_id":"s2"}`, "s2"},
		{"store object", `{"_id":"u1","store":{"_id":"s3","name":"Shop"}}`, "s3"},
		{"no store", `{"_id":"u1"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, "u1", u.ID)
			assert.Equal(t, tt.want, u.StoreID)
		})
	}
}

func TestAccountSummary_ActiveDefaultsTrue(t *testing.T) {
	var rows []AccountSummary
	require.NoError(t, json.Unmarshal([]byte(`[
		{"_id":"u1","role":"customer"},
		{"_id":"u2","role":"seller","isActive":false},
		{"_id":"u3","active":false}
	]`), &rows))

	require.Len(t, rows, 3)
	assert.True(t, rows[0].IsActive)
	assert.False(t, rows[1].IsActive)
	assert.Equal(t, RoleSeller, rows[1].Role)
	assert.False(t, rows[2].IsActive)
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole("admin"))
	assert.True(t, IsValidRole("seller"))
	assert.False(t, IsValidRole("root"))
}

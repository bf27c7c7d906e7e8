package cart

import (
	"encoding/base64"
	"testing"

	"github.com/vitrina-next/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name string, images ...string) models.Product {
	return models.Product{ID: id, Name: name, Images: models.StringArray(images)}
}

func TestAddTwiceMergesIntoOneLine(t *testing.T) {
	p := product("p1", "Taza", "taza.png", "taza2.png")
	c := Cart{}.Add(p, decimal.RequireFromString("10"))
	c = c.Add(p, decimal.RequireFromString("99"))

	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity)
	assert.Equal(t, "10.00", c[0].Price, "price snapshot must not be recomputed")
	assert.Equal(t, "taza.png", c[0].Image)
}

func TestAddDoesNotMutateReceiver(t *testing.T) {
	original := Cart{{ProductID: "p1", Name: "Taza", Price: "1.00", Quantity: 1}}
	_ = original.Add(product("p1", "Taza"), decimal.NewFromInt(1))
	assert.Equal(t, 1, original[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	c := Cart{}.Add(product("p1", "A"), decimal.NewFromInt(3)).Add(product("p2", "B"), decimal.NewFromInt(4))

	c = c.SetQuantity("p2", 5)
	assert.Equal(t, 5, c[1].Quantity)

	c = c.SetQuantity("p1", 0)
	require.Len(t, c, 1)
	assert.Equal(t, "p2", c[0].ProductID)

	c = c.SetQuantity("p2", -3)
	assert.Empty(t, c)

	c = Cart{}.SetQuantity("missing", 2)
	assert.Empty(t, c)
}

func TestRemovePruneClear(t *testing.T) {
	c := Cart{}.Add(product("p1", "A"), decimal.NewFromInt(3)).Add(product("p2", "B"), decimal.NewFromInt(4))

	assert.Len(t, c.Remove("nope"), 2)
	assert.Len(t, c.Prune("p1"), 1)
	assert.Empty(t, c.Clear())
}

func TestSyncProductKeepsPrice(t *testing.T) {
	c := Cart{}.Add(product("p1", "Viejo", "old.png"), decimal.RequireFromString("7.5"))
	c = c.SyncProduct(product("p1", "Nuevo", "new.png"))

	assert.Equal(t, "Nuevo", c[0].Name)
	assert.Equal(t, "new.png", c[0].Image)
	assert.Equal(t, "7.50", c[0].Price)
}

func TestCountAndSubtotal(t *testing.T) {
	c := Cart{
		{ProductID: "p1", Name: "A", Price: "10.00", Quantity: 2},
		{ProductID: "p2", Name: "B", Price: "5.00", Quantity: 1},
		{ProductID: "p3", Name: "C", Price: "oops", Quantity: 4},
	}
	assert.Equal(t, 7, c.Count())
	assert.Equal(t, "25.00", c.Subtotal().StringFixed(2))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := Cart{
		{ProductID: "p1", Name: "Café de Colombia ☕", Price: "10.00", Quantity: 2, Image: "https://img/1.png"},
		{ProductID: "p2", Name: "Té", Price: "5.00", Quantity: 1},
	}
	token := Encode(c)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")

	decoded, ok := Decode(token)
	require.True(t, ok)
	assert.Equal(t, c, decoded)
}

func TestDecodeEmptyCart(t *testing.T) {
	decoded, ok := Decode(Encode(Cart{}))
	require.True(t, ok)
	assert.Empty(t, decoded)
}

func TestDecodeAcceptsStandardBase64(t *testing.T) {
	raw := `[{"productId":"p1","name":"Taza","price":"3.00","quantity":1}]`
	decoded, ok := Decode(base64.StdEncoding.EncodeToString([]byte(raw)))
	require.True(t, ok)
	assert.Equal(t, "p1", decoded[0].ProductID)
}

func TestDecodeRejectsTamperedTokens(t *testing.T) {
	token := Encode(Cart{{ProductID: "p1", Name: "A", Price: "1.00", Quantity: 1}})

	cases := map[string]string{
		"empty":     "",
		"truncated": token[:len(token)/2],
		"garbage":   "%%%not-base64%%%",
	}
	for name, input := range cases {
		_, ok := Decode(input)
		assert.False(t, ok, name)
	}
}

func TestDecodeRejectsWrongShapes(t *testing.T) {
	shapes := []string{
		`{"productId":"p1"}`,
		`null`,
		`[1,2]`,
		`[{"productId":1,"name":"A","price":"1","quantity":1}]`,
		`[{"productId":"p1","name":"A","price":1.5,"quantity":1}]`,
		`[{"productId":"p1","name":"A","price":"1","quantity":0}]`,
		`[{"productId":"p1","name":"A","price":"1","quantity":"2"}]`,
		`[{"productId":"p1","name":"A","price":"1","quantity":1.5}]`,
		`[{"productId":"p1","price":"1","quantity":1}]`,
	}
	for _, shape := range shapes {
		_, ok := Decode(base64.RawURLEncoding.EncodeToString([]byte(shape)))
		assert.False(t, ok, shape)
	}
}

func TestDecodeMergesDuplicateProducts(t *testing.T) {
	raw := `[{"productId":"p1","name":"A","price":"1.00","quantity":1},{"productId":"p1","name":"A","price":"1.00","quantity":2}]`
	decoded, ok := Decode(base64.RawURLEncoding.EncodeToString([]byte(raw)))
	require.True(t, ok)
	require.Len(t, decoded, 1)
	assert.Equal(t, 3, decoded[0].Quantity)
}

package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: "sar-001", Variant: "", UnitPrice: 1899900, Quantity: 1, Name: "Kāñjīvaram Silk Saree", ImageURL: "/k.jpg"},
		{ProductID: "kur-008", Variant: "M", UnitPrice: 249900, Quantity: 3, Name: "Chikankari \"Kurta\""},
	}

	data, err := Encode(items)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	again, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encode/decode/encode is idempotent")
}

func TestCodec_EmptyCart(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1,"items":[]}`, string(data))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCodec_WireFormat(t *testing.T) {
	data, err := Encode([]domain.LineItem{{ProductID: "P1", Variant: "M", UnitPrice: 999, Quantity: 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1,"items":[{"product_id":"P1","variant":"M","unit_price":999,"quantity":2}]}`, string(data))
}

func TestDecode_RejectsCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not-json`},
		{"truncated", `{"v":1,"items":[{"product_id":"P1"`},
		{"wrong shape", `{"v":1,"items":{"product_id":"P1"}}`},
		{"missing version", `{"items":[]}`},
		{"future version", `{"v":2,"items":[]}`},
		{"empty product id", `{"v":1,"items":[{"product_id":"","unit_price":1,"quantity":1}]}`},
		{"zero quantity", `{"v":1,"items":[{"product_id":"P1","unit_price":1,"quantity":0}]}`},
		{"negative price", `{"v":1,"items":[{"product_id":"P1","unit_price":-1,"quantity":1}]}`},
		{"line total out of range", `{"v":1,"items":[{"product_id":"P1","unit_price":9223372036854775807,"quantity":2}]}`},
		{"subtotal out of range", `{"v":1,"items":[{"product_id":"P1","unit_price":9223372036854775807,"quantity":1},{"product_id":"P2","unit_price":1,"quantity":1}]}`},
		{"duplicate key", `{"v":1,"items":[{"product_id":"P1","variant":"M","unit_price":1,"quantity":1},{"product_id":"P1","variant":"M","unit_price":1,"quantity":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptSnapshot))
			assert.Nil(t, items)
		})
	}
}

func TestDecode_SameProductDifferentVariantsIsValid(t *testing.T) {
	items, err := Decode([]byte(`{"v":1,"items":[{"product_id":"P1","variant":"M","unit_price":1,"quantity":1},{"product_id":"P1","variant":"L","unit_price":1,"quantity":1}]}`))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

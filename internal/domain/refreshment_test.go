package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func TestParseOrderItems_EquivalentShapes(t *testing.T) {
	legacy := json.RawMessage(`{"Bebidas": ["Água", "Café"], "Lanches": ["Pão de queijo"]}`)
	canonical := json.RawMessage(`[
		{"name": "Água", "quantity": 1},
		{"name": "Café", "quantity": 1},
		{"name": "Pão de queijo", "quantity": 1}
	]`)

	fromLegacy, err := domain.ParseOrderItems(legacy)
	require.NoError(t, err)
	fromCanonical, err := domain.ParseOrderItems(canonical)
	require.NoError(t, err)

	assert.Equal(t, fromCanonical, fromLegacy)
	assert.Equal(t, []domain.OrderItem{
		{Name: "Água", Quantity: 1},
		{Name: "Café", Quantity: 1},
		{Name: "Pão de queijo", Quantity: 1},
	}, fromLegacy)
}

func TestParseOrderItems_CategoryOrderFollowsDocument(t *testing.T) {
	items, err := domain.ParseOrderItems(json.RawMessage(`{"Z": ["último"], "A": ["primeiro"]}`))
	require.NoError(t, err)

	assert.Equal(t, []domain.OrderItem{
		{Name: "último", Quantity: 1},
		{Name: "primeiro", Quantity: 1},
	}, items)
}

func TestParseOrderItems_Variants(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected []domain.OrderItem
	}{
		{
			name:     "item key and default quantity",
			payload:  `[{"item": " Café "}, {"name": "Água", "quantity": 3}]`,
			expected: []domain.OrderItem{{Name: "Café", Quantity: 1}, {Name: "Água", Quantity: 3}},
		},
		{
			name:     "blank item falls back to name",
			payload:  `[{"name": "", "item": "Agua"}, {"item": "  ", "name": "Chá"}]`,
			expected: []domain.OrderItem{{Name: "Agua", Quantity: 1}, {Name: "Chá", Quantity: 1}},
		},
		{
			name:     "item wins over name",
			payload:  `[{"name": "Água", "item": "Suco"}]`,
			expected: []domain.OrderItem{{Name: "Suco", Quantity: 1}},
		},
		{
			name:     "double encoded list",
			payload:  `"[{\"name\": \"Suco\", \"quantity\": 2}]"`,
			expected: []domain.OrderItem{{Name: "Suco", Quantity: 2}},
		},
		{
			name:     "double encoded map",
			payload:  `"{\"Bebidas\": [\"Chá\"]}"`,
			expected: []domain.OrderItem{{Name: "Chá", Quantity: 1}},
		},
		{name: "null", payload: `null`, expected: []domain.OrderItem{}},
		{name: "empty", payload: ``, expected: []domain.OrderItem{}},
		{name: "empty list", payload: `[]`, expected: []domain.OrderItem{}},
		{name: "empty map", payload: `{}`, expected: []domain.OrderItem{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := domain.ParseOrderItems(json.RawMessage(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestParseOrderItems_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"number", `42`},
		{"list of strings", `["Café"]`},
		{"missing name", `[{"quantity": 2}]`},
		{"blank name", `[{"name": "   "}]`},
		{"blank item and name", `[{"item": "", "name": " "}]`},
		{"zero quantity", `[{"name": "Café", "quantity": 0}]`},
		{"negative quantity", `[{"name": "Café", "quantity": -1}]`},
		{"fractional quantity", `[{"name": "Café", "quantity": 1.5}]`},
		{"category is not a list", `{"Bebidas": "Café"}`},
		{"category with objects", `{"Bebidas": [{"name": "Café"}]}`},
		{"broken json", `[{"name": "Café"`},
		{"string inside string", `"\"[]\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := domain.ParseOrderItems(json.RawMessage(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedOrderPayload)
			assert.Nil(t, items)
		})
	}
}

func TestDeliveryStatus_Toggled(t *testing.T) {
	assert.Equal(t, domain.DeliveryDelivered, domain.DeliveryPending.Toggled())
	assert.Equal(t, domain.DeliveryPending, domain.DeliveryDelivered.Toggled())
	assert.Equal(t, domain.DeliveryPending, domain.DeliveryPending.Toggled().Toggled())
}

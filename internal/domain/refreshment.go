package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DeliveryStatus delivery state of a refreshment order, independent of BookingStatus
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
)

// IsValid returns true if the delivery status is recognized
func (s DeliveryStatus) IsValid() bool {
	return s == DeliveryPending || s == DeliveryDelivered
}

// Toggled returns the opposite delivery status
func (s DeliveryStatus) Toggled() DeliveryStatus {
	if s == DeliveryDelivered {
		return DeliveryPending
	}
	return DeliveryDelivered
}

// OrderItem canonical refreshment order line
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// RefreshmentOrder is attached 1:1 to a booking that wants refreshments
type RefreshmentOrder struct {
	ID             int64
	BookingID      int64
	Items          []OrderItem
	DeliveryStatus DeliveryStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// orderPayloadShape форма входного JSON заказа
type orderPayloadShape int

const (
	shapeEmpty         orderPayloadShape = iota
	shapeItemList                        // [{"name": "Água", "quantity": 2}]
	shapeCategoryMap                     // {"Bebidas": ["Água", "Café"]}
	shapeEncodedString                   // "[...]" - JSON, сохранённый строкой
	shapeUnknown
)

func detectOrderShape(raw []byte) orderPayloadShape {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return shapeEmpty
	}
	switch trimmed[0] {
	case '[':
		return shapeItemList
	case '{':
		return shapeCategoryMap
	case '"':
		return shapeEncodedString
	default:
		return shapeUnknown
	}
}

// ParseOrderItems normalizes both supported payload shapes into the canonical
// {name, quantity} sequence. Category map keys keep their document order.
func ParseOrderItems(raw json.RawMessage) ([]OrderItem, error) {
	return parseOrderItems(raw, true)
}

func parseOrderItems(raw []byte, allowEncoded bool) ([]OrderItem, error) {
	var (
		items []OrderItem
		err   error
	)

	switch detectOrderShape(raw) {
	case shapeEmpty:
		return []OrderItem{}, nil
	case shapeItemList:
		items, err = parseItemList(raw)
	case shapeCategoryMap:
		items, err = parseCategoryMap(raw)
	case shapeEncodedString:
		if !allowEncoded {
			return nil, malformed("nested string payload")
		}
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, malformed("invalid string payload: %v", err)
		}
		return parseOrderItems([]byte(inner), false)
	default:
		return nil, malformed("payload must be a list of items or a map of categories")
	}
	if err != nil {
		return nil, err
	}

	if len(items) > MaxOrderItems {
		return nil, malformed("too many items: %d (max %d)", len(items), MaxOrderItems)
	}
	return items, nil
}

type rawListItem struct {
	Name     *string      `json:"name"`
	Item     *string      `json:"item"`
	Quantity *json.Number `json:"quantity"`
}

func parseItemList(raw []byte) ([]OrderItem, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, malformed("invalid item list: %v", err)
	}

	items := make([]OrderItem, 0, len(elems))
	for i, elem := range elems {
		if detectOrderShape(elem) != shapeCategoryMap {
			return nil, malformed("item %d must be an object", i)
		}

		dec := json.NewDecoder(bytes.NewReader(elem))
		dec.UseNumber()
		var ri rawListItem
		if err := dec.Decode(&ri); err != nil {
			return nil, malformed("item %d: %v", i, err)
		}

		name, err := normalizeItemName(firstNonBlank(ri.Item, ri.Name))
		if err != nil {
			return nil, malformed("item %d: %v", i, err)
		}

		quantity := 1
		if ri.Quantity != nil {
			q, err := strconv.ParseInt(ri.Quantity.String(), 10, 32)
			if err != nil || q <= 0 {
				return nil, malformed("item %d: quantity must be a positive integer", i)
			}
			quantity = int(q)
		}

		items = append(items, OrderItem{Name: name, Quantity: quantity})
	}

	return items, nil
}

// parseCategoryMap разбирает исторический формат {категория: [названия]}.
// Используется потоковый декодер, чтобы сохранить порядок категорий из документа
func parseCategoryMap(raw []byte) ([]OrderItem, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil {
		return nil, malformed("invalid category map: %v", err)
	}

	items := make([]OrderItem, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed("invalid category map: %v", err)
		}
		category, ok := tok.(string)
		if !ok {
			return nil, malformed("invalid category key %v", tok)
		}

		var names []string
		if err := dec.Decode(&names); err != nil {
			return nil, malformed("category %q must be a list of item names", category)
		}

		for _, n := range names {
			name, err := normalizeItemName(n)
			if err != nil {
				return nil, malformed("category %q: %v", category, err)
			}
			items = append(items, OrderItem{Name: name, Quantity: 1})
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("invalid category map: %v", err)
	}
	if dec.More() {
		return nil, malformed("unexpected data after category map")
	}

	return items, nil
}

// firstNonBlank возвращает первое непустое значение, item приоритетнее name
func firstNonBlank(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}

func normalizeItemName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("item name is required")
	}
	if len([]rune(name)) > MaxOrderItemNameLen {
		return "", fmt.Errorf("item name is longer than %d characters", MaxOrderItemNameLen)
	}
	return name, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedOrderPayload, fmt.Sprintf(format, args...))
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Colunas JSON genéricas (endereço de entrega, payload de webhook, dimensões...)
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("tipo inválido para coluna JSON")
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("tipo inválido para coluna JSON")
}

// Item do pedido: snapshot imutável do produto no momento da compra.
// Mudança posterior de preço não afeta pedidos existentes.
type OrderItem struct {
	ProductId uint    `json:"productId" validate:"required,gt=0"`
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Image     string  `json:"image,omitempty"`
}

type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]OrderItem{})
	}
	return json.Marshal(l)
}

func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("tipo inválido para coluna JSON")
}

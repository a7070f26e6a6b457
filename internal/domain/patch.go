package domain

import (
	"bytes"
	"encoding/json"
)

// Optional carries a value together with whether it was supplied at all.
// Decoding an explicit JSON null still marks the field as supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// OrderPatch describes a partial update. Only supplied fields are written.
type OrderPatch struct {
	CustomerName Optional[string]
	Item         Optional[string]
	Quantity     Optional[int]
	Status       Optional[Status]
}

func (p OrderPatch) IsEmpty() bool {
	return !p.CustomerName.Set && !p.Item.Set && !p.Quantity.Set && !p.Status.Set
}

// Apply copies supplied fields onto o without touching timestamps.
func (p OrderPatch) Apply(o *Order) {
	if p.CustomerName.Set {
		o.CustomerName = p.CustomerName.Value
	}
	if p.Item.Set {
		o.Item = p.Item.Value
	}
	if p.Quantity.Set {
		o.Quantity = p.Quantity.Value
	}
	if p.Status.Set {
		o.Status = p.Status.Value
	}
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reserved document keys managed by the store
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// IsReserved reports whether name is a store-managed key.
func IsReserved(name string) bool {
	return name == FieldID || name == FieldCreatedAt || name == FieldUpdatedAt
}

// Fields maps field names to values
type Fields map[string]Value

// NewFields converts a plain map into Fields.
func NewFields(m map[string]any) (Fields, error) {
	out := make(Fields, len(m))
	for k, raw := range m {
		v, err := FromInterface(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Clone deep-copies the field map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v.Clone()
	}
	return out
}

// Plain converts the fields into a map of plain Go values.
func (f Fields) Plain() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Interface()
	}
	return out
}

// Document is a stored record with its store-assigned metadata.
type Document struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    Fields
}

// Get returns the named field. The reserved key "id" resolves to the document id.
func (d Document) Get(name string) (Value, bool) {
	if name == FieldID {
		return String(d.ID), d.ID != ""
	}
	v, ok := d.Fields[name]
	return v, ok
}

// StringField returns a string field or "".
func (d Document) StringField(name string) string {
	v, _ := d.Get(name)
	s, _ := v.AsString()
	return s
}

// NumberField returns a numeric field and whether it was present and numeric.
func (d Document) NumberField(name string) (float64, bool) {
	v, _ := d.Get(name)
	return v.AsNumber()
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	d.Fields = d.Fields.Clone()
	return d
}

// MarshalJSON flattens metadata and fields into one object, the persisted layout.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[FieldID] = d.ID
	out[FieldCreatedAt] = d.CreatedAt.UTC().Format(time.RFC3339Nano)
	if !d.UpdatedAt.IsZero() {
		out[FieldUpdatedAt] = d.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, ok := raw[FieldID].AsString()
	if !ok || id == "" {
		return fmt.Errorf("document: missing id")
	}

	doc := Document{ID: id, Fields: make(Fields, len(raw))}
	for k, v := range raw {
		switch k {
		case FieldID:
		case FieldCreatedAt, FieldUpdatedAt:
			s, _ := v.AsString()
			if s == "" {
				continue
			}
			ts, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return fmt.Errorf("document %s: %s: %w", id, k, err)
			}
			if k == FieldCreatedAt {
				doc.CreatedAt = ts
			} else {
				doc.UpdatedAt = ts
			}
		default:
			doc.Fields[k] = v
		}
	}
	*d = doc
	return nil
}

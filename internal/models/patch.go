package models

// Update is a single field mutation inside a Patch
type Update struct {
	value Value
	union []Value
	merge bool
}

// Set overwrites the field with v.
func Set(v Value) Update { return Update{value: v} }

// ArrayUnion appends each element not already present (by structural equality)
// to the array field, creating the field as an empty array first if needed.
func ArrayUnion(elems ...Value) Update {
	return Update{union: append([]Value{}, elems...), merge: true}
}

// Patch is a set of field mutations applied by the store's update operation
type Patch map[string]Update

// Apply merges p into fields in place.
func (p Patch) Apply(fields Fields) {
	for _, name := range sortedKeys(p) {
		u := p[name]
		if !u.merge {
			fields[name] = u.value.Clone()
			continue
		}

		existing, ok := fields[name].AsArray()
		if !ok {
			existing = []Value{}
		}
		for _, elem := range u.union {
			if !containsValue(existing, elem) {
				existing = append(existing, elem.Clone())
			}
		}
		fields[name] = Value{kind: KindArray, arr: existing}
	}
}

func containsValue(vs []Value, v Value) bool {
	for _, e := range vs {
		if e.Equal(v) {
			return true
		}
	}
	return false
}

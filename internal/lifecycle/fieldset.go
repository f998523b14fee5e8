package lifecycle

import (
	"encoding/json"
	"sort"
)

// FieldSet names the fields a mutation explicitly set. A field that is
// present with a null value was cleared; an absent field is untouched.
type FieldSet struct {
	all    bool
	fields map[string]struct{}
}

// AllFields is the set used for create, where every field is being set.
func AllFields() FieldSet {
	return FieldSet{all: true}
}

func Fields(names ...string) FieldSet {
	fs := FieldSet{fields: make(map[string]struct{}, len(names))}
	for _, n := range names {
		fs.fields[n] = struct{}{}
	}
	return fs
}

// FieldsFromJSON collects the top-level keys of a JSON object body.
func FieldsFromJSON(body []byte) (FieldSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return FieldSet{}, err
	}

	fs := FieldSet{fields: make(map[string]struct{}, len(raw))}
	for k := range raw {
		fs.fields[k] = struct{}{}
	}
	return fs, nil
}

func (f FieldSet) Has(name string) bool {
	if f.all {
		return true
	}
	_, ok := f.fields[name]
	return ok
}

func (f FieldSet) Empty() bool {
	return !f.all && len(f.fields) == 0
}

func (f FieldSet) Names() []string {
	names := make([]string, 0, len(f.fields))
	for n := range f.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Assign copies *v into dst when name was changed; a nil v resets dst to
// its zero value.
func Assign[V any](changed FieldSet, name string, dst *V, v *V) {
	if !changed.Has(name) {
		return
	}
	if v == nil {
		var zero V
		*dst = zero
		return
	}
	*dst = *v
}

// AssignRef sets an optional field when name was changed; nil clears it.
func AssignRef[V any](changed FieldSet, name string, dst **V, v *V) {
	if !changed.Has(name) {
		return
	}
	if v == nil {
		*dst = nil
		return
	}
	cp := *v
	*dst = &cp
}

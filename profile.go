package profiler

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Placeholder strings a model may emit for fields it could not find. They
// count as empty everywhere a field's presence is tested.
var placeholders = map[string]struct{}{
	"not available": {},
	"not found":     {},
	"n/a":           {},
	"":              {},
}

// FieldValue holds one profile leaf. A leaf is either a string or a list of
// strings; models occasionally return numbers, nulls or nested objects and
// those are coerced on decode rather than rejected.
type FieldValue struct {
	Str  string
	List []string
}

// UnmarshalJSON accepts strings, numbers, booleans, nulls, arrays and
// objects. Arrays become lists with scalar elements stringified and object
// elements flattened. Objects flatten to "key: value" lines.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = coerceValue(raw)
	return nil
}

// MarshalJSON writes the list form when present, the string otherwise.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.List != nil {
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Str)
}

// IsZero reports whether the leaf carries no usable content. Placeholder
// strings such as "Not available" count as empty.
func (v FieldValue) IsZero() bool {
	if len(v.List) > 0 {
		return false
	}
	_, placeholder := placeholders[strings.ToLower(strings.TrimSpace(v.Str))]
	return placeholder
}

// String renders the leaf for display, joining lists with "; ".
func (v FieldValue) String() string {
	if v.List != nil {
		return strings.Join(v.List, "; ")
	}
	return v.Str
}

func coerceValue(raw any) FieldValue {
	switch t := raw.(type) {
	case nil:
		return FieldValue{}
	case string:
		return FieldValue{Str: t}
	case float64:
		return FieldValue{Str: trimFloat(t)}
	case bool:
		return FieldValue{Str: fmt.Sprintf("%t", t)}
	case []any:
		list := make([]string, 0, len(t))
		for _, el := range t {
			if s := coerceValue(el).String(); s != "" {
				list = append(list, s)
			}
		}
		return FieldValue{List: list}
	case map[string]any:
		return FieldValue{Str: flattenObject(t)}
	default:
		return FieldValue{Str: fmt.Sprintf("%v", t)}
	}
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%v", f)
	return s
}

func flattenObject(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := coerceValue(m[k]).String(); s != "" {
			parts = append(parts, k+": "+s)
		}
	}
	return strings.Join(parts, ", ")
}

// Profile is the structured result of an extraction: section name to field
// name to value. Salvaged marks profiles recovered by regex fallback after
// the model returned unparseable output.
type Profile struct {
	Sections map[string]map[string]FieldValue `json:"sections"`
	Salvaged bool                             `json:"salvaged,omitempty"`
}

// NewProfile returns an empty profile ready for Set calls.
func NewProfile() *Profile {
	return &Profile{Sections: make(map[string]map[string]FieldValue)}
}

// UnmarshalProfile decodes a model response body, a flat two-level JSON
// object, into a Profile. Unknown sections and fields are kept; Normalize
// prunes them against a template.
func UnmarshalProfile(data []byte) (*Profile, error) {
	var sections map[string]map[string]FieldValue
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, Errorf(EINVALID, "decode profile: %v", err)
	}
	if sections == nil {
		sections = make(map[string]map[string]FieldValue)
	}
	return &Profile{Sections: sections}, nil
}

// Get returns the leaf value for section/field, zero if absent.
func (p *Profile) Get(section, field string) FieldValue {
	if p == nil || p.Sections == nil {
		return FieldValue{}
	}
	return p.Sections[section][field]
}

// Set stores a leaf value, creating the section if needed.
func (p *Profile) Set(section, field string, v FieldValue) {
	if p.Sections == nil {
		p.Sections = make(map[string]map[string]FieldValue)
	}
	if p.Sections[section] == nil {
		p.Sections[section] = make(map[string]FieldValue)
	}
	p.Sections[section][field] = v
}

// Normalize prunes sections and fields not declared in the template and
// coerces each kept leaf to its declared kind. It never invents sections
// the model did not return, so mandatory-section checks still see gaps.
func (p *Profile) Normalize(t Template) {
	if p == nil || p.Sections == nil {
		return
	}
	for name, fields := range p.Sections {
		section, ok := t.Section(name)
		if !ok {
			delete(p.Sections, name)
			continue
		}
		declared := make(map[string]FieldKind, len(section.Fields))
		for _, f := range section.Fields {
			declared[f.Name] = f.Kind
		}
		for fname, v := range fields {
			kind, ok := declared[fname]
			if !ok {
				delete(fields, fname)
				continue
			}
			fields[fname] = coerceKind(v, kind)
		}
	}
}

func coerceKind(v FieldValue, kind FieldKind) FieldValue {
	switch kind {
	case KindList:
		if v.List == nil && !v.IsZero() {
			return FieldValue{List: []string{v.Str}}
		}
	case KindString:
		if v.List != nil {
			return FieldValue{Str: strings.Join(v.List, "; ")}
		}
	}
	return v
}

// FilledCount returns how many leaves in the profile carry usable content.
func (p *Profile) FilledCount() int {
	if p == nil {
		return 0
	}
	var n int
	for _, fields := range p.Sections {
		for _, v := range fields {
			if !v.IsZero() {
				n++
			}
		}
	}
	return n
}

// LeafCount returns the total number of leaves the profile holds.
func (p *Profile) LeafCount() int {
	if p == nil {
		return 0
	}
	var n int
	for _, fields := range p.Sections {
		n += len(fields)
	}
	return n
}

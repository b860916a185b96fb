package vra

import (
	"encoding/json"
	"strconv"
)

// LabelRef is a reference to another entity by ID with a display label.
type LabelRef struct {
	ID    string `json:"id"              yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// IDRef is a bare reference to another entity by ID, used in request payloads.
type IDRef struct {
	ID string `json:"id" yaml:"id"`
}

// Organization identifies the tenant and business group an entity belongs to.
type Organization struct {
	TenantRef      string `json:"tenantRef"                yaml:"tenantRef"`
	TenantLabel    string `json:"tenantLabel,omitempty"    yaml:"tenantLabel,omitempty"`
	SubtenantRef   string `json:"subtenantRef,omitempty"   yaml:"subtenantRef,omitempty"`
	SubtenantLabel string `json:"subtenantLabel,omitempty" yaml:"subtenantLabel,omitempty"`
}

// Link represents a hypermedia link in a paged response.
type Link struct {
	Type string `json:"@type,omitempty" yaml:"type,omitempty"`
	Rel  string `json:"rel"             yaml:"rel"`
	Href string `json:"href"            yaml:"href"`
}

// PageMetadata describes the pagination state of a list response.
type PageMetadata struct {
	Size          int `json:"size"          yaml:"size"`
	TotalElements int `json:"totalElements" yaml:"totalElements"`
	TotalPages    int `json:"totalPages"    yaml:"totalPages"`
	Number        int `json:"number"        yaml:"number"`
	Offset        int `json:"offset"        yaml:"offset"`
}

// PagedResponse represents a paginated list response.
type PagedResponse[T any] struct {
	Links    []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Content  []T          `json:"content"         yaml:"content"`
	Metadata PageMetadata `json:"metadata"        yaml:"metadata"`
}

// Literal is one node of the literal-value tree the catalog service uses for
// loosely typed data sections (resourceData, requestData). A node is either a
// scalar (Value), a list (Items), or a nested map (Values).
type Literal struct {
	Type            string          `json:"type,omitempty"`
	ComponentTypeID string          `json:"componentTypeId,omitempty"`
	ComponentID     string          `json:"componentId,omitempty"`
	ClassID         string          `json:"classId,omitempty"`
	TypeFilter      string          `json:"typeFilter,omitempty"`
	Value           json.RawMessage `json:"value,omitempty"`
	Items           []*Literal      `json:"items,omitempty"`
	Values          *LiteralMap     `json:"values,omitempty"`
}

// LiteralMap is an ordered set of keyed literal values.
type LiteralMap struct {
	Entries []LiteralEntry `json:"entries"`
}

// LiteralEntry is one key/value pair of a LiteralMap.
type LiteralEntry struct {
	Key   string   `json:"key"`
	Value *Literal `json:"value"`
}

// Get returns the literal stored under key, or nil when the key is absent.
func (m *LiteralMap) Get(key string) *Literal {
	if m == nil {
		return nil
	}

	for _, entry := range m.Entries {
		if entry.Key == key {
			return entry.Value
		}
	}

	return nil
}

// GetString returns the scalar string stored under key. The second return
// value reports whether the key exists and holds a string.
func (m *LiteralMap) GetString(key string) (string, bool) {
	return m.Get(key).StringValue()
}

// Set stores a literal under key, replacing any existing entry.
func (m *LiteralMap) Set(key string, value *Literal) {
	for i, entry := range m.Entries {
		if entry.Key == key {
			m.Entries[i].Value = value

			return
		}
	}

	m.Entries = append(m.Entries, LiteralEntry{Key: key, Value: value})
}

// StringValue returns the node's scalar value as a string.
func (l *Literal) StringValue() (string, bool) {
	if l == nil || len(l.Value) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(l.Value, &s); err != nil {
		return "", false
	}

	return s, true
}

// BoolValue returns the node's scalar value as a bool.
func (l *Literal) BoolValue() (bool, bool) {
	if l == nil || len(l.Value) == 0 {
		return false, false
	}

	var b bool
	if err := json.Unmarshal(l.Value, &b); err != nil {
		return false, false
	}

	return b, true
}

// IntValue returns the node's scalar value as an int.
func (l *Literal) IntValue() (int, bool) {
	if l == nil || len(l.Value) == 0 {
		return 0, false
	}

	var n int
	if err := json.Unmarshal(l.Value, &n); err != nil {
		// Some endpoints serialize integers as quoted strings.
		s, ok := l.StringValue()
		if !ok {
			return 0, false
		}

		parsed, perr := strconv.Atoi(s)
		if perr != nil {
			return 0, false
		}

		return parsed, true
	}

	return n, true
}

// StringLiteral builds a scalar string literal node.
func StringLiteral(value string) *Literal {
	raw, _ := json.Marshal(value)

	return &Literal{Type: "string", Value: raw}
}

// BoolLiteral builds a scalar boolean literal node.
func BoolLiteral(value bool) *Literal {
	raw, _ := json.Marshal(value)

	return &Literal{Type: "boolean", Value: raw}
}

// IntLiteral builds a scalar integer literal node.
func IntLiteral(value int) *Literal {
	raw, _ := json.Marshal(value)

	return &Literal{Type: "integer", Value: raw}
}

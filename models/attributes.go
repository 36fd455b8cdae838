package models

import (
	"encoding/json"
	"slices"
	"time"
)

// Value is a sealed interface for attribute values handed to the sync engine.
// Only String, Int, Bool, StringList and Null implement it.
type Value interface {
	attrValue()
}

type String string

func (String) attrValue() {}

// Int holds integers and millisecond timestamps
type Int int64

func (Int) attrValue() {}

type Bool bool

func (Bool) attrValue() {}

// StringList is an ordered list of strings, used for tag lists
type StringList []string

func (StringList) attrValue() {}

// Null marks an absent value (nullable columns)
type Null struct{}

func (Null) attrValue() {}

// Attributes maps field names to typed values
type Attributes map[string]Value

// Attribute keys shared by notes and tags
const (
	AttrKey              = "simperiumKey"
	AttrTitle            = "title"
	AttrContent          = "content"
	AttrContentPreview   = "contentPreview"
	AttrCreationDate     = "creationDate"
	AttrModificationDate = "modificationDate"
	AttrDeleted          = "deleted"
	AttrLastPosition     = "lastPosition"
	AttrPinned           = "pinned"
	AttrShareURL         = "shareURL"
	AttrSystemTags       = "systemTags"
	AttrTags             = "tags"
	AttrName             = "name"
	AttrTagIndex         = "tagIndex"
)

// NoteAttributes builds the attribute mapping for a note. The row id is
// never included.
func NoteAttributes(n *Note) Attributes {
	var shareURL Value = Null{}
	if n.ShareURL != "" {
		shareURL = String(n.ShareURL)
	}
	return Attributes{
		AttrKey:              String(n.Key),
		AttrTitle:            String(n.Title),
		AttrContent:          String(n.Content),
		AttrContentPreview:   String(n.ContentPreview),
		AttrCreationDate:     Int(UnixMillis(n.CreationDate)),
		AttrModificationDate: Int(UnixMillis(n.ModificationDate)),
		AttrDeleted:          Bool(n.Deleted),
		AttrLastPosition:     Int(n.LastPosition),
		AttrPinned:           Bool(n.Pinned),
		AttrShareURL:         shareURL,
		AttrSystemTags:       stringList(n.SystemTags),
		AttrTags:             stringList(n.Tags),
	}
}

// TagAttributes builds the attribute mapping for a tag
func TagAttributes(t *Tag) Attributes {
	return Attributes{
		AttrKey:      String(t.Key),
		AttrName:     String(t.Name),
		AttrTagIndex: Int(t.Index),
	}
}

// UnixMillis converts t to milliseconds since the epoch; the zero time is 0
func UnixMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func stringList(values []string) StringList {
	if values == nil {
		return StringList{}
	}
	return StringList(slices.Clone(values))
}

// String returns the string stored under key
func (a Attributes) String(key string) (string, bool) {
	v, ok := a[key].(String)
	return string(v), ok
}

// Int returns the integer stored under key
func (a Attributes) Int(key string) (int64, bool) {
	v, ok := a[key].(Int)
	return int64(v), ok
}

// Bool returns the boolean stored under key
func (a Attributes) Bool(key string) (bool, bool) {
	v, ok := a[key].(Bool)
	return bool(v), ok
}

// StringList returns the list stored under key
func (a Attributes) StringList(key string) ([]string, bool) {
	v, ok := a[key].(StringList)
	return []string(v), ok
}

// IsNull reports whether key holds an explicit null
func (a Attributes) IsNull(key string) bool {
	_, ok := a[key].(Null)
	return ok
}

// Plain converts the mapping into untyped Go values for encoders
func (a Attributes) Plain() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		switch val := v.(type) {
		case String:
			out[k] = string(val)
		case Int:
			out[k] = int64(val)
		case Bool:
			out[k] = bool(val)
		case StringList:
			out[k] = []string(val)
		default:
			out[k] = nil
		}
	}
	return out
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Plain())
}

func (a Attributes) MarshalYAML() (interface{}, error) {
	return a.Plain(), nil
}

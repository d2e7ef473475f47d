package models

import "strings"

// Marker prefixes some writers leave on the first header cell. Excel and
// a few Windows tools emit a UTF-8 BOM before the first field name.
var markerPrefixes = []string{"\ufeff"}

// NormalizeField strips known invisible marker prefixes from a field name.
func NormalizeField(name string) string {
	for _, prefix := range markerPrefixes {
		name = strings.TrimPrefix(name, prefix)
	}
	return name
}

// SafeString replaces bytes that are not valid UTF-8 so diagnostic output
// can always be encoded.
func SafeString(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// Record is one article row, keyed by field name exactly as stored.
type Record map[string]string

// Get returns the value of the named field, tolerating a marker-prefixed
// variant of the field name left over from a previous write.
func (r Record) Get(name string) string {
	if value, ok := r[name]; ok {
		return value
	}
	for stored, value := range r {
		if NormalizeField(stored) == name {
			return value
		}
	}
	return ""
}

// ID returns the record's identifier. An empty result means the record has
// no resolvable identity and must never be deduplicated.
func (r Record) ID() string {
	return r.Get("id")
}

// PubDate returns the record's publication date string, unvalidated.
func (r Record) PubDate() string {
	return r.Get("pubDate")
}

// Set is an ordered record set as read from one storage location. Fields
// holds the header exactly as stored, Records the rows in insertion order.
type Set struct {
	Fields  []string
	Records []Record
}

func (s *Set) Len() int {
	return len(s.Records)
}

func (s *Set) Empty() bool {
	return len(s.Records) == 0
}

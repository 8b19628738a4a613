package md2blog

import "strings"

// Recognized header keys.
const (
	KeyTimestamp       = "timestamp"
	KeyTitle           = "title"
	KeyBodyClasses     = "body_classes"
	KeyExcludeFromList = "exclude_from_list"
)

// Metadata holds a post's header fields. Recognized keys have their own
// fields; everything else is kept in Extra.
type Metadata struct {
	Timestamp       string
	Title           string
	BodyClasses     string
	ExcludeFromList string
	Extra           map[string]string
}

// NewMetadata sorts header fields into recognized keys and Extra.
func NewMetadata(fields map[string]string) Metadata {
	m := Metadata{Extra: make(map[string]string)}
	for k, v := range fields {
		switch k {
		case KeyTimestamp:
			m.Timestamp = v
		case KeyTitle:
			m.Title = v
		case KeyBodyClasses:
			m.BodyClasses = v
		case KeyExcludeFromList:
			m.ExcludeFromList = v
		default:
			m.Extra[k] = v
		}
	}
	return m
}

// Value returns the value of any header key, recognized or not, or "" when
// the header does not set it. Templates reach custom keys through it.
func (m Metadata) Value(key string) string {
	switch key {
	case KeyTimestamp:
		return m.Timestamp
	case KeyTitle:
		return m.Title
	case KeyBodyClasses:
		return m.BodyClasses
	case KeyExcludeFromList:
		return m.ExcludeFromList
	}
	return m.Extra[key]
}

// Excluded reports whether exclude_from_list is set. Any non-blank value
// counts, "false" included.
func (m Metadata) Excluded() bool {
	return strings.TrimSpace(m.ExcludeFromList) != ""
}

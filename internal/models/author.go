package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AuthorKind tells which JSON shape an Author was decoded from.
type AuthorKind int

const (
	// PlainName is an author given as a bare string.
	PlainName AuthorKind = iota
	// NamedAuthor is an author given as an object with a name field.
	NamedAuthor
)

// UnknownAuthor is shown when a recipe carries no usable author name.
const UnknownAuthor = "Unknown Author"

// Author is either a plain name or a named record. Upstream data uses both.
type Author struct {
	Kind AuthorKind
	Name string
}

// Plain returns a PlainName author.
func Plain(name string) Author {
	return Author{Kind: PlainName, Name: name}
}

// Named returns a NamedAuthor author.
func Named(name string) Author {
	return Author{Kind: NamedAuthor, Name: name}
}

// AsNamed converts a plain author into the record form.
func (a Author) AsNamed() Author {
	return Named(a.Name)
}

// DisplayName returns the name, or UnknownAuthor when it is empty.
func (a Author) DisplayName() string {
	if a.Name == "" {
		return UnknownAuthor
	}
	return a.Name
}

func (a Author) MarshalJSON() ([]byte, error) {
	if a.Kind == NamedAuthor {
		return json.Marshal(struct {
			Name string `json:"name"`
		}{Name: a.Name})
	}
	return json.Marshal(a.Name)
}

// UnmarshalJSON accepts a string, an object with a name, or null. Any other
// shape decodes to a NamedAuthor without a name.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty author value")
	}

	switch data[0] {
	case 'n':
		*a = Author{}
		return nil
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("failed to decode author name: %w", err)
		}
		*a = Plain(name)
		return nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("failed to decode author record: %w", err)
		}
		var name string
		if raw, ok := fields["name"]; ok {
			// a non-string name is treated as missing
			_ = json.Unmarshal(raw, &name)
		}
		*a = Named(name)
		return nil
	default:
		*a = Named("")
		return nil
	}
}

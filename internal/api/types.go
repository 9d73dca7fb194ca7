package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// ID is the server-assigned identifier of a repository. The service may send
// it as a JSON string or number; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts both `"abc"` and `42`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as sent on the wire.
func (id ID) String() string {
	return string(id)
}

// Repository mirrors one record of /repositories.
type Repository struct {
	ID    ID       `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
	Likes int      `json:"likes"`
}

// Clone returns a copy that shares no slices with r.
func (r Repository) Clone() Repository {
	r.Techs = slices.Clone(r.Techs)
	return r
}

// Equal reports whether two records carry the same field values.
func (r Repository) Equal(other Repository) bool {
	return r.ID == other.ID &&
		r.Title == other.Title &&
		r.URL == other.URL &&
		r.Likes == other.Likes &&
		slices.Equal(r.Techs, other.Techs)
}

// NewRepository is the body of POST /repositories.
type NewRepository struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Techs []string `json:"techs"`
}

// MarshalJSON always emits techs as an array, never null.
func (n NewRepository) MarshalJSON() ([]byte, error) {
	type payload NewRepository
	p := payload(n)
	if p.Techs == nil {
		p.Techs = []string{}
	}
	return json.Marshal(p)
}

package valueobjects

import (
	"encoding/json"
	"errors"
	"strings"
)

// ArtistRef identifies an artist in a user's preference set. Older clients
// stored artists as bare name strings; UnmarshalJSON accepts both forms so
// legacy payloads normalize transparently at the boundary.
type ArtistRef struct {
	ID       string `json:"id,omitempty" dynamodbav:"id,omitempty"`
	Name     string `json:"name" dynamodbav:"name"`
	ImageURL string `json:"image_url,omitempty" dynamodbav:"image_url,omitempty"`
}

// NewArtistRef creates an artist reference from a name
func NewArtistRef(name string) (ArtistRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ArtistRef{}, errors.New("artist name cannot be empty")
	}
	return ArtistRef{Name: name}, nil
}

// Key returns the identity used for similarity matching: the catalog ID when
// present, otherwise the case-folded name.
func (a ArtistRef) Key() string {
	if a.ID != "" {
		return "id:" + a.ID
	}
	return "name:" + strings.ToLower(strings.TrimSpace(a.Name))
}

// Equals checks if two artist references identify the same artist
func (a ArtistRef) Equals(other ArtistRef) bool {
	return a.Key() == other.Key()
}

// UnmarshalJSON accepts either a structured object or a legacy bare string
func (a *ArtistRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		ref, err := NewArtistRef(name)
		if err != nil {
			return err
		}
		*a = ref
		return nil
	}

	type alias ArtistRef
	var parsed alias
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	if strings.TrimSpace(parsed.Name) == "" {
		return errors.New("artist name cannot be empty")
	}
	parsed.Name = strings.TrimSpace(parsed.Name)
	*a = ArtistRef(parsed)
	return nil
}

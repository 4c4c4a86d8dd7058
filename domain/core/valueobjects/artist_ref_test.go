package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistRefUnmarshalJSON(t *testing.T) {
	t.Run("accepts legacy bare strings", func(t *testing.T) {
		var refs []ArtistRef
		err := json.Unmarshal([]byte(`["Radiohead", " Bjork "]`), &refs)
		require.NoError(t, err)

		require.Len(t, refs, 2)
		assert.Equal(t, "Radiohead", refs[0].Name)
		assert.Equal(t, "Bjork", refs[1].Name)
		assert.Empty(t, refs[0].ID)
	})

	t.Run("accepts structured objects", func(t *testing.T) {
		var ref ArtistRef
		err := json.Unmarshal([]byte(`{"id":"spot-1","name":"Radiohead","image_url":"https://img"}`), &ref)
		require.NoError(t, err)

		assert.Equal(t, "spot-1", ref.ID)
		assert.Equal(t, "Radiohead", ref.Name)
		assert.Equal(t, "https://img", ref.ImageURL)
	})

	t.Run("rejects empty names in either form", func(t *testing.T) {
		var ref ArtistRef
		assert.Error(t, json.Unmarshal([]byte(`""`), &ref))
		assert.Error(t, json.Unmarshal([]byte(`{"id":"spot-1","name":"  "}`), &ref))
	})
}

func TestArtistRefKey(t *testing.T) {
	t.Run("catalog ID wins over name", func(t *testing.T) {
		a := ArtistRef{ID: "spot-1", Name: "The Beatles"}
		b := ArtistRef{ID: "spot-1", Name: "Beatles, The"}

		assert.Equal(t, a.Key(), b.Key())
		assert.True(t, a.Equals(b))
	})

	t.Run("name keys are case folded", func(t *testing.T) {
		a := ArtistRef{Name: "Radiohead"}
		b := ArtistRef{Name: " RADIOHEAD "}

		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("ID and name keys never collide", func(t *testing.T) {
		withID := ArtistRef{ID: "radiohead"}
		withName := ArtistRef{Name: "radiohead"}

		assert.NotEqual(t, withID.Key(), withName.Key())
	})
}

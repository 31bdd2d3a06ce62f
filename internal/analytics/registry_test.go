package analytics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryYAML = `properties:
  - name: Leaderboard
    property_id: "471303810"
    credentials: leaderboard.json
  - name: GambleAssist
    property_id: "465958588"
    credentials: ssm:/analyticsbot/gambleassist
`

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte(registryYAML), 0o600))

	registry, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leaderboard", "GambleAssist"}, registry.Names())

	p, err := registry.Lookup("GambleAssist")
	require.NoError(t, err)
	assert.Equal(t, "properties/465958588", p.Resource())
	assert.Equal(t, "ssm:/analyticsbot/gambleassist", p.Credentials)
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry(Property{Name: "", PropertyID: "1", Credentials: "c"})
	assert.Error(t, err)

	_, err = NewRegistry(Property{Name: "a", PropertyID: "12x", Credentials: "c"})
	assert.Error(t, err)

	_, err = NewRegistry(Property{Name: "a", PropertyID: "1"})
	assert.Error(t, err)

	_, err = NewRegistry(
		Property{Name: "a", PropertyID: "1", Credentials: "c"},
		Property{Name: "a", PropertyID: "2", Credentials: "c"},
	)
	assert.Error(t, err)
}

func TestRegistry_Lookup(t *testing.T) {
	registry, err := NewRegistry(Property{Name: "Leaderboard", PropertyID: "1", Credentials: "c"})
	require.NoError(t, err)

	assert.True(t, registry.Has("Leaderboard"))
	assert.False(t, registry.Has("leaderboard"))

	_, err = registry.Lookup("Unknown")
	assert.True(t, errors.Is(err, ErrUnknownWebsite))
}

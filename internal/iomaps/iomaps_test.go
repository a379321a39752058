package iomaps

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
)

const playAddress = "Stanley Deason Leisure Centre, Wilson Avenue, Brighton BN2 5BP"

func TestRenderEmptyAddress(t *testing.T) {
	m := New(config.MapsConfig{StaticKey: "k"})
	refs := m.Render("", "somewhere")
	assert.Empty(t, refs.ImageURL)
	assert.Empty(t, refs.LinkURL)
	assert.False(t, refs.DualMarker)
}

func TestRenderSingleMarker(t *testing.T) {
	m := New(config.MapsConfig{StaticKey: "k", ImageSize: "600x400"})
	refs := m.Render(playAddress, "")

	assert.False(t, refs.DualMarker)
	assert.Empty(t, refs.ParkingImageURL)

	u, err := url.Parse(refs.ImageURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "16", q.Get("zoom"))
	assert.Equal(t, "600x400", q.Get("size"))
	assert.Equal(t, "k", q.Get("key"))
	require.Len(t, q["markers"], 1)
	assert.Equal(t, "label:P|"+playAddress, q["markers"][0])

	assert.True(t, strings.HasPrefix(refs.LinkURL,
		"https://www.google.com/maps/search/?api=1&query="))
}

func TestRenderDualMarker(t *testing.T) {
	m := New(config.MapsConfig{StaticKey: "k"})
	parking := "East Brighton Park car park, Wilson Avenue"
	refs := m.Render(playAddress, parking)

	assert.True(t, refs.DualMarker)

	u, err := url.Parse(refs.ImageURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "15", q.Get("zoom"))
	require.Len(t, q["markers"], 2)
	assert.Equal(t, "label:P|"+playAddress, q["markers"][0])
	assert.Equal(t, "label:C|"+parking, q["markers"][1])

	pu, err := url.Parse(refs.ParkingImageURL)
	require.NoError(t, err)
	pq := pu.Query()
	assert.Equal(t, "16", pq.Get("zoom"))
	require.Len(t, pq["markers"], 1)
	assert.Equal(t, "label:C|"+parking, pq["markers"][0])
}

func TestRenderSameParkingIsSingle(t *testing.T) {
	m := New(config.MapsConfig{StaticKey: "k"})

	// Punctuation and casing differences do not make parking separate.
	refs := m.Render(playAddress, strings.ToUpper(playAddress))
	assert.False(t, refs.DualMarker)
	assert.Empty(t, refs.ParkingImageURL)
}

func TestRenderWithoutKeyDegradesToLink(t *testing.T) {
	m := New(config.MapsConfig{})
	refs := m.Render(playAddress, "East Brighton Park car park")

	assert.Empty(t, refs.ImageURL)
	assert.Empty(t, refs.ParkingImageURL)
	assert.NotEmpty(t, refs.LinkURL)
	assert.True(t, refs.DualMarker)
}

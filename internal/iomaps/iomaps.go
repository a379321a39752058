// Package iomaps renders Google Maps references for fixture emails.
// Pure URL building; no network calls, so a missing API key or a bad
// address can never block fixture processing.
package iomaps

import (
	"net/url"

	"github.com/brucewayne1212/withdean-football-fixtures/pkg/config"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/maps"
	"github.com/brucewayne1212/withdean-football-fixtures/pkg/normalize"
)

const (
	staticBase = "https://maps.googleapis.com/maps/api/staticmap"
	searchBase = "https://www.google.com/maps/search/?api=1"

	singleZoom = "16"
	dualZoom   = "15"
)

type googleMapper struct {
	cfg config.MapsConfig
}

var _ maps.Mapper = (*googleMapper)(nil)

// New creates a Mapper from the maps configuration.
func New(cfg config.MapsConfig) maps.Mapper {
	return &googleMapper{cfg: cfg}
}

// Render builds the map references for a venue. Parking gets its own
// marker and map only when its address differs from the play address.
func (m *googleMapper) Render(address, parking string) maps.Refs {
	if address == "" {
		return maps.Refs{}
	}

	dual := parking != "" &&
		normalize.Key(parking) != normalize.Key(address)

	refs := maps.Refs{
		LinkURL:    m.searchLink(address),
		DualMarker: dual,
	}

	if m.cfg.StaticKey == "" {
		// Without a key the static image endpoints reject requests;
		// emails fall back to the link alone.
		return refs
	}

	if dual {
		refs.ImageURL = m.staticMap(dualZoom, [][2]string{
			{"P", address},
			{"C", parking},
		})
		refs.ParkingImageURL = m.staticMap(singleZoom, [][2]string{
			{"C", parking},
		})
	} else {
		refs.ImageURL = m.staticMap(singleZoom, [][2]string{
			{"P", address},
		})
	}
	return refs
}

// staticMap builds a static map URL with labeled markers. P marks the
// pitch, C the car park.
func (m *googleMapper) staticMap(zoom string, markers [][2]string) string {
	size := m.cfg.ImageSize
	if size == "" {
		size = "600x400"
	}

	v := url.Values{}
	v.Set("size", size)
	v.Set("zoom", zoom)
	v.Set("maptype", "roadmap")
	for _, mk := range markers {
		v.Add("markers", "label:"+mk[0]+"|"+mk[1])
	}
	v.Set("key", m.cfg.StaticKey)
	return staticBase + "?" + v.Encode()
}

func (m *googleMapper) searchLink(address string) string {
	return searchBase + "&query=" + url.QueryEscape(address)
}

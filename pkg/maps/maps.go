// Package maps defines map rendering for fixture emails.
package maps

// Refs holds the rendered map references for one venue.
type Refs struct {
	// ImageURL is a static map of the play address, with a parking
	// marker added when parking differs.
	ImageURL string

	// LinkURL opens the venue in an interactive map.
	LinkURL string

	// ParkingImageURL is a parking-only static map; empty when parking
	// is at the play address.
	ParkingImageURL string

	// DualMarker is true when the image carries separate pitch and
	// parking markers.
	DualMarker bool
}

// Mapper turns venue addresses into map references. Implementations
// must not error on empty input; an empty address yields zero Refs.
type Mapper interface {
	Render(address, parking string) Refs
}

package types

// Wire types for the Google Places API: text search for candidates, then
// place details for the address components the activity form needs.

type GooglePlacesSearchResponse struct {
	HTMLAttributions []string            `json:"html_attributions"`
	NextPageToken    string              `json:"next_page_token"`
	Results          []GooglePlaceResult `json:"results"`
	Status           string              `json:"status"`
	ErrorMessage     string              `json:"error_message"`
}

type GooglePlaceResult struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	PlaceID          string   `json:"place_id"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating,omitempty"`
}

type GooglePlaceDetailsResponse struct {
	Result GooglePlaceDetails `json:"result"`
	Status string             `json:"status"`
}

type GooglePlaceDetails struct {
	Name              string             `json:"name"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          Geometry           `json:"geometry"`
	PlaceID           string             `json:"place_id"`
	AddressComponents []AddressComponent `json:"address_components"`
}

// AddressComponent carries the structured pieces of an address; the
// Types tags ("locality", "administrative_area_level_1", "postal_code")
// identify which piece is which.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceCandidate is the API-facing shape of one geocoded place
// suggestion, ready to prefill the activity form.
type PlaceCandidate struct {
	PlaceID   string  `json:"placeId"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

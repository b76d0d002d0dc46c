package models

// GazetteerEntry is one row of the national address list. Street is only set for Kyoto-style
// addresses that carry a street-name tier between municipality and town-area.
type GazetteerEntry struct {
	Prefecture   string `json:"prefecture"`
	Municipality string `json:"municipality"`
	Street       string `json:"street,omitempty"`
	TownArea     string `json:"town_area,omitempty"`
	Chome        string `json:"chome,omitempty"`
}

// AddressRecord is the decomposed form of a single free-form Japanese address.
type AddressRecord struct {
	Address           string `json:"address"`
	NormalizedAddress string `json:"normalized_address"`

	Prefecture   string `json:"prefecture"`
	Municipality string `json:"municipality"`
	Street       string `json:"street"`
	TownArea     string `json:"town_area"`
	Block        string `json:"block"`
	Extension    string `json:"extension"`

	NormalizedPrefecture   string `json:"normalized_prefecture"`
	NormalizedMunicipality string `json:"normalized_municipality"`
	NormalizedStreet       string `json:"normalized_street"`
	NormalizedTownArea     string `json:"normalized_town_area"`
	NormalizedBlock        string `json:"normalized_block"`
	NormalizedExtension    string `json:"normalized_extension"`

	// Err is set when the prefecture could not be resolved unambiguously.
	Err error `json:"-"`
}

// Readings holds the katakana reading of the named components of an address.
type Readings struct {
	Prefecture   string `json:"prefecture,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	Street       string `json:"street,omitempty"`
	TownArea     string `json:"town_area,omitempty"`
}

// ParseResult is an AddressRecord as returned by the API.
type ParseResult struct {
	AddressRecord
	Error    string    `json:"error,omitempty"`
	Readings *Readings `json:"readings,omitempty"`
}

package config

import "strings"

// Place is a city or district offered by the location suggestions.
type Place struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// SupportedPlaces is the place directory backing the search autocomplete.
var SupportedPlaces = []Place{
	// Casablanca-Settat
	{Name: "Casablanca", Region: "Casablanca-Settat"},
	{Name: "Aïn Chock", Region: "Casablanca-Settat"},
	{Name: "Aïn Sebaâ", Region: "Casablanca-Settat"},
	{Name: "Hay Hassani", Region: "Casablanca-Settat"},
	{Name: "Sidi Moumen", Region: "Casablanca-Settat"},
	{Name: "Mohammedia", Region: "Casablanca-Settat"},
	{Name: "Settat", Region: "Casablanca-Settat"},
	{Name: "El Jadida", Region: "Casablanca-Settat"},
	{Name: "Azemmour", Region: "Casablanca-Settat"},
	{Name: "Benslimane", Region: "Casablanca-Settat"},
	{Name: "Berrechid", Region: "Casablanca-Settat"},

	// Rabat-Salé-Kénitra
	{Name: "Rabat", Region: "Rabat-Salé-Kénitra"},
	{Name: "Salé", Region: "Rabat-Salé-Kénitra"},
	{Name: "Témara", Region: "Rabat-Salé-Kénitra"},
	{Name: "Skhirat", Region: "Rabat-Salé-Kénitra"},
	{Name: "Kénitra", Region: "Rabat-Salé-Kénitra"},

	// Marrakech-Safi
	{Name: "Marrakech", Region: "Marrakech-Safi"},
	{Name: "Gueliz", Region: "Marrakech-Safi"},
	{Name: "Menara", Region: "Marrakech-Safi"},
	{Name: "Essaouira", Region: "Marrakech-Safi"},
	{Name: "Safi", Region: "Marrakech-Safi"},

	// Tanger-Tétouan-Al Hoceïma
	{Name: "Tanger", Region: "Tanger-Tétouan-Al Hoceïma"},
	{Name: "Tétouan", Region: "Tanger-Tétouan-Al Hoceïma"},
	{Name: "Martil", Region: "Tanger-Tétouan-Al Hoceïma"},
	{Name: "Al Hoceïma", Region: "Tanger-Tétouan-Al Hoceïma"},

	// Fès-Meknès
	{Name: "Fès", Region: "Fès-Meknès"},
	{Name: "Meknès", Region: "Fès-Meknès"},
	{Name: "Ifrane", Region: "Fès-Meknès"},

	// Souss-Massa
	{Name: "Agadir", Region: "Souss-Massa"},
	{Name: "Taroudant", Region: "Souss-Massa"},
	{Name: "Tiznit", Region: "Souss-Massa"},

	// Oriental
	{Name: "Oujda", Region: "Oriental"},
	{Name: "Nador", Region: "Oriental"},
	{Name: "Saïdia", Region: "Oriental"},
}

// PlaceNames returns the names of all supported places.
func PlaceNames() []string {
	names := make([]string, len(SupportedPlaces))
	for i, place := range SupportedPlaces {
		names[i] = place.Name
	}
	return names
}

// SearchPlaces returns places whose name or region contains the term,
// case-insensitively. An empty term returns the full directory.
func SearchPlaces(term string) []Place {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return SupportedPlaces
	}

	var matches []Place
	for _, place := range SupportedPlaces {
		if strings.Contains(strings.ToLower(place.Name), term) ||
			strings.Contains(strings.ToLower(place.Region), term) {
			matches = append(matches, place)
		}
	}
	return matches
}

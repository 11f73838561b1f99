package openflights

import "flightgraph/internal/parser/csv"

// Airline is one Airline node, merge-keyed on ID.
type Airline struct {
	ID       int64
	Name     *string
	Alias    *string
	IATA     *string
	ICAO     *string
	Callsign *string
	Country  *string
	Active   bool
}

// MapAirline shapes a parsed airlines.dat record into an Airline.
func MapAirline(line int, rec csv.Record) (Airline, error) {
	id, err := reqInt(rec, line, "airline_id")
	if err != nil {
		return Airline{}, err
	}

	a := Airline{
		ID:       id,
		Name:     optString(rec, "name"),
		Alias:    optString(rec, "alias"),
		IATA:     optString(rec, "iata"),
		ICAO:     optString(rec, "icao"),
		Callsign: optString(rec, "callsign"),
		Country:  optString(rec, "country"),
		Active:   optBool(rec, "active"),
	}

	// Airline IATA codes are two characters; the dataset also carries "-"
	// placeholders, which we keep as-is. Only outright wrong lengths reject.
	if a.IATA != nil && len(*a.IATA) > 3 {
		return Airline{}, MappingError{Line: line, Msg: "iata: code too long"}
	}

	return a, nil
}

// Params returns the query parameter map for the node upsert.
func (a Airline) Params() map[string]any {
	return map[string]any{
		"airline_id": a.ID,
		"name":       param(a.Name),
		"alias":      param(a.Alias),
		"iata":       param(a.IATA),
		"icao":       param(a.ICAO),
		"callsign":   param(a.Callsign),
		"country":    param(a.Country),
		"active":     a.Active,
	}
}

package openflights

import "flightgraph/internal/parser/csv"

// Airport is one Airport node. ID is unique across the dataset and is the
// merge key in the graph.
type Airport struct {
	ID             int64
	Name           string
	City           *string
	Country        *string
	IATA           *string
	ICAO           *string
	Latitude       *float64
	Longitude      *float64
	Altitude       *int64
	TimezoneOffset *float64
	DST            *string
	Timezone       *string
	Type           *string
	Source         *string
}

// MapAirport shapes a parsed airports.dat record into an Airport. It fails
// closed with a MappingError on semantic anomalies the dataset is known to
// contain (bad IATA length, missing name).
func MapAirport(line int, rec csv.Record) (Airport, error) {
	id, err := reqInt(rec, line, "airport_id")
	if err != nil {
		return Airport{}, err
	}

	name, ok := rec["name"].(string)
	if !ok || name == "" {
		return Airport{}, MappingError{Line: line, Msg: "name: missing"}
	}

	a := Airport{
		ID:             id,
		Name:           name,
		City:           optString(rec, "city"),
		Country:        optString(rec, "country"),
		IATA:           optString(rec, "iata"),
		ICAO:           optString(rec, "icao"),
		Latitude:       optFloat(rec, "latitude"),
		Longitude:      optFloat(rec, "longitude"),
		Altitude:       optInt(rec, "altitude"),
		TimezoneOffset: optFloat(rec, "timezone_offset"),
		DST:            optString(rec, "dst"),
		Timezone:       optString(rec, "timezone"),
		Type:           optString(rec, "type"),
		Source:         optString(rec, "source"),
	}

	if a.IATA != nil && len(*a.IATA) != 3 {
		return Airport{}, MappingError{Line: line, Msg: "iata: code must be 3 letters"}
	}

	return a, nil
}

// Params returns the query parameter map for the node upsert.
func (a Airport) Params() map[string]any {
	return map[string]any{
		"airport_id":      a.ID,
		"name":            a.Name,
		"city":            param(a.City),
		"country":         param(a.Country),
		"iata":            param(a.IATA),
		"icao":            param(a.ICAO),
		"latitude":        param(a.Latitude),
		"longitude":       param(a.Longitude),
		"altitude":        param(a.Altitude),
		"timezone_offset": param(a.TimezoneOffset),
		"dst":             param(a.DST),
		"timezone":        param(a.Timezone),
		"type":            param(a.Type),
		"source":          param(a.Source),
	}
}

// Package openflights defines the entity records loaded into the graph and
// the mapping from raw OpenFlights rows to those records.
//
// The three .dat files are headerless with fixed column orders; the column
// specifications here are the single source of truth for position, type,
// and nullability.
package openflights

import (
	"fmt"

	"flightgraph/internal/parser/csv"
)

// AirportColumns is the airports.dat schema.
//
// 0: airport id, 1: name, 2: city, 3: country, 4: IATA, 5: ICAO,
// 6: latitude, 7: longitude, 8: altitude, 9: timezone offset from UTC,
// 10: DST indicator, 11: tz database name, 12: type, 13: source.
func AirportColumns() []csv.Column {
	return []csv.Column{
		{Name: "airport_id", Type: csv.TypeInt},
		{Name: "name", Type: csv.TypeString},
		{Name: "city", Type: csv.TypeString, Nullable: true},
		{Name: "country", Type: csv.TypeString, Nullable: true},
		{Name: "iata", Type: csv.TypeString, Nullable: true},
		{Name: "icao", Type: csv.TypeString, Nullable: true},
		{Name: "latitude", Type: csv.TypeFloat, Nullable: true},
		{Name: "longitude", Type: csv.TypeFloat, Nullable: true},
		{Name: "altitude", Type: csv.TypeInt, Nullable: true},
		{Name: "timezone_offset", Type: csv.TypeFloat, Nullable: true},
		{Name: "dst", Type: csv.TypeString, Nullable: true},
		{Name: "timezone", Type: csv.TypeString, Nullable: true},
		{Name: "type", Type: csv.TypeString, Nullable: true},
		{Name: "source", Type: csv.TypeString, Nullable: true},
	}
}

// AirlineColumns is the airlines.dat schema.
//
// 0: airline id, 1: name, 2: alias, 3: IATA, 4: ICAO, 5: callsign,
// 6: country, 7: active (Y/N).
func AirlineColumns() []csv.Column {
	return []csv.Column{
		{Name: "airline_id", Type: csv.TypeInt},
		{Name: "name", Type: csv.TypeString, Nullable: true},
		{Name: "alias", Type: csv.TypeString, Nullable: true},
		{Name: "iata", Type: csv.TypeString, Nullable: true},
		{Name: "icao", Type: csv.TypeString, Nullable: true},
		{Name: "callsign", Type: csv.TypeString, Nullable: true},
		{Name: "country", Type: csv.TypeString, Nullable: true},
		{Name: "active", Type: csv.TypeBool, Nullable: true},
	}
}

// RouteColumns is the routes.dat schema.
//
// 0: airline code, 1: airline id, 2: source airport code, 3: source airport
// id, 4: destination airport code, 5: destination airport id, 6: codeshare
// ("Y" or empty), 7: stops, 8: equipment (space-separated aircraft codes).
//
// The id columns are nullable here; rows without resolvable source or
// destination ids are rejected by MapRoute rather than by the parser, so
// the rejection shows up in mapping counts the way the dataset's other
// anomalies do.
func RouteColumns() []csv.Column {
	return []csv.Column{
		{Name: "airline_code", Type: csv.TypeString, Nullable: true},
		{Name: "airline_id", Type: csv.TypeInt, Nullable: true},
		{Name: "src_code", Type: csv.TypeString, Nullable: true},
		{Name: "src_id", Type: csv.TypeInt, Nullable: true},
		{Name: "dst_code", Type: csv.TypeString, Nullable: true},
		{Name: "dst_id", Type: csv.TypeInt, Nullable: true},
		{Name: "codeshare", Type: csv.TypeBool, Nullable: true},
		{Name: "stops", Type: csv.TypeInt, Nullable: true},
		{Name: "equipment", Type: csv.TypeString, Nullable: true},
	}
}

// MappingError is a semantic per-row anomaly found while shaping a parsed
// record into an entity (negative stop count, bad IATA length, missing
// reference). These are warnings with a running count, never fatal.
type MappingError struct {
	Line int
	Msg  string
}

func (e MappingError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Msg)
}

// field helpers: the parser guarantees declared types, so type assertions
// here only guard against a record produced by a mismatched column spec.

func reqInt(rec csv.Record, line int, key string) (int64, error) {
	v, ok := rec[key].(int64)
	if !ok {
		return 0, MappingError{Line: line, Msg: fmt.Sprintf("%s: missing or not an integer", key)}
	}
	return v, nil
}

func optInt(rec csv.Record, key string) *int64 {
	if v, ok := rec[key].(int64); ok {
		return &v
	}
	return nil
}

func optFloat(rec csv.Record, key string) *float64 {
	if v, ok := rec[key].(float64); ok {
		return &v
	}
	return nil
}

func optString(rec csv.Record, key string) *string {
	if v, ok := rec[key].(string); ok {
		return &v
	}
	return nil
}

func optBool(rec csv.Record, key string) bool {
	v, _ := rec[key].(bool)
	return v
}

// param unwraps a pointer for use in a query parameter map; nil pointers
// become nil parameters, which the graph layer stores as absent properties.
func param[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

package openflights

import "flightgraph/internal/parser/csv"

// Route is one FLIGHT relationship between two airports. SrcID and DstID
// identify the endpoints; the remaining fields become relationship
// properties. Multiple routes may exist between the same airport pair.
type Route struct {
	AirlineCode *string
	AirlineID   *int64
	SrcID       int64
	DstID       int64
	Codeshare   bool
	Stops       int64
	Equipment   *string
}

// MapRoute shapes a parsed routes.dat record into a Route.
//
// Rows without a resolvable source or destination airport id are rejected
// here — the identifier is already present in the source row, so no lookup
// is involved; the dataset simply contains routes keyed only by code.
// A negative stop count is also rejected.
func MapRoute(line int, rec csv.Record) (Route, error) {
	src := optInt(rec, "src_id")
	dst := optInt(rec, "dst_id")
	if src == nil || dst == nil {
		return Route{}, MappingError{Line: line, Msg: "route references airports without ids"}
	}

	var stops int64
	if s := optInt(rec, "stops"); s != nil {
		stops = *s
	}
	if stops < 0 {
		return Route{}, MappingError{Line: line, Msg: "negative stop count"}
	}

	return Route{
		AirlineCode: optString(rec, "airline_code"),
		AirlineID:   optInt(rec, "airline_id"),
		SrcID:       *src,
		DstID:       *dst,
		Codeshare:   optBool(rec, "codeshare"),
		Stops:       stops,
		Equipment:   optString(rec, "equipment"),
	}, nil
}

// Params returns the query parameter map for the relationship write. The
// *_key entries are the null-free composite key used by the merge write
// mode; the create mode ignores them.
func (r Route) Params() map[string]any {
	var airlineKey int64 = -1
	if r.AirlineID != nil {
		airlineKey = *r.AirlineID
	}
	equipmentKey := ""
	if r.Equipment != nil {
		equipmentKey = *r.Equipment
	}

	return map[string]any{
		"airline_code":  param(r.AirlineCode),
		"airline_id":    param(r.AirlineID),
		"src_id":        r.SrcID,
		"dst_id":        r.DstID,
		"codeshare":     r.Codeshare,
		"stops":         r.Stops,
		"equipment":     param(r.Equipment),
		"airline_key":   airlineKey,
		"equipment_key": equipmentKey,
	}
}

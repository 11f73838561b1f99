package graph

// All queries take a single $rows parameter: a list of maps produced by the
// entity Params methods. One query execution per batch.

// MergeAirports upserts Airport nodes keyed on airport_id. SET overwrites
// all properties, so re-running a load converges instead of duplicating.
const MergeAirports = `
UNWIND $rows AS row
MERGE (a:Airport {airport_id: row.airport_id})
  SET a.name = row.name,
      a.city = row.city,
      a.country = row.country,
      a.iata = row.iata,
      a.icao = row.icao,
      a.latitude = row.latitude,
      a.longitude = row.longitude,
      a.altitude = row.altitude,
      a.timezone_offset = row.timezone_offset,
      a.dst = row.dst,
      a.timezone = row.timezone,
      a.type = row.type,
      a.source = row.source
`

// MergeAirlines upserts Airline nodes keyed on airline_id.
const MergeAirlines = `
UNWIND $rows AS row
MERGE (al:Airline {airline_id: row.airline_id})
  SET al.name = row.name,
      al.alias = row.alias,
      al.iata = row.iata,
      al.icao = row.icao,
      al.callsign = row.callsign,
      al.country = row.country,
      al.active = row.active
`

// CreateRoutes appends one FLIGHT relationship per row. The MATCH pair means
// rows referencing airports that were never loaded write nothing; the
// returned written count tells the writer how many rows found both
// endpoints, and it surfaces the remainder.
const CreateRoutes = `
UNWIND $rows AS row
MATCH (src:Airport {airport_id: row.src_id})
MATCH (dst:Airport {airport_id: row.dst_id})
CREATE (src)-[f:FLIGHT {
    airline_id: row.airline_id,
    airline_code: row.airline_code,
    codeshare: row.codeshare,
    stops: row.stops,
    equipment: row.equipment
}]->(dst)
RETURN count(f) AS written
`

// MergeRoutes merges FLIGHT relationships on the composite key (endpoints,
// airline, equipment), making route loads idempotent. MERGE cannot match on
// null properties, so the key lives in dedicated null-free properties
// (airline_key, equipment_key) and the nullable originals are SET after.
const MergeRoutes = `
UNWIND $rows AS row
MATCH (src:Airport {airport_id: row.src_id})
MATCH (dst:Airport {airport_id: row.dst_id})
MERGE (src)-[f:FLIGHT {airline_key: row.airline_key, equipment_key: row.equipment_key}]->(dst)
  SET f.airline_id = row.airline_id,
      f.airline_code = row.airline_code,
      f.codeshare = row.codeshare,
      f.stops = row.stops,
      f.equipment = row.equipment
RETURN count(f) AS written
`

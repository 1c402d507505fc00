package mysql

// -----------------------------------------------------------------------------
// WRITE QUERIES
// -----------------------------------------------------------------------------

// user_id is not in the update list; a trip keeps its owner.
const upsertTripSQL = `
INSERT INTO trips
  (id, user_id, trip_name, date_start, date_end, group_size, geography, budget_amount, budget_type,
   pass_types, lodging_preference, skill_min, skill_max, vibe, has_non_skiers, non_skier_importance, organizer_name)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  trip_name            = VALUES(trip_name),
  date_start           = VALUES(date_start),
  date_end             = VALUES(date_end),
  group_size           = VALUES(group_size),
  geography            = VALUES(geography),
  budget_amount        = VALUES(budget_amount),
  budget_type          = VALUES(budget_type),
  pass_types           = VALUES(pass_types),
  lodging_preference   = VALUES(lodging_preference),
  skill_min            = VALUES(skill_min),
  skill_max            = VALUES(skill_max),
  vibe                 = VALUES(vibe),
  has_non_skiers       = VALUES(has_non_skiers),
  non_skier_importance = VALUES(non_skier_importance),
  organizer_name       = VALUES(organizer_name)
`

const upsertGuestSQL = `
INSERT INTO guests
  (id, trip_id, name, airports, origin_city, skill_level, budget_min, budget_max, notes, status)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  airports    = VALUES(airports),
  origin_city = VALUES(origin_city),
  skill_level = VALUES(skill_level),
  budget_min  = VALUES(budget_min),
  budget_max  = VALUES(budget_max),
  notes       = VALUES(notes),
  status      = VALUES(status)
`

const insertRecommendationsSQL = `
INSERT INTO recommendations (id, trip_id, results, generated_at)
VALUES (?, ?, ?, ?)
`

const upsertFlightCacheSQL = `
INSERT INTO flight_cache (cache_key, payload, expires_at)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  payload    = VALUES(payload),
  expires_at = VALUES(expires_at)
`

const deleteFlightCacheSQL = `DELETE FROM flight_cache WHERE cache_key = ?`

const purgeFlightCacheSQL = `DELETE FROM flight_cache WHERE expires_at <= ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getTripSQL = `
SELECT id, user_id, trip_name, date_start, date_end, group_size, geography, budget_amount, budget_type,
       pass_types, lodging_preference, skill_min, skill_max, vibe, has_non_skiers, non_skier_importance, organizer_name
FROM trips
WHERE id = ?
`

const listGuestsSQL = `
SELECT id, trip_id, name, airports, origin_city, skill_level, budget_min, budget_max, notes, status
FROM guests
WHERE trip_id = ?
ORDER BY created_at, id
`

// Newest first; ties on generated_at fall back to id for a stable pick.
const latestRecommendationsSQL = `
SELECT id, trip_id, results, generated_at
FROM recommendations
WHERE trip_id = ?
ORDER BY generated_at DESC, id DESC
LIMIT 1
`

const getFlightCacheSQL = `
SELECT payload
FROM flight_cache
WHERE cache_key = ? AND expires_at > ?
`

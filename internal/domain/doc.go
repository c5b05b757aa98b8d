// Package domain models the office selection funnel: the country, state and
// city hierarchy, the facilities ("offices") attached to cities, and the
// ports the funnel uses to reach the outside world.
//
// # Data Source
//
// Locations and offices come from the allplace API (or local fixture files)
// as JSON. Two response layouts are accepted for the location tree:
//
//	[{"id":"..","name":"..","states":[...]}]          bare array
//	{"countries":[{"id":"..","name":"..", ...}]}      wrapped
//
// Offices arrive as a bare array or wrapped in "data" or "offices". Any other
// layout yields zero offices. See the hierarchy package for normalization.
//
// # Identifiers
//
// All IDs are opaque strings. A facility's CityID must match a City.ID in the
// loaded tree for the facility to be shown; dangling references are skipped,
// never treated as errors.
//
// # Remembered Selection
//
// The only state that survives a restart is the last confirmed facility ID,
// stored under the key "selectedOfficeId". Notification tokens are minted
// again on every launch and never persisted.
package domain

// Package store persists encoded stream details in a SQLite database.
//
// Each media path maps to one record holding the archived Details (sealed
// with a CRC-32C frame when archive.checksum is on) plus summary columns
// derived at write time: stream counts, the best video's codec, resolution
// and aspect labels, the best audio codec and channel count, and the best
// subtitle language under the configured ranking. The schema is created by
// embedded migrations applied in Open.
package store

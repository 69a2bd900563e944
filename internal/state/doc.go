// Package state persists yhdl's cross-run sync memory: per-artist check
// history, cached folder listings, the library scan cache and the ignore
// list, all in one JSON document.
//
// # Loading
//
// Load is fail-safe. A missing file, unparseable JSON or a structurally
// invalid artists map all yield the default empty state rather than an
// error: nothing meaningful was readable, so the next pass simply
// re-derives its work. Unknown top-level fields are preserved across a
// load/save round trip.
//
//	store, err := state.Load("/music/.yhdl/state.json", logger)
//
// # Saving
//
// The document is written back whole, exactly once per sync pass. Save
// errors are fatal for the run; there is no write-ahead log for this
// single-writer, low-stakes file.
package state

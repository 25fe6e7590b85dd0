// Package ledger records pipeline run history in SQLite for the status
// command. The ledger never drives pipeline decisions: whether a phase runs
// again is decided from artifacts on disk, so the database can be deleted at
// any time without affecting output.
package ledger

// Package extract converts staged documents to plain text by shelling out to
// an external converter CLI.
//
// The Executor abstraction keeps the stage testable without the real binary
// installed. Conversion is bounded by a per-call timeout; a hung or failing
// converter fails only the item being converted.
package extract

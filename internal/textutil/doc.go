// Package textutil provides the boilerplate boundary heuristic used when
// cleaning extracted report text.
//
// The boundary predicate is pluggable so its false-positive/negative
// behaviour stays documented and testable rather than implicit.
package textutil

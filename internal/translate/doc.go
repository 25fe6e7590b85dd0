// Package translate produces the English rendition of an assembled
// highlights document. Freshness is decided by file modification times
// alone, matching the rest of the pipeline's artifact-driven idempotence.
package translate

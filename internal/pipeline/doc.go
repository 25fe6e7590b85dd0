// Package pipeline drives staged reports through conversion, cleaning, and
// summarization on a bounded worker pool. Phase outputs are plain files laid
// out per period; a phase with its artifact already on disk is skipped, so
// re-running a period is cheap and only fills gaps.
package pipeline

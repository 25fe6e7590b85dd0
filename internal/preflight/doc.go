// Package preflight runs readiness checks before a pipeline run: LLM
// reachability, converter binary resolution, and free disk space in the
// content store.
package preflight

// Package llm wraps the OpenAI-compatible chat completion API used for
// summarization and translation.
//
// Requests are deliberately single-shot: a failed or empty completion fails
// the calling item instead of retrying, matching the pipeline's
// drop-on-failure semantics.
package llm

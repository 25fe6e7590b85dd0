// Package highlight normalizes report summaries into canonically dated
// entries and assembles them into the final highlights document.
//
// The normalizer splits a summary into header and bullets, then reconciles
// any embedded date against the trusted period anchor: the first parseable
// date (ISO, Chinese 年月日, or English month forms) found in the header,
// summary, or cleaned text is accepted only within a configurable ±N-day
// window; otherwise the anchor date substitutes. Output is always well
// formed, even for empty or colon-less headers.
package highlight

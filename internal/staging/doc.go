// Package staging moves raw inbox reports into the content store.
//
// Each report gets a stable item id derived from its filename (the last
// '-'-delimited token, extension stripped) and lives in the store as
// {item_id}{ext}. Staging is strictly sequential and completes before any
// parallel conversion begins, because it mutates the shared inbox directory.
// Originals are deleted only after a verified copy; per-item failures never
// abort the batch.
package staging

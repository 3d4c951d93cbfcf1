// Package dbhandler inserts log entries into a SQL table through gorm,
// supporting the mysql and postgres dialects.
//
// Entries are queued to a background goroutine and inserted in batches,
// either when the batch fills or on a flush interval. Structured fields
// are stored as a JSON column and the call site, when captured, is
// rendered as "file:line" in the caller column. A full queue drops
// entries so logging never blocks on the database.
package dbhandler

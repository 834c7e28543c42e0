// Package curate selects records and trims segments to a requested time window.
//
// Selection happens while records are read: Criteria.Admit keeps any record
// that overlaps the window and whose source identifier passes the match and
// reject patterns. Trimming happens once the collection is complete: Trim drops
// leading and trailing samples that fall outside the window, allowing a timing
// tolerance derived from the sample period or configured in seconds.
package curate

// Package rotation implements the daily rotation and retention policy used by
// logsink's file sinks.
//
// A Policy is a plain value: a file name template containing DateToken, the
// daily cadence and the retention window in days. Writer is the collaborator
// that enforces it: it appends to the file for the current day through
// lumberjack, starts a new file when the date changes, and deletes files of
// the same template once they are older than the retention window.
//
//	p, err := rotation.NewPolicy("info_%DATE%.log", 14)
//	if err != nil {
//		return err
//	}
//	w := rotation.NewWriter("logs", p)
//	defer w.Close()
//
// Rotation is calendar-day based in the clock's location. A file is never
// deleted before it is MaxRetentionDays days old.
package rotation

// Package sink builds the destinations of a logsink logger.
//
// Build turns fully resolved Settings into an ordered list of sinks:
//
//   - the primary file sinks implied by the format (json, readable, or both;
//     JSON first),
//   - a dedicated error-only file sink per implied format, unless the floor
//     is already error,
//   - a console sink when LogToConsole is set.
//
// Every file sink gets a daily rotation.Policy whose template embeds the
// date, and writes through a rotation.Writer. Console sinks have no policy.
// All sinks start muted when Settings.Silent is true.
//
// # Formats
//
// JSON sinks write one object per line with timestamp, level, message and the
// metadata fields. Readable sinks write
//
//	2024-04-15 09:30:00: [ warn ] disk low.	[ {"free_mb":12} ]
//
// and the console sink writes the same line with the level colorized.
//
// # Failures
//
// Creating the log directory is the only I/O done by Build; if it fails, Build
// returns logerr.ErrIO and no sinks. A write that fails later is reported to
// the observer and dropped, and never affects the other sinks.
//
// # Thread Safety
//
// Sinks and their cores are safe for concurrent use. Each file is appended to
// by exactly one serialized writer.
package sink

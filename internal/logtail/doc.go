// Package logtail reads the tail of the console's own log file for display.
//
// Read extracts the last N lines of a file in one pass with a ring buffer,
// using O(N) memory regardless of file size. Parse and Tail decode the JSON
// records written by the logging package (timestamp, severity, message plus
// structured fields); lines that are not JSON are kept as plain messages.
//
// A missing file is not an error: Read returns no lines.
package logtail

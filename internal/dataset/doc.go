// Package dataset loads and normalizes the raw training attendance file
// into the canonical in-memory table consumed by the analytics engine.
//
// The source is a semicolon-delimited text file exported from the meeting
// platform, with Portuguese column labels, DD/MM/YYYY dates, localized
// percentage strings (comma decimal separator, optional % suffix) and
// HH:MM:SS elapsed-time fields. Parsing is forgiving: malformed cells
// degrade to zero or null, never to an error, so a single bad row cannot
// reject a whole file. Only structural problems (missing required columns,
// undecodable bytes) surface as errors.
package dataset

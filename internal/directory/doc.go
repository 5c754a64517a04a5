// Package directory holds the ordered collection of contacts and the
// orchestration around it: duplicate search, auto-merge on insert, bulk
// import and reset.
//
// A Directory is owned by its caller and is not safe for concurrent use;
// callers that share one across goroutines must serialize access. It performs
// no I/O beyond optional debug logging.
package directory

// Package api serves a read-only JSON view of the address book over HTTP.
//
// The server works on a snapshot taken when it is built, so the store lock
// can be released while it runs. Routes:
//
//	GET /health                 liveness probe, never authenticated
//	GET /contacts[?field=F]     every contact, optionally only those with F filled
//	GET /contacts/{id}          one contact
//	GET /duplicates?F=v&F=w...  scored candidates for the given field values
//
// When a token is configured every route except /health requires
// "Authorization: Bearer <token>".
package api

// Package service implements the rdata HTTP service.  A POST to
// /query carries a script, either as a JSON envelope or as bare text;
// the response reports the run's job ID, duration, and cost along with
// the result, inline when small and by file reference when large.
//
// Schemes: http
// Consumes:
// - application/json
// - text/plain
// Produces:
// - application/json
package service

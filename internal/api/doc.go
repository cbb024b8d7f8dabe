// Package api is the client for the three read-only Skadi monitoring
// endpoints and the data model they return.
//
//	GET /api/metrics/live                      -> LiveMetrics
//	GET /api/metrics/timeseries?window={w}     -> Series (ascending by time)
//	GET /api/queries/history?limit=200         -> History (most recent first)
//
// Every payload passes through a decode step that validates it against the
// model's invariants. Failures are reported as structured errors with one of
// three codes, which callers use to classify soft failures:
//
//	errors.ErrTransport  request never produced a response (refused, timeout)
//	errors.ErrHTTP       response had a non-2xx status
//	errors.ErrDecode     body didn't match the expected shape
package api

// Package scan runs a tee time scan across several courses.
//
// A scan validates the request before touching any upstream, then fetches every
// course concurrently with a bounded number of workers. Each course ends up with
// exactly one result in request order: its tee times inside the requested window,
// or an error message. One course failing never affects another. Cancelling the
// context abandons the scan and discards partial results.
//
// When the request names a webhook and at least one time was found, a single
// summary is sent after all courses finish. Delivery failures are logged and
// counted but never fail the scan.
package scan

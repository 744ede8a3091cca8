// Package adapter resolves courses to site-specific booking adapters and fetches raw tee times.
//
// Each adapter knows one upstream booking system. Two of them call structured JSON
// APIs (Kenna/TeeItUp and EZLinks); two scrape rendered booking pages (ForeUp and
// Quick18) through a fallback chain of embedded JSON, CSS selectors and
// accessibility labels.
//
// Every upstream failure is converted at the adapter boundary into an
// *UpstreamError (transport, timeout, non-2xx) or an *UpstreamParseError
// (unexpected response shape). Callers never see raw net/http or encoding errors.
//
// A Registry maps a course to its adapter by exact name first and URL substring
// second. Retry, caching and metrics are decorators over the same Adapter
// interface, so the scan orchestrator is unaware of them.
package adapter

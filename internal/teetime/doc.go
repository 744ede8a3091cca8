// Package teetime defines the records that flow through a tee-time scan.
//
// A scan starts from a ScanPayload as sent by a client, is validated into a ScanRequest,
// and ends as one CourseResult per requested course. Adapters emit RawSlot values in
// whatever shape their upstream uses; the normalize package turns those into TeeTime
// records with a consistent time and price format.
package teetime

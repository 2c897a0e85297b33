// Package reportingservice computes read-only aggregates over campaigns and
// their images: status counts for the whole portfolio, per-campaign review
// progress, and per-contractor approval rates.
//
// It owns no data. The sources in ports pull from the owning services, and
// every figure is computed on demand; there are no materialized snapshots to
// drift out of date.
package reportingservice

// Package repositories models the repository summaries repokit operates on and
// retrieves them through cursor pagination.
//
// Fetcher accumulates pages from a PageFetcher until the remote reports no
// further pages. A failing page ends pagination and the records gathered so far
// are returned. ComputeStatistics summarizes a fetched set.
package repositories

// Package dependencies builds default collaborators for repokit commands when
// callers do not inject their own.
package dependencies

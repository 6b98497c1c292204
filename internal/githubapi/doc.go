// Package githubapi fetches repository pages straight from the GitHub GraphQL
// endpoint over HTTP, without going through the gh executable.
package githubapi

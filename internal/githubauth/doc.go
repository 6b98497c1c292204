// Package githubauth locates a GitHub token for direct API access.
package githubauth

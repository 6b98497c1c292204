// Package githubcli wraps the GitHub CLI for repokit workflows.
//
// It builds gh argument lists for the repository listing query and the
// repository edit mutations, decodes the JSON responses into typed values, and
// routes every invocation through execshell so interactions with GitHub can be
// stubbed during testing.
package githubcli

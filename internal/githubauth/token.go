package githubauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/repokit/internal/execshell"
)

// Environment variable names consulted for a GitHub token, in preference order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

const (
	authSubcommandConstant              = "auth"
	tokenSubcommandConstant             = "token"
	tokenUnavailableMessageConstant     = "github token unavailable"
	cliTokenFailureTemplateConstant     = "%w: gh auth token failed: %w"
	cliTokenEmptyOutputTemplateConstant = "%w: gh auth token returned no token"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ErrTokenUnavailable indicates neither the environment nor the GitHub CLI supplied a token.
var ErrTokenUnavailable = errors.New(tokenUnavailableMessageConstant)

// GitHubCommandExecutor runs gh subcommands.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// TokenResolver finds a token in the environment and falls back to `gh auth token`.
type TokenResolver struct {
	environment       map[string]string
	lookupEnvironment func(key string) (string, bool)
	executor          GitHubCommandExecutor
}

// NewTokenResolver constructs a TokenResolver. The executor may be nil, which disables the gh fallback.
func NewTokenResolver(environment map[string]string, executor GitHubCommandExecutor) *TokenResolver {
	return &TokenResolver{
		environment:       environment,
		lookupEnvironment: os.LookupEnv,
		executor:          executor,
	}
}

// Resolve returns the first non-empty token.
func (resolver *TokenResolver) Resolve(executionContext context.Context) (string, error) {
	if token, found := resolver.resolveFromEnvironment(); found {
		return token, nil
	}
	if resolver.executor == nil {
		return "", ErrTokenUnavailable
	}

	executionResult, executionError := resolver.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, tokenSubcommandConstant},
	})
	if executionError != nil {
		return "", fmt.Errorf(cliTokenFailureTemplateConstant, ErrTokenUnavailable, executionError)
	}

	token := strings.TrimSpace(executionResult.StandardOutput)
	if len(token) == 0 {
		return "", fmt.Errorf(cliTokenEmptyOutputTemplateConstant, ErrTokenUnavailable)
	}
	return token, nil
}

// ResolveToken returns the first non-empty token in the provided map or the process environment.
func ResolveToken(environment map[string]string) (string, bool) {
	return NewTokenResolver(environment, nil).resolveFromEnvironment()
}

func (resolver *TokenResolver) resolveFromEnvironment() (string, bool) {
	for _, key := range tokenPreference {
		if value, ok := lookup(resolver.environment, key); ok {
			return value, true
		}
	}
	lookupEnvironment := resolver.lookupEnvironment
	if lookupEnvironment == nil {
		lookupEnvironment = os.LookupEnv
	}
	for _, key := range tokenPreference {
		if value, ok := lookupEnvironment(key); ok {
			value = strings.TrimSpace(value)
			if len(value) > 0 {
				return value, true
			}
		}
	}
	return "", false
}

func lookup(values map[string]string, key string) (string, bool) {
	if values == nil {
		return "", false
	}
	value, exists := values[key]
	if !exists {
		return "", false
	}
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", false
	}
	return value, true
}

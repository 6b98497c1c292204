package dependencies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repokit/internal/execshell"
	"github.com/temirov/repokit/internal/githubapi"
	"github.com/temirov/repokit/internal/githubauth"
	"github.com/temirov/repokit/internal/githubcli"
	"github.com/temirov/repokit/internal/repositories"
	"github.com/temirov/repokit/internal/topics"
)

const (
	unsupportedBackendMessageConstant  = "unsupported repository backend"
	unsupportedBackendTemplateConstant = "%w: %q"
	graphQLTokenErrorTemplateConstant  = "graphql backend requires a token: %w"
	executorRequiredMessageConstant    = "github cli executor required for the gh backend"
)

// PageFetcherBackend selects how repository pages are retrieved.
type PageFetcherBackend string

// Supported page fetcher backends.
const (
	BackendGitHubCLI PageFetcherBackend = PageFetcherBackend("gh")
	BackendGraphQL   PageFetcherBackend = PageFetcherBackend("graphql")
)

var (
	// ErrUnsupportedBackend indicates a backend name outside the supported set.
	ErrUnsupportedBackend = errors.New(unsupportedBackendMessageConstant)

	errExecutorRequired = errors.New(executorRequiredMessageConstant)
)

// PageFetcherOptions describes how to build the default page fetcher.
type PageFetcherOptions struct {
	Backend         string
	GraphQLEndpoint string
	Executor        githubcli.GitHubCommandExecutor
	Environment     map[string]string
}

// ResolveGitHubExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitHubExecutor(existing githubcli.GitHubCommandExecutor, logger *zap.Logger, observers ...execshell.CommandEventObserver) (githubcli.GitHubCommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitHubClient creates a GitHub CLI-backed client for the executor.
func ResolveGitHubClient(executor githubcli.GitHubCommandExecutor) (*githubcli.Client, error) {
	return githubcli.NewClient(executor)
}

// ResolvePageFetcher returns the provided fetcher or builds one for the configured backend.
// An empty backend selects the GitHub CLI.
func ResolvePageFetcher(executionContext context.Context, existing repositories.PageFetcher, options PageFetcherOptions) (repositories.PageFetcher, error) {
	if existing != nil {
		return existing, nil
	}

	backend := PageFetcherBackend(strings.ToLower(strings.TrimSpace(options.Backend)))
	switch backend {
	case "", BackendGitHubCLI:
		if options.Executor == nil {
			return nil, errExecutorRequired
		}
		cliClient, clientError := githubcli.NewClient(options.Executor)
		if clientError != nil {
			return nil, clientError
		}
		return cliClient, nil
	case BackendGraphQL:
		token, tokenError := githubauth.NewTokenResolver(options.Environment, options.Executor).Resolve(executionContext)
		if tokenError != nil {
			return nil, fmt.Errorf(graphQLTokenErrorTemplateConstant, tokenError)
		}
		apiClient, clientError := githubapi.NewClient(githubapi.ClientOptions{Endpoint: options.GraphQLEndpoint, Token: token})
		if clientError != nil {
			return nil, clientError
		}
		return apiClient, nil
	default:
		return nil, fmt.Errorf(unsupportedBackendTemplateConstant, ErrUnsupportedBackend, options.Backend)
	}
}

// ResolveSuggestionTable builds a table from configured entries, or returns the built-in table when none are configured.
func ResolveSuggestionTable(configuredEntries []topics.SuggestionEntry) (topics.SuggestionTable, error) {
	if len(configuredEntries) == 0 {
		return topics.DefaultSuggestionTable()
	}
	return topics.NewSuggestionTable(configuredEntries)
}

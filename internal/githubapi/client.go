package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shurcooL/graphql"

	"github.com/temirov/repokit/internal/repositories"
)

const (
	// DefaultEndpoint is the public GitHub GraphQL endpoint.
	DefaultEndpoint = "https://api.github.com/graphql"

	authorizationHeaderConstant             = "Authorization"
	bearerTokenTemplateConstant             = "Bearer %s"
	userAgentHeaderConstant                 = "User-Agent"
	userAgentValueConstant                  = "repokit"
	tokenNotConfiguredMessageConstant       = "github api token not configured"
	ownerNotConfiguredMessageConstant       = "repository owner not provided"
	ownerNotFoundMessageConstant            = "github account not found"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	ownerVariableNameConstant               = "owner"
	pageSizeVariableNameConstant            = "pageSize"
	topicLimitVariableNameConstant          = "topicLimit"
	afterVariableNameConstant               = "after"
	fetchRepositoryPageOperationConstant    = OperationName("FetchRepositoryPage")
)

// OperationName describes a named GraphQL workflow supported by the client.
type OperationName string

var (
	// ErrTokenNotConfigured indicates the client was constructed without a token.
	ErrTokenNotConfigured = errors.New(tokenNotConfiguredMessageConstant)

	// ErrOwnerNotConfigured indicates a page request without an owner.
	ErrOwnerNotConfigured = errors.New(ownerNotConfiguredMessageConstant)

	// ErrOwnerNotFound indicates the query returned no user for the owner.
	ErrOwnerNotFound = errors.New(ownerNotFoundMessageConstant)
)

// OperationError wraps transport and GraphQL failures.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ClientOptions configures the HTTP GraphQL client.
type ClientOptions struct {
	Endpoint  string
	Token     string
	Transport http.RoundTripper
}

// Client implements repositories.PageFetcher against the GraphQL endpoint.
type Client struct {
	graphQLClient *graphql.Client
}

type repositoryPageQuery struct {
	User *struct {
		Repositories struct {
			Nodes []struct {
				Name             graphql.String
				Description      *graphql.String
				URL              graphql.String `graphql:"url"`
				IsPrivate        graphql.Boolean
				RepositoryTopics struct {
					Nodes []struct {
						Topic struct {
							Name graphql.String
						}
					}
				} `graphql:"repositoryTopics(first: $topicLimit)"`
			}
			PageInfo struct {
				HasNextPage graphql.Boolean
				EndCursor   *graphql.String
			}
		} `graphql:"repositories(first: $pageSize, after: $after, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"user(login: $owner)"`
}

// NewClient constructs a Client. An empty endpoint selects DefaultEndpoint.
func NewClient(options ClientOptions) (*Client, error) {
	token := strings.TrimSpace(options.Token)
	if len(token) == 0 {
		return nil, ErrTokenNotConfigured
	}

	endpoint := strings.TrimSpace(options.Endpoint)
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}

	baseTransport := options.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  baseTransport,
		},
	}

	return &Client{graphQLClient: graphql.NewClient(endpoint, httpClient)}, nil
}

// FetchRepositoryPage queries one page of the owner's repositories.
func (client *Client) FetchRepositoryPage(executionContext context.Context, request repositories.PageRequest) (repositories.Page, error) {
	owner := strings.TrimSpace(request.Owner)
	if len(owner) == 0 {
		return repositories.Page{}, ErrOwnerNotConfigured
	}

	pageSize := request.PageSize
	if pageSize <= 0 {
		pageSize = repositories.DefaultPageSize
	}
	topicLimit := request.TopicLimit
	if topicLimit <= 0 {
		topicLimit = repositories.DefaultTopicLimit
	}

	var afterCursor *graphql.String
	if len(request.After) > 0 {
		afterCursor = graphql.NewString(graphql.String(request.After))
	}

	variables := map[string]interface{}{
		ownerVariableNameConstant:      graphql.String(owner),
		pageSizeVariableNameConstant:   graphql.Int(pageSize),
		topicLimitVariableNameConstant: graphql.Int(topicLimit),
		afterVariableNameConstant:      afterCursor,
	}

	var query repositoryPageQuery
	if queryError := client.graphQLClient.Query(executionContext, &query, variables); queryError != nil {
		return repositories.Page{}, OperationError{Operation: fetchRepositoryPageOperationConstant, Cause: queryError}
	}
	if query.User == nil {
		return repositories.Page{}, OperationError{Operation: fetchRepositoryPageOperationConstant, Cause: ErrOwnerNotFound}
	}

	connection := query.User.Repositories
	page := repositories.Page{
		Repositories: make([]repositories.RepositorySummary, 0, len(connection.Nodes)),
		Cursor:       repositories.PageCursor{HasNextPage: bool(connection.PageInfo.HasNextPage)},
	}
	if connection.PageInfo.EndCursor != nil {
		page.Cursor.EndCursor = string(*connection.PageInfo.EndCursor)
	}

	for _, node := range connection.Nodes {
		summary := repositories.RepositorySummary{
			Name:      string(node.Name),
			URL:       string(node.URL),
			IsPrivate: bool(node.IsPrivate),
			Topics:    make([]string, 0, len(node.RepositoryTopics.Nodes)),
		}
		if node.Description != nil {
			summary.Description = string(*node.Description)
		}
		for _, topicNode := range node.RepositoryTopics.Nodes {
			summary.Topics = append(summary.Topics, string(topicNode.Topic.Name))
		}
		page.Repositories = append(page.Repositories, summary)
	}

	return page, nil
}

// authTransport adds the bearer token and user agent to every request.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (transport *authTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	clonedRequest := request.Clone(request.Context())
	clonedRequest.Header.Set(authorizationHeaderConstant, fmt.Sprintf(bearerTokenTemplateConstant, transport.token))
	clonedRequest.Header.Set(userAgentHeaderConstant, userAgentValueConstant)
	return transport.base.RoundTrip(clonedRequest)
}

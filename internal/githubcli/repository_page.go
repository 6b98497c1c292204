package githubcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/temirov/repokit/internal/execshell"
	"github.com/temirov/repokit/internal/repositories"
)

const (
	graphQLEndpointConstant          = "graphql"
	rawFieldFlagConstant             = "-f"
	typedFieldFlagConstant           = "-F"
	queryFieldTemplateConstant       = "query=%s"
	ownerFieldTemplateConstant       = "owner=%s"
	pageSizeFieldTemplateConstant    = "pageSize=%d"
	topicLimitFieldTemplateConstant  = "topicLimit=%d"
	afterFieldTemplateConstant       = "after=%s"
	ownerFieldNameConstant           = "owner"
	missingUserMessageConstant       = "response did not include a user"
	missingUserErrorTemplateConstant = "%s: %w"
	unnamedQueryErrorConstant        = "unknown GraphQL error"
)

// RepositoryPageQuery lists one page of an account's repositories, most recently updated first.
const RepositoryPageQuery = `query($owner: String!, $pageSize: Int!, $topicLimit: Int!, $after: String) {
  user(login: $owner) {
    repositories(first: $pageSize, after: $after, orderBy: {field: UPDATED_AT, direction: DESC}) {
      nodes {
        name
        description
        url
        isPrivate
        repositoryTopics(first: $topicLimit) {
          nodes {
            topic {
              name
            }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

type repositoryPageResponse struct {
	Data struct {
		User *struct {
			Repositories struct {
				Nodes []struct {
					Name             string  `json:"name"`
					Description      *string `json:"description"`
					URL              string  `json:"url"`
					IsPrivate        bool    `json:"isPrivate"`
					RepositoryTopics struct {
						Nodes []struct {
							Topic struct {
								Name string `json:"name"`
							} `json:"topic"`
						} `json:"nodes"`
					} `json:"repositoryTopics"`
				} `json:"nodes"`
				PageInfo struct {
					HasNextPage bool    `json:"hasNextPage"`
					EndCursor   *string `json:"endCursor"`
				} `json:"pageInfo"`
			} `json:"repositories"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchRepositoryPage runs the repository listing query through gh api graphql.
func (client *Client) FetchRepositoryPage(executionContext context.Context, request repositories.PageRequest) (repositories.Page, error) {
	owner := strings.TrimSpace(request.Owner)
	if len(owner) == 0 {
		return repositories.Page{}, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: buildRepositoryPageArguments(owner, request),
	})
	if executionError != nil {
		return repositories.Page{}, OperationError{Operation: fetchRepositoryPageOperationNameConstant, Cause: executionError}
	}

	return decodeRepositoryPage(executionResult.StandardOutput)
}

func buildRepositoryPageArguments(owner string, request repositories.PageRequest) []string {
	pageSize := request.PageSize
	if pageSize <= 0 {
		pageSize = repositories.DefaultPageSize
	}
	topicLimit := request.TopicLimit
	if topicLimit <= 0 {
		topicLimit = repositories.DefaultTopicLimit
	}

	arguments := []string{
		apiSubcommandConstant,
		graphQLEndpointConstant,
		rawFieldFlagConstant,
		fmt.Sprintf(queryFieldTemplateConstant, RepositoryPageQuery),
		rawFieldFlagConstant,
		fmt.Sprintf(ownerFieldTemplateConstant, owner),
		typedFieldFlagConstant,
		fmt.Sprintf(pageSizeFieldTemplateConstant, pageSize),
		typedFieldFlagConstant,
		fmt.Sprintf(topicLimitFieldTemplateConstant, topicLimit),
	}
	if len(request.After) > 0 {
		arguments = append(arguments, rawFieldFlagConstant, fmt.Sprintf(afterFieldTemplateConstant, request.After))
	}
	return arguments
}

func decodeRepositoryPage(standardOutput string) (repositories.Page, error) {
	var response repositoryPageResponse
	if decodingError := json.Unmarshal([]byte(standardOutput), &response); decodingError != nil {
		return repositories.Page{}, ResponseDecodingError{Operation: fetchRepositoryPageOperationNameConstant, Cause: decodingError}
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, responseError := range response.Errors {
			message := strings.TrimSpace(responseError.Message)
			if len(message) == 0 {
				message = unnamedQueryErrorConstant
			}
			messages = append(messages, message)
		}
		return repositories.Page{}, QueryError{Operation: fetchRepositoryPageOperationNameConstant, Messages: messages}
	}

	if response.Data.User == nil {
		return repositories.Page{}, OperationError{
			Operation: fetchRepositoryPageOperationNameConstant,
			Cause:     fmt.Errorf(missingUserErrorTemplateConstant, missingUserMessageConstant, ErrOwnerNotFound),
		}
	}

	repositoryConnection := response.Data.User.Repositories
	page := repositories.Page{
		Repositories: make([]repositories.RepositorySummary, 0, len(repositoryConnection.Nodes)),
		Cursor:       repositories.PageCursor{HasNextPage: repositoryConnection.PageInfo.HasNextPage},
	}
	if repositoryConnection.PageInfo.EndCursor != nil {
		page.Cursor.EndCursor = *repositoryConnection.PageInfo.EndCursor
	}

	for _, node := range repositoryConnection.Nodes {
		summary := repositories.RepositorySummary{
			Name:      node.Name,
			URL:       node.URL,
			IsPrivate: node.IsPrivate,
			Topics:    make([]string, 0, len(node.RepositoryTopics.Nodes)),
		}
		if node.Description != nil {
			summary.Description = *node.Description
		}
		for _, topicNode := range node.RepositoryTopics.Nodes {
			summary.Topics = append(summary.Topics, topicNode.Topic.Name)
		}
		page.Repositories = append(page.Repositories, summary)
	}

	return page, nil
}


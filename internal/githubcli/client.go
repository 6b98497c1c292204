package githubcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/repokit/internal/execshell"
)

const (
	repoSubcommandConstant                   = "repo"
	editSubcommandConstant                   = "edit"
	apiSubcommandConstant                    = "api"
	userEndpointConstant                     = "user"
	jqFlagConstant                           = "--jq"
	loginJQExpressionConstant                = ".login"
	addTopicFlagConstant                     = "--add-topic"
	defaultBranchFlagConstant                = "--default-branch"
	topicSeparatorConstant                   = ","
	repositoryFieldNameConstant              = "repository"
	topicsFieldNameConstant                  = "topics"
	branchFieldNameConstant                  = "branch"
	featureFieldNameConstant                 = "feature"
	requiredValueMessageConstant             = "value required"
	unsupportedFeatureMessageConstant        = "unsupported repository feature"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	ownerNotFoundMessageConstant             = "github account not found"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	queryErrorTemplateConstant               = "%s query returned errors: %s"
	queryErrorJoinSeparatorConstant          = "; "
	fetchRepositoryPageOperationNameConstant = OperationName("FetchRepositoryPage")
	addTopicsOperationNameConstant           = OperationName("AddTopics")
	setDefaultBranchOperationNameConstant    = OperationName("SetDefaultBranch")
	enableFeatureOperationNameConstant       = OperationName("EnableFeature")
	resolveViewerLoginOperationNameConstant  = OperationName("ResolveViewerLogin")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

	// ErrOwnerNotFound indicates the repository query named an account GitHub does not know.
	ErrOwnerNotFound = errors.New(ownerNotFoundMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// QueryError reports a GraphQL response that carried an errors array.
type QueryError struct {
	Operation OperationName
	Messages  []string
}

// Error lists the GraphQL error messages.
func (queryError QueryError) Error() string {
	return fmt.Sprintf(queryErrorTemplateConstant, queryError.Operation, strings.Join(queryError.Messages, queryErrorJoinSeparatorConstant))
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// AddTopics adds every topic to the repository in a single gh repo edit call.
func (client *Client) AddTopics(executionContext context.Context, repository string, topics []string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	sanitizedTopics := make([]string, 0, len(topics))
	for _, topic := range topics {
		trimmedTopic := strings.TrimSpace(topic)
		if len(trimmedTopic) == 0 {
			continue
		}
		sanitizedTopics = append(sanitizedTopics, trimmedTopic)
	}
	if len(sanitizedTopics) == 0 {
		return InvalidInputError{FieldName: topicsFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			editSubcommandConstant,
			repositoryIdentifier,
			addTopicFlagConstant,
			strings.Join(sanitizedTopics, topicSeparatorConstant),
		},
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: addTopicsOperationNameConstant, Cause: executionError}
	}
	return nil
}

// SetDefaultBranch points the repository's default branch at branch.
func (client *Client) SetDefaultBranch(executionContext context.Context, repository string, branch string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			editSubcommandConstant,
			repositoryIdentifier,
			defaultBranchFlagConstant,
			branchName,
		},
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: setDefaultBranchOperationNameConstant, Cause: executionError}
	}
	return nil
}

// EnableFeature turns on a single repository feature.
func (client *Client) EnableFeature(executionContext context.Context, repository string, feature RepositoryFeature) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if !feature.IsValid() {
		return InvalidInputError{FieldName: featureFieldNameConstant, Message: unsupportedFeatureMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			editSubcommandConstant,
			repositoryIdentifier,
			feature.enableFlag(),
		},
	}

	if _, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails); executionError != nil {
		return OperationError{Operation: enableFeatureOperationNameConstant, Cause: executionError}
	}
	return nil
}

// ResolveViewerLogin returns the login of the account gh is authenticated as.
func (client *Client) ResolveViewerLogin(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			userEndpointConstant,
			jqFlagConstant,
			loginJQExpressionConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: resolveViewerLoginOperationNameConstant, Cause: executionError}
	}

	login := strings.TrimSpace(executionResult.StandardOutput)
	if len(login) == 0 {
		return "", OperationError{Operation: resolveViewerLoginOperationNameConstant, Cause: ErrOwnerNotFound}
	}
	return login, nil
}

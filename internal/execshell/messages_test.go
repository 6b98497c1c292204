package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesGitHubCommands(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		arguments       []string
		stage           messageStage
		result          ExecutionResult
		failure         error
		expectedMessage string
	}{
		{
			name:            "first_repository_page",
			arguments:       []string{"api", "graphql", "-f", "query=...", "-F", "owner=octocat", "-F", "pageSize=100"},
			stage:           messageStageStart,
			expectedMessage: "Fetching first page of repositories for octocat",
		},
		{
			name:            "cursor_repository_page",
			arguments:       []string{"api", "graphql", "-f", "query=...", "-F", "owner=octocat", "-F", "pageSize=100", "-f", "after=Y3Vyc29y"},
			stage:           messageStageSuccess,
			expectedMessage: "Fetched page after Y3Vyc29y of repositories for octocat",
		},
		{
			name:            "viewer_login_failure",
			arguments:       []string{"api", "user", "--jq", ".login"},
			stage:           messageStageFailure,
			result:          ExecutionResult{ExitCode: 1, StandardError: "not logged in"},
			expectedMessage: "Failed to resolve authenticated GitHub login (exit code 1: not logged in)",
		},
		{
			name:            "add_topics",
			arguments:       []string{"repo", "edit", "octocat/my-scraper-bot", "--add-topic", "web-scraping,automation"},
			stage:           messageStageStart,
			expectedMessage: "Adding topics web-scraping, automation to octocat/my-scraper-bot",
		},
		{
			name:            "default_branch",
			arguments:       []string{"repo", "edit", "octocat/tool", "--default-branch", "main"},
			stage:           messageStageSuccess,
			expectedMessage: "Set default branch for octocat/tool to main",
		},
		{
			name:            "enable_feature_execution_failure",
			arguments:       []string{"repo", "edit", "octocat/tool", "--enable-issues=true"},
			stage:           messageStageExecutionFailure,
			failure:         errors.New("signal: killed"),
			expectedMessage: "Unable to enable issues on octocat/tool: signal: killed",
		},
		{
			name:            "auth_token",
			arguments:       []string{"auth", "token"},
			stage:           messageStageStart,
			expectedMessage: "Reading GitHub CLI token",
		},
		{
			name:            "generic_fallback",
			arguments:       []string{"--version"},
			stage:           messageStageStart,
			expectedMessage: "Running gh --version",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: testCase.arguments}}
			message := formatter.buildMessage(command, testCase.result, testCase.failure, testCase.stage)
			require.Equal(testInstance, testCase.expectedMessage, message)
		})
	}
}

func TestBuildStartedMessageIncludesWorkingDirectoryForGenericCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments:        []string{"status"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Running gh status (in /workspace/repo)", formatter.BuildStartedMessage(command))
}

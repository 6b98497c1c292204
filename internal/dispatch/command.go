package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repokit/internal/dependencies"
	"github.com/temirov/repokit/internal/execshell"
	"github.com/temirov/repokit/internal/githubcli"
	"github.com/temirov/repokit/internal/prompt"
	"github.com/temirov/repokit/internal/repositories"
	"github.com/temirov/repokit/internal/ui"
)

const (
	listCommandUseConstant               = "list"
	listCommandShortDescriptionConstant  = "List repositories of the configured account"
	listCommandLongDescriptionConstant   = "list prints each repository of the configured account, most recently updated first, followed by a total."
	statsCommandUseConstant              = "stats"
	statsCommandShortDescriptionConstant = "Print repository statistics"
	statsCommandLongDescriptionConstant  = "stats prints visibility and metadata coverage counts for the configured account."
	ownerResolutionErrorTemplateConstant = "unable to determine repository owner: %w"
	ownerResolvedMessageConstant         = "repository owner resolved from gh authentication"
	unexpectedArgumentsMessageConstant   = "command does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates a prompter bound to a command's input and output.
type PrompterFactory func(command *cobra.Command) Prompter

// CommandBuilder assembles repository commands with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitHubExecutor               githubcli.GitHubCommandExecutor
	PageFetcher                  repositories.PageFetcher
	Mutator                      Mutator
	ViewerResolver               ViewerLoginResolver
	PrompterFactory              PrompterFactory
}

// BuildListCommand constructs the non-interactive list command.
func (builder *CommandBuilder) BuildListCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runSingleAction(command, arguments, ActionList)
		},
	}, nil
}

// BuildStatsCommand constructs the non-interactive stats command.
func (builder *CommandBuilder) BuildStatsCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   statsCommandUseConstant,
		Short: statsCommandShortDescriptionConstant,
		Long:  statsCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.runSingleAction(command, arguments, ActionGetStatistics)
		},
	}, nil
}

// RunMenu launches the interactive menu for the command's input and output streams.
func (builder *CommandBuilder) RunMenu(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	dispatcher, dispatcherError := builder.buildDispatcher(command)
	if dispatcherError != nil {
		return dispatcherError
	}
	return dispatcher.Run(commandContext(command))
}

func (builder *CommandBuilder) runSingleAction(command *cobra.Command, arguments []string, action Action) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	dispatcher, dispatcherError := builder.buildDispatcher(command)
	if dispatcherError != nil {
		return dispatcherError
	}
	return dispatcher.RunAction(commandContext(command), action)
}

func (builder *CommandBuilder) buildDispatcher(command *cobra.Command) (*Dispatcher, error) {
	executionContext := commandContext(command)
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	executor, executorError := dependencies.ResolveGitHubExecutor(builder.GitHubExecutor, logger, builder.resolveCommandEventObserver(logger))
	if executorError != nil {
		return nil, executorError
	}

	githubClient, clientError := dependencies.ResolveGitHubClient(executor)
	if clientError != nil {
		return nil, clientError
	}

	pageFetcher, pageFetcherError := dependencies.ResolvePageFetcher(executionContext, builder.PageFetcher, dependencies.PageFetcherOptions{
		Backend:         configuration.Backend,
		GraphQLEndpoint: configuration.GraphQLEndpoint,
		Executor:        executor,
	})
	if pageFetcherError != nil {
		return nil, pageFetcherError
	}

	repositoryFetcher, fetcherError := repositories.NewFetcher(pageFetcher, logger, repositories.FetcherOptions{
		PageSize:   configuration.PageSize,
		TopicLimit: configuration.TopicLimit,
	})
	if fetcherError != nil {
		return nil, fetcherError
	}

	suggestionTable, suggestionError := dependencies.ResolveSuggestionTable(configuration.TopicSuggestions)
	if suggestionError != nil {
		return nil, suggestionError
	}

	var viewerResolver ViewerLoginResolver = githubClient
	if builder.ViewerResolver != nil {
		viewerResolver = builder.ViewerResolver
	}
	owner, ownerError := resolveOwner(executionContext, configuration.Owner, viewerResolver, logger)
	if ownerError != nil {
		return nil, ownerError
	}

	var mutator Mutator = githubClient
	if builder.Mutator != nil {
		mutator = builder.Mutator
	}

	return NewDispatcher(Dependencies{
		Owner:            owner,
		Lister:           repositoryFetcher,
		Mutator:          mutator,
		Prompter:         builder.resolvePrompter(command),
		Suggestions:      suggestionTable,
		BranchCandidates: configuration.DefaultBranchCandidates,
		Output:           command.OutOrStdout(),
		Logger:           logger,
	})
}

// resolveOwner prefers the configured owner and otherwise asks gh for the authenticated login.
func resolveOwner(executionContext context.Context, configuredOwner string, viewerResolver ViewerLoginResolver, logger *zap.Logger) (string, error) {
	if owner := strings.TrimSpace(configuredOwner); len(owner) > 0 {
		return owner, nil
	}

	login, resolveError := viewerResolver.ResolveViewerLogin(executionContext)
	if resolveError != nil {
		return "", fmt.Errorf(ownerResolutionErrorTemplateConstant, resolveError)
	}
	logger.Debug(ownerResolvedMessageConstant, zap.String(logFieldOwnerConstant, login))
	return login, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(logger)
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) Prompter {
	if builder.PrompterFactory != nil {
		if prompter := builder.PrompterFactory(command); prompter != nil {
			return prompter
		}
	}
	return prompt.NewIOPrompter(command.InOrStdin(), command.OutOrStdout())
}

func commandContext(command *cobra.Command) context.Context {
	if command == nil || command.Context() == nil {
		return context.Background()
	}
	return command.Context()
}

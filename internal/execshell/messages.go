package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	firstPageLabelConstant                  = "first page"
	cursorPageLabelTemplateConstant         = "page after %s"
	topicListJoinSeparatorConstant          = ", "
)

const (
	githubAPISubcommandNameConstant      = "api"
	githubRepoSubcommandNameConstant     = "repo"
	githubRepoEditSubcommandNameConstant = "edit"
	githubAuthSubcommandNameConstant     = "auth"
	githubAuthTokenSubcommandConstant    = "token"
	githubGraphQLEndpointConstant        = "graphql"
	githubUserEndpointConstant           = "user"
	githubTypedFieldFlagConstant         = "-F"
	githubRawFieldFlagConstant           = "-f"
	githubAddTopicFlagConstant           = "--add-topic"
	githubDefaultBranchFlagConstant      = "--default-branch"
	githubEnableFlagPrefixConstant       = "--enable-"
	githubOwnerFieldPrefixConstant       = "owner="
	githubAfterFieldPrefixConstant       = "after="
	githubFlagValueSeparatorConstant     = "="
	githubTopicValueSeparatorConstant    = ","
)

const (
	githubRepositoryPageStartTemplateConstant            = "Fetching %s of repositories for %s"
	githubRepositoryPageSuccessTemplateConstant          = "Fetched %s of repositories for %s"
	githubRepositoryPageFailureTemplateConstant          = "Failed to fetch %s of repositories for %s (exit code %d%s)"
	githubRepositoryPageExecutionFailureTemplateConstant = "Unable to fetch %s of repositories for %s: %s"
	githubViewerStartTemplateConstant                    = "Resolving authenticated GitHub login"
	githubViewerSuccessTemplateConstant                  = "Resolved authenticated GitHub login"
	githubViewerFailureTemplateConstant                  = "Failed to resolve authenticated GitHub login (exit code %d%s)"
	githubViewerExecutionFailureTemplateConstant         = "Unable to resolve authenticated GitHub login: %s"
	githubTokenStartTemplateConstant                     = "Reading GitHub CLI token"
	githubTokenSuccessTemplateConstant                   = "Read GitHub CLI token"
	githubTokenFailureTemplateConstant                   = "Failed to read GitHub CLI token (exit code %d%s)"
	githubTokenExecutionFailureTemplateConstant          = "Unable to read GitHub CLI token: %s"
	githubAddTopicsStartTemplateConstant                 = "Adding topics %s to %s"
	githubAddTopicsSuccessTemplateConstant               = "Added topics %s to %s"
	githubAddTopicsFailureTemplateConstant               = "Failed to add topics %s to %s (exit code %d%s)"
	githubAddTopicsExecutionFailureTemplateConstant      = "Unable to add topics %s to %s: %s"
	githubDefaultBranchStartTemplateConstant             = "Setting default branch for %s to %s"
	githubDefaultBranchSuccessTemplateConstant           = "Set default branch for %s to %s"
	githubDefaultBranchFailureTemplateConstant           = "Failed to set default branch for %s to %s (exit code %d%s)"
	githubDefaultBranchExecutionFailureTemplateConstant  = "Unable to set default branch for %s to %s: %s"
	githubFeatureStartTemplateConstant                   = "Enabling %s on %s"
	githubFeatureSuccessTemplateConstant                 = "Enabled %s on %s"
	githubFeatureFailureTemplateConstant                 = "Failed to enable %s on %s (exit code %d%s)"
	githubFeatureExecutionFailureTemplateConstant        = "Unable to enable %s on %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage describes a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage describes a command that could not be run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGitHub || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case githubAPISubcommandNameConstant:
		return formatter.describeGitHubAPICommand(command, result, failure, stage)
	case githubRepoSubcommandNameConstant:
		return formatter.describeGitHubRepoEdit(command, result, failure, stage)
	case githubAuthSubcommandNameConstant:
		return formatter.describeGitHubAuthToken(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPICommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(arguments[1]) {
	case githubGraphQLEndpointConstant:
		owner := formatter.ensureValue(findFieldValue(arguments, githubOwnerFieldPrefixConstant))
		pageLabel := firstPageLabelConstant
		if cursor := findFieldValue(arguments, githubAfterFieldPrefixConstant); len(cursor) > 0 {
			pageLabel = fmt.Sprintf(cursorPageLabelTemplateConstant, cursor)
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubRepositoryPageStartTemplateConstant, pageLabel, owner)
		case messageStageSuccess:
			return fmt.Sprintf(githubRepositoryPageSuccessTemplateConstant, pageLabel, owner)
		case messageStageFailure:
			return fmt.Sprintf(githubRepositoryPageFailureTemplateConstant, pageLabel, owner, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubRepositoryPageExecutionFailureTemplateConstant, pageLabel, owner, formatter.describeFailure(failure))
		}
	case githubUserEndpointConstant:
		switch stage {
		case messageStageStart:
			return githubViewerStartTemplateConstant
		case messageStageSuccess:
			return githubViewerSuccessTemplateConstant
		case messageStageFailure:
			return fmt.Sprintf(githubViewerFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubViewerExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubAuthToken(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != githubAuthTokenSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return githubTokenStartTemplateConstant
	case messageStageSuccess:
		return githubTokenSuccessTemplateConstant
	case messageStageFailure:
		return fmt.Sprintf(githubTokenFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubTokenExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubRepoEdit(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 4 || strings.TrimSpace(arguments[1]) != githubRepoEditSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	repository := formatter.ensureValue(strings.TrimSpace(arguments[2]))

	if topics := findFlagValue(arguments, githubAddTopicFlagConstant); len(topics) > 0 {
		topicLabel := strings.Join(strings.Split(topics, githubTopicValueSeparatorConstant), topicListJoinSeparatorConstant)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubAddTopicsStartTemplateConstant, topicLabel, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubAddTopicsSuccessTemplateConstant, topicLabel, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubAddTopicsFailureTemplateConstant, topicLabel, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubAddTopicsExecutionFailureTemplateConstant, topicLabel, repository, formatter.describeFailure(failure))
		}
	}

	if branch := findFlagValue(arguments, githubDefaultBranchFlagConstant); len(branch) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubDefaultBranchStartTemplateConstant, repository, branch)
		case messageStageSuccess:
			return fmt.Sprintf(githubDefaultBranchSuccessTemplateConstant, repository, branch)
		case messageStageFailure:
			return fmt.Sprintf(githubDefaultBranchFailureTemplateConstant, repository, branch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubDefaultBranchExecutionFailureTemplateConstant, repository, branch, formatter.describeFailure(failure))
		}
	}

	if feature := extractEnabledFeature(arguments); len(feature) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubFeatureStartTemplateConstant, feature, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubFeatureSuccessTemplateConstant, feature, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubFeatureFailureTemplateConstant, feature, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubFeatureExecutionFailureTemplateConstant, feature, repository, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return commandLabel + fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

// findFlagValue returns the argument following flag, or the value of a flag=value argument.
func findFlagValue(arguments []string, flag string) string {
	for index, argument := range arguments {
		if argument == flag && index+1 < len(arguments) {
			return arguments[index+1]
		}
		if strings.HasPrefix(argument, flag+githubFlagValueSeparatorConstant) {
			return strings.TrimPrefix(argument, flag+githubFlagValueSeparatorConstant)
		}
	}
	return emptyStringConstant
}

// findFieldValue returns the value of a gh api field (-f/-F name=value) with the given prefix.
func findFieldValue(arguments []string, fieldPrefix string) string {
	for index := 0; index+1 < len(arguments); index++ {
		if arguments[index] != githubRawFieldFlagConstant && arguments[index] != githubTypedFieldFlagConstant {
			continue
		}
		if strings.HasPrefix(arguments[index+1], fieldPrefix) {
			return strings.TrimPrefix(arguments[index+1], fieldPrefix)
		}
	}
	return emptyStringConstant
}

func extractEnabledFeature(arguments []string) string {
	for _, argument := range arguments {
		if !strings.HasPrefix(argument, githubEnableFlagPrefixConstant) {
			continue
		}
		featureAssignment := strings.TrimPrefix(argument, githubEnableFlagPrefixConstant)
		featureName, _, _ := strings.Cut(featureAssignment, githubFlagValueSeparatorConstant)
		return featureName
	}
	return emptyStringConstant
}

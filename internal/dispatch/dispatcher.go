package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repokit/internal/githubcli"
	"github.com/temirov/repokit/internal/prompt"
	"github.com/temirov/repokit/internal/repositories"
	"github.com/temirov/repokit/internal/topics"
)

const (
	ownerNotConfiguredMessageConstant        = "repository owner not configured"
	listerNotConfiguredMessageConstant       = "repository lister not configured"
	mutatorNotConfiguredMessageConstant      = "repository mutator not configured"
	prompterNotConfiguredMessageConstant     = "prompter not configured"
	unknownActionTemplateConstant            = "unknown action %d"
	menuSelectionErrorTemplateConstant       = "menu selection failed: %w"
	repositorySelectionErrorTemplateConstant = "repository selection failed: %w"
	topicInputErrorTemplateConstant          = "topic input failed: %w"
	branchSelectionErrorTemplateConstant     = "branch selection failed: %w"
	featureSelectionErrorTemplateConstant    = "feature selection failed: %w"
	repositoryIdentifierTemplateConstant     = "%s/%s"
	menuQuestionConstant                     = "Select action:"
	repositoryQuestionConstant               = "Select repository:"
	topicQuestionConstant                    = "Enter topics (comma-separated)"
	branchQuestionConstant                   = "Select default branch:"
	featureQuestionConstant                  = "Select features to enable:"
	listHeaderConstant                       = "\nListing all repositories...\n\n"
	addTopicsHeaderConstant                  = "\nAdding topics to repositories...\n\n"
	defaultBranchHeaderConstant              = "\nSetting default branch...\n\n"
	enableFeaturesHeaderConstant             = "\nEnabling repository features...\n\n"
	statisticsHeaderConstant                 = "\nRepository Statistics...\n\n"
	privateBadgeConstant                     = "[private]"
	publicBadgeConstant                      = "[public]"
	repositoryLineTemplateConstant           = "%s %s\n"
	descriptionLineTemplateConstant          = "   %s\n"
	missingDescriptionConstant               = "(No description)"
	topicsLineTemplateConstant               = "   Topics: %s\n\n"
	missingTopicsConstant                    = "none"
	topicDisplaySeparatorConstant            = ", "
	totalLineTemplateConstant                = "Total: %d repositories\n"
	noRepositoriesTemplateConstant           = "No repositories found for %s\n"
	addedTopicsTemplateConstant              = "Added topics: %s\n"
	addTopicsFailedTemplateConstant          = "Failed to add topics: %v\n"
	defaultBranchSetTemplateConstant         = "Set default branch to %s\n"
	defaultBranchFailedTemplateConstant      = "Failed to set default branch: %v\n"
	noFeaturesSelectedConstant               = "No features selected\n"
	featureEnabledTemplateConstant           = "Enabled %s\n"
	featureFailedTemplateConstant            = "Failed to enable %s: %v\n"
	statisticsOverviewConstant               = "Overview:\n"
	statisticsTotalTemplateConstant          = "  Total Repositories: %d\n"
	statisticsVisibilityTemplateConstant     = "  Public: %d | Private: %d\n"
	statisticsDescriptionTemplateConstant    = "  With Description: %d | Without: %d\n"
	statisticsTopicsTemplateConstant         = "  With Topics: %d\n"
	actionFailedTemplateConstant             = "Action failed: %v\n"
	goodbyeMessageConstant                   = "Goodbye!\n"
	actionStartedMessageConstant             = "repository action started"
	actionFailedMessageConstant              = "repository action failed"
	mutationFailedMessageConstant            = "repository mutation failed"
	menuInputClosedMessageConstant           = "menu input closed; exiting"
	logFieldActionConstant                   = "action"
	logFieldOwnerConstant                    = "owner"
	logFieldRepositoryConstant               = "repository"
	logFieldFeatureConstant                  = "feature"
)

var (
	// ErrOwnerNotConfigured indicates the dispatcher was constructed without an account owner.
	ErrOwnerNotConfigured = errors.New(ownerNotConfiguredMessageConstant)

	// ErrListerNotConfigured indicates the dispatcher was constructed without a repository lister.
	ErrListerNotConfigured = errors.New(listerNotConfiguredMessageConstant)

	// ErrMutatorNotConfigured indicates the dispatcher was constructed without a mutator.
	ErrMutatorNotConfigured = errors.New(mutatorNotConfiguredMessageConstant)

	// ErrPrompterNotConfigured indicates the dispatcher was constructed without a prompter.
	ErrPrompterNotConfigured = errors.New(prompterNotConfiguredMessageConstant)
)

// Dependencies carries the collaborators of a Dispatcher.
type Dependencies struct {
	Owner            string
	Lister           RepositoryLister
	Mutator          Mutator
	Prompter         Prompter
	Suggestions      SuggestionSource
	BranchCandidates []string
	Output           io.Writer
	Logger           *zap.Logger
}

// Dispatcher runs menu actions against one account's repositories.
type Dispatcher struct {
	owner            string
	lister           RepositoryLister
	mutator          Mutator
	prompter         Prompter
	suggestions      SuggestionSource
	branchCandidates []string
	output           io.Writer
	logger           *zap.Logger
}

// NewDispatcher validates dependencies and applies defaults for the optional ones.
func NewDispatcher(dependencies Dependencies) (*Dispatcher, error) {
	owner := strings.TrimSpace(dependencies.Owner)
	if len(owner) == 0 {
		return nil, ErrOwnerNotConfigured
	}
	if dependencies.Lister == nil {
		return nil, ErrListerNotConfigured
	}
	if dependencies.Mutator == nil {
		return nil, ErrMutatorNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	suggestions := dependencies.Suggestions
	if suggestions == nil {
		defaultTable, tableError := topics.DefaultSuggestionTable()
		if tableError != nil {
			return nil, tableError
		}
		suggestions = defaultTable
	}

	branchCandidates := sanitizeBranchCandidates(dependencies.BranchCandidates)
	if len(branchCandidates) == 0 {
		branchCandidates = DefaultBranchCandidates()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		owner:            owner,
		lister:           dependencies.Lister,
		mutator:          dependencies.Mutator,
		prompter:         dependencies.Prompter,
		suggestions:      suggestions,
		branchCandidates: branchCandidates,
		output:           output,
		logger:           logger,
	}, nil
}

// Run shows the menu until the operator exits or input closes.
// Failures inside an action are reported and the menu is shown again.
func (dispatcher *Dispatcher) Run(executionContext context.Context) error {
	actions := MenuActions()
	labels := menuLabels()

	for {
		selectedIndex, selectionError := dispatcher.prompter.Select(menuQuestionConstant, labels)
		if selectionError != nil {
			if errors.Is(selectionError, prompt.ErrInputClosed) {
				dispatcher.logger.Debug(menuInputClosedMessageConstant)
				dispatcher.printf(goodbyeMessageConstant)
				return nil
			}
			return fmt.Errorf(menuSelectionErrorTemplateConstant, selectionError)
		}

		selectedAction := actions[selectedIndex]
		if selectedAction == ActionExit {
			dispatcher.printf(goodbyeMessageConstant)
			return nil
		}

		if actionError := dispatcher.RunAction(executionContext, selectedAction); actionError != nil {
			dispatcher.logger.Warn(
				actionFailedMessageConstant,
				zap.String(logFieldActionConstant, selectedAction.logName()),
				zap.Error(actionError),
			)
			dispatcher.printf(actionFailedTemplateConstant, actionError)
		}
	}
}

// RunAction performs a single action. Mutation failures are reported to the output, not returned.
func (dispatcher *Dispatcher) RunAction(executionContext context.Context, action Action) error {
	dispatcher.logger.Debug(
		actionStartedMessageConstant,
		zap.String(logFieldActionConstant, action.logName()),
		zap.String(logFieldOwnerConstant, dispatcher.owner),
	)

	switch action {
	case ActionList:
		return dispatcher.listRepositories(executionContext)
	case ActionAddTopics:
		return dispatcher.addTopics(executionContext)
	case ActionSetDefaultBranch:
		return dispatcher.setDefaultBranch(executionContext)
	case ActionEnableFeatures:
		return dispatcher.enableFeatures(executionContext)
	case ActionGetStatistics:
		return dispatcher.printStatistics(executionContext)
	case ActionExit:
		return nil
	default:
		return fmt.Errorf(unknownActionTemplateConstant, action)
	}
}

func (dispatcher *Dispatcher) listRepositories(executionContext context.Context) error {
	dispatcher.printf(listHeaderConstant)
	repositorySummaries := dispatcher.lister.FetchAll(executionContext, dispatcher.owner)

	for _, summary := range repositorySummaries {
		badge := publicBadgeConstant
		if summary.IsPrivate {
			badge = privateBadgeConstant
		}
		description := missingDescriptionConstant
		if summary.HasDescription() {
			description = summary.Description
		}
		topicLine := missingTopicsConstant
		if summary.HasTopics() {
			topicLine = strings.Join(summary.Topics, topicDisplaySeparatorConstant)
		}

		dispatcher.printf(repositoryLineTemplateConstant, badge, summary.Name)
		dispatcher.printf(descriptionLineTemplateConstant, description)
		dispatcher.printf(topicsLineTemplateConstant, topicLine)
	}

	dispatcher.printf(totalLineTemplateConstant, len(repositorySummaries))
	return nil
}

func (dispatcher *Dispatcher) addTopics(executionContext context.Context) error {
	dispatcher.printf(addTopicsHeaderConstant)
	repositoryName, found, selectionError := dispatcher.selectRepository(executionContext)
	if selectionError != nil || !found {
		return selectionError
	}

	suggestedTopics := dispatcher.suggestions.Suggest(repositoryName)
	topicLine, inputError := dispatcher.prompter.Input(topicQuestionConstant, topics.FormatTopicLine(suggestedTopics))
	if inputError != nil {
		return fmt.Errorf(topicInputErrorTemplateConstant, inputError)
	}

	topicList := topics.ParseTopicList(topicLine)
	repositoryIdentifier := dispatcher.repositoryIdentifier(repositoryName)
	if mutationError := dispatcher.mutator.AddTopics(executionContext, repositoryIdentifier, topicList); mutationError != nil {
		dispatcher.logMutationFailure(repositoryIdentifier, mutationError)
		dispatcher.printf(addTopicsFailedTemplateConstant, mutationError)
		return nil
	}

	dispatcher.printf(addedTopicsTemplateConstant, strings.Join(topicList, topicDisplaySeparatorConstant))
	return nil
}

func (dispatcher *Dispatcher) setDefaultBranch(executionContext context.Context) error {
	dispatcher.printf(defaultBranchHeaderConstant)
	repositoryName, found, selectionError := dispatcher.selectRepository(executionContext)
	if selectionError != nil || !found {
		return selectionError
	}

	branchIndex, branchError := dispatcher.prompter.Select(branchQuestionConstant, dispatcher.branchCandidates)
	if branchError != nil {
		return fmt.Errorf(branchSelectionErrorTemplateConstant, branchError)
	}
	branch := dispatcher.branchCandidates[branchIndex]

	repositoryIdentifier := dispatcher.repositoryIdentifier(repositoryName)
	if mutationError := dispatcher.mutator.SetDefaultBranch(executionContext, repositoryIdentifier, branch); mutationError != nil {
		dispatcher.logMutationFailure(repositoryIdentifier, mutationError)
		dispatcher.printf(defaultBranchFailedTemplateConstant, mutationError)
		return nil
	}

	dispatcher.printf(defaultBranchSetTemplateConstant, branch)
	return nil
}

func (dispatcher *Dispatcher) enableFeatures(executionContext context.Context) error {
	dispatcher.printf(enableFeaturesHeaderConstant)
	repositoryName, found, selectionError := dispatcher.selectRepository(executionContext)
	if selectionError != nil || !found {
		return selectionError
	}

	features := githubcli.RepositoryFeatures()
	featureLabels := make([]string, 0, len(features))
	for _, feature := range features {
		featureLabels = append(featureLabels, feature.DisplayName())
	}

	selectedIndexes, featureError := dispatcher.prompter.MultiSelect(featureQuestionConstant, featureLabels)
	if featureError != nil {
		return fmt.Errorf(featureSelectionErrorTemplateConstant, featureError)
	}
	if len(selectedIndexes) == 0 {
		dispatcher.printf(noFeaturesSelectedConstant)
		return nil
	}

	repositoryIdentifier := dispatcher.repositoryIdentifier(repositoryName)
	for _, selectedIndex := range selectedIndexes {
		feature := features[selectedIndex]
		if mutationError := dispatcher.mutator.EnableFeature(executionContext, repositoryIdentifier, feature); mutationError != nil {
			dispatcher.logMutationFailure(repositoryIdentifier, mutationError, zap.String(logFieldFeatureConstant, string(feature)))
			dispatcher.printf(featureFailedTemplateConstant, feature.DisplayName(), mutationError)
			continue
		}
		dispatcher.printf(featureEnabledTemplateConstant, feature.DisplayName())
	}
	return nil
}

func (dispatcher *Dispatcher) printStatistics(executionContext context.Context) error {
	dispatcher.printf(statisticsHeaderConstant)
	statistics := repositories.ComputeStatistics(dispatcher.lister.FetchAll(executionContext, dispatcher.owner))

	dispatcher.printf(statisticsOverviewConstant)
	dispatcher.printf(statisticsTotalTemplateConstant, statistics.Total)
	dispatcher.printf(statisticsVisibilityTemplateConstant, statistics.Public, statistics.Private)
	dispatcher.printf(statisticsDescriptionTemplateConstant, statistics.WithDescription, statistics.WithoutDescription)
	dispatcher.printf(statisticsTopicsTemplateConstant, statistics.WithTopics)
	return nil
}

// selectRepository fetches the repositories and asks for one. found is false when the account has none.
func (dispatcher *Dispatcher) selectRepository(executionContext context.Context) (string, bool, error) {
	repositoryNames := repositories.Names(dispatcher.lister.FetchAll(executionContext, dispatcher.owner))
	if len(repositoryNames) == 0 {
		dispatcher.printf(noRepositoriesTemplateConstant, dispatcher.owner)
		return "", false, nil
	}

	selectedIndex, selectionError := dispatcher.prompter.Select(repositoryQuestionConstant, repositoryNames)
	if selectionError != nil {
		return "", false, fmt.Errorf(repositorySelectionErrorTemplateConstant, selectionError)
	}
	return repositoryNames[selectedIndex], true, nil
}

func (dispatcher *Dispatcher) repositoryIdentifier(repositoryName string) string {
	return fmt.Sprintf(repositoryIdentifierTemplateConstant, dispatcher.owner, repositoryName)
}

func (dispatcher *Dispatcher) logMutationFailure(repositoryIdentifier string, mutationError error, additionalFields ...zap.Field) {
	fields := append([]zap.Field{
		zap.String(logFieldRepositoryConstant, repositoryIdentifier),
		zap.Error(mutationError),
	}, additionalFields...)
	dispatcher.logger.Warn(mutationFailedMessageConstant, fields...)
}

func (dispatcher *Dispatcher) printf(format string, arguments ...any) {
	_, _ = fmt.Fprintf(dispatcher.output, format, arguments...)
}

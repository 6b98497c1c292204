package dispatch

import (
	"strings"

	"github.com/temirov/repokit/internal/dependencies"
	"github.com/temirov/repokit/internal/repositories"
	"github.com/temirov/repokit/internal/topics"
)

const (
	configurationOwnerKeyConstant            = "owner"
	configurationBackendKeyConstant          = "backend"
	configurationEndpointKeyConstant         = "graphql_endpoint"
	configurationPageSizeKeyConstant         = "page_size"
	configurationTopicLimitKeyConstant       = "topic_limit"
	configurationBranchCandidatesKeyConstant = "default_branch_candidates"
	configurationKeySeparatorConstant        = "."
)

// CommandConfiguration captures persistent settings for the repository commands.
type CommandConfiguration struct {
	Owner                   string                   `mapstructure:"owner"`
	Backend                 string                   `mapstructure:"backend"`
	GraphQLEndpoint         string                   `mapstructure:"graphql_endpoint"`
	PageSize                int                      `mapstructure:"page_size"`
	TopicLimit              int                      `mapstructure:"topic_limit"`
	DefaultBranchCandidates []string                 `mapstructure:"default_branch_candidates"`
	TopicSuggestions        []topics.SuggestionEntry `mapstructure:"topic_suggestions"`
}

// DefaultBranchCandidates lists the branches offered by Set Default Branch.
func DefaultBranchCandidates() []string {
	return []string{"main", "master", "develop"}
}

// DefaultCommandConfiguration returns baseline configuration values for the repository commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Owner:                   "",
		Backend:                 string(dependencies.BackendGitHubCLI),
		GraphQLEndpoint:         "",
		PageSize:                repositories.DefaultPageSize,
		TopicLimit:              repositories.DefaultTopicLimit,
		DefaultBranchCandidates: DefaultBranchCandidates(),
		TopicSuggestions:        nil,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
// Topic suggestions have no default entry; an empty list selects the built-in table.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationOwnerKeyConstant:            defaults.Owner,
		rootKey + configurationKeySeparatorConstant + configurationBackendKeyConstant:          defaults.Backend,
		rootKey + configurationKeySeparatorConstant + configurationEndpointKeyConstant:         defaults.GraphQLEndpoint,
		rootKey + configurationKeySeparatorConstant + configurationPageSizeKeyConstant:         defaults.PageSize,
		rootKey + configurationKeySeparatorConstant + configurationTopicLimitKeyConstant:       defaults.TopicLimit,
		rootKey + configurationKeySeparatorConstant + configurationBranchCandidatesKeyConstant: defaults.DefaultBranchCandidates,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Backend = strings.ToLower(strings.TrimSpace(configuration.Backend))
	sanitized.GraphQLEndpoint = strings.TrimSpace(configuration.GraphQLEndpoint)
	sanitized.DefaultBranchCandidates = sanitizeBranchCandidates(configuration.DefaultBranchCandidates)

	return sanitized
}

func sanitizeBranchCandidates(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}

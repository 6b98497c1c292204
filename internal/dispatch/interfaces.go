package dispatch

import (
	"context"

	"github.com/temirov/repokit/internal/githubcli"
	"github.com/temirov/repokit/internal/repositories"
)

// RepositoryLister returns every repository for an account. Failures surface as a shorter list.
type RepositoryLister interface {
	FetchAll(executionContext context.Context, owner string) []repositories.RepositorySummary
}

// Mutator applies repository metadata edits. Repository identifiers take the OWNER/NAME form.
type Mutator interface {
	AddTopics(executionContext context.Context, repository string, topics []string) error
	SetDefaultBranch(executionContext context.Context, repository string, branch string) error
	EnableFeature(executionContext context.Context, repository string, feature githubcli.RepositoryFeature) error
}

// Prompter collects operator answers.
type Prompter interface {
	Select(question string, choices []string) (int, error)
	MultiSelect(question string, choices []string) ([]int, error)
	Input(question string, defaultValue string) (string, error)
}

// SuggestionSource proposes topics for a repository name.
type SuggestionSource interface {
	Suggest(repositoryName string) []string
}

// ViewerLoginResolver looks up the authenticated account login.
type ViewerLoginResolver interface {
	ResolveViewerLogin(executionContext context.Context) (string, error)
}

package repositories

import "context"

const (
	// DefaultPageSize is the number of repositories requested per page.
	DefaultPageSize = 100
	// DefaultTopicLimit is the number of topic labels requested per repository.
	DefaultTopicLimit = 10
)

// RepositorySummary is an immutable snapshot of a repository's listing metadata.
// An empty Description means the repository has none.
type RepositorySummary struct {
	Name        string
	Description string
	URL         string
	IsPrivate   bool
	Topics      []string
}

// HasDescription reports whether the repository carries a description.
func (summary RepositorySummary) HasDescription() bool {
	return len(summary.Description) > 0
}

// HasTopics reports whether the repository carries at least one topic.
func (summary RepositorySummary) HasTopics() bool {
	return len(summary.Topics) > 0
}

// PageCursor marks the position reached after a page.
type PageCursor struct {
	EndCursor   string
	HasNextPage bool
}

// PageRequest describes a single page query. An empty After requests the first page.
type PageRequest struct {
	Owner      string
	After      string
	PageSize   int
	TopicLimit int
}

// Page is one page of repositories plus the cursor for the next request.
type Page struct {
	Repositories []RepositorySummary
	Cursor       PageCursor
}

// PageFetcher retrieves a single page of repositories.
type PageFetcher interface {
	FetchRepositoryPage(executionContext context.Context, request PageRequest) (Page, error)
}

package repositories

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	pageFetcherNotConfiguredMessageConstant = "repository page fetcher not configured"
	pageFetchFailedMessageConstant          = "repository page fetch failed; returning partial results"
	pageCursorStalledMessageConstant        = "repository pagination cursor did not advance; stopping"
	pageFetchedMessageConstant              = "repository page fetched"
	repositoriesFetchedMessageConstant      = "repositories fetched"
	logFieldOwnerConstant                   = "owner"
	logFieldPageNumberConstant              = "page_number"
	logFieldPageCountConstant               = "page_repository_count"
	logFieldAccumulatedCountConstant        = "accumulated_repository_count"
	logFieldEndCursorConstant               = "end_cursor"
)

// ErrPageFetcherNotConfigured indicates the fetcher was constructed without a page source.
var ErrPageFetcherNotConfigured = errors.New(pageFetcherNotConfiguredMessageConstant)

// FetcherOptions tunes page requests.
type FetcherOptions struct {
	PageSize   int
	TopicLimit int
}

// Fetcher collects every repository for an account by following page cursors.
type Fetcher struct {
	pageFetcher PageFetcher
	logger      *zap.Logger
	options     FetcherOptions
}

// NewFetcher constructs a Fetcher. Non-positive options fall back to DefaultPageSize and DefaultTopicLimit.
func NewFetcher(pageFetcher PageFetcher, logger *zap.Logger, options FetcherOptions) (*Fetcher, error) {
	if pageFetcher == nil {
		return nil, ErrPageFetcherNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.PageSize <= 0 {
		options.PageSize = DefaultPageSize
	}
	if options.TopicLimit <= 0 {
		options.TopicLimit = DefaultTopicLimit
	}
	return &Fetcher{pageFetcher: pageFetcher, logger: logger, options: options}, nil
}

// FetchAll returns the owner's repositories in the order the pages deliver them.
// A failing page stops pagination and the repositories accumulated before it are returned.
func (fetcher *Fetcher) FetchAll(executionContext context.Context, owner string) []RepositorySummary {
	accumulated := make([]RepositorySummary, 0)
	request := PageRequest{
		Owner:      owner,
		PageSize:   fetcher.options.PageSize,
		TopicLimit: fetcher.options.TopicLimit,
	}

	for pageNumber := 1; ; pageNumber++ {
		page, fetchError := fetcher.pageFetcher.FetchRepositoryPage(executionContext, request)
		if fetchError != nil {
			fetcher.logger.Warn(
				pageFetchFailedMessageConstant,
				zap.String(logFieldOwnerConstant, owner),
				zap.Int(logFieldPageNumberConstant, pageNumber),
				zap.Int(logFieldAccumulatedCountConstant, len(accumulated)),
				zap.Error(fetchError),
			)
			break
		}

		accumulated = append(accumulated, page.Repositories...)
		fetcher.logger.Debug(
			pageFetchedMessageConstant,
			zap.String(logFieldOwnerConstant, owner),
			zap.Int(logFieldPageNumberConstant, pageNumber),
			zap.Int(logFieldPageCountConstant, len(page.Repositories)),
		)

		if !page.Cursor.HasNextPage {
			break
		}
		if len(page.Cursor.EndCursor) == 0 || page.Cursor.EndCursor == request.After {
			fetcher.logger.Warn(
				pageCursorStalledMessageConstant,
				zap.String(logFieldOwnerConstant, owner),
				zap.Int(logFieldPageNumberConstant, pageNumber),
				zap.String(logFieldEndCursorConstant, page.Cursor.EndCursor),
			)
			break
		}
		request.After = page.Cursor.EndCursor
	}

	fetcher.logger.Debug(
		repositoriesFetchedMessageConstant,
		zap.String(logFieldOwnerConstant, owner),
		zap.Int(logFieldAccumulatedCountConstant, len(accumulated)),
	)
	return accumulated
}

package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repokit/internal/repositories"
)

const (
	testOwnerConstant            = "octocat"
	testPartialFailureMessage    = "repository page fetch failed; returning partial results"
	testCursorStalledMessage     = "repository pagination cursor did not advance; stopping"
	testPageCursorTemplate       = "cursor-%d"
	testRepositoryNameTemplate   = "repository-%d-%d"
	testCustomPageSizeConstant   = 25
	testCustomTopicLimitConstant = 5
)

type scriptedPageResponse struct {
	page repositories.Page
	err  error
}

type scriptedPageFetcher struct {
	responses        []scriptedPageResponse
	recordedRequests []repositories.PageRequest
}

func (fetcher *scriptedPageFetcher) FetchRepositoryPage(executionContext context.Context, request repositories.PageRequest) (repositories.Page, error) {
	fetcher.recordedRequests = append(fetcher.recordedRequests, request)
	index := len(fetcher.recordedRequests) - 1
	if index >= len(fetcher.responses) {
		return repositories.Page{}, errors.New("unexpected page request")
	}
	response := fetcher.responses[index]
	return response.page, response.err
}

func buildPage(pageIndex int, repositoryCount int, hasNextPage bool) repositories.Page {
	summaries := make([]repositories.RepositorySummary, 0, repositoryCount)
	for repositoryIndex := 0; repositoryIndex < repositoryCount; repositoryIndex++ {
		summaries = append(summaries, repositories.RepositorySummary{Name: fmt.Sprintf(testRepositoryNameTemplate, pageIndex, repositoryIndex)})
	}
	return repositories.Page{
		Repositories: summaries,
		Cursor: repositories.PageCursor{
			EndCursor:   fmt.Sprintf(testPageCursorTemplate, pageIndex),
			HasNextPage: hasNextPage,
		},
	}
}

func concatenateNames(pages ...repositories.Page) []string {
	names := make([]string, 0)
	for _, page := range pages {
		names = append(names, repositories.Names(page.Repositories)...)
	}
	return names
}

func TestNewFetcherRequiresPageFetcher(testInstance *testing.T) {
	fetcher, creationError := repositories.NewFetcher(nil, zap.NewNop(), repositories.FetcherOptions{})
	require.ErrorIs(testInstance, creationError, repositories.ErrPageFetcherNotConfigured)
	require.Nil(testInstance, fetcher)
}

func TestFetcherFetchAll(testInstance *testing.T) {
	firstPage := buildPage(1, 3, true)
	secondPage := buildPage(2, 2, true)
	lastPage := buildPage(3, 1, false)

	testCases := []struct {
		name             string
		responses        []scriptedPageResponse
		expectedNames    []string
		expectedRequests int
		expectedWarnings []string
		expectedCursors  []string
	}{
		{
			name:             "all_pages_succeed",
			responses:        []scriptedPageResponse{{page: firstPage}, {page: secondPage}, {page: lastPage}},
			expectedNames:    concatenateNames(firstPage, secondPage, lastPage),
			expectedRequests: 3,
			expectedCursors:  []string{"", "cursor-1", "cursor-2"},
		},
		{
			name:             "zero_repositories",
			responses:        []scriptedPageResponse{{page: repositories.Page{}}},
			expectedNames:    []string{},
			expectedRequests: 1,
			expectedCursors:  []string{""},
		},
		{
			name:             "first_page_fails",
			responses:        []scriptedPageResponse{{err: errors.New("gh exited with code 1")}},
			expectedNames:    []string{},
			expectedRequests: 1,
			expectedWarnings: []string{testPartialFailureMessage},
			expectedCursors:  []string{""},
		},
		{
			name:             "later_page_fails_keeps_prior_pages",
			responses:        []scriptedPageResponse{{page: firstPage}, {page: secondPage}, {err: errors.New("malformed response")}},
			expectedNames:    concatenateNames(firstPage, secondPage),
			expectedRequests: 3,
			expectedWarnings: []string{testPartialFailureMessage},
			expectedCursors:  []string{"", "cursor-1", "cursor-2"},
		},
		{
			name: "stalled_cursor_stops_pagination",
			responses: []scriptedPageResponse{
				{page: firstPage},
				{page: repositories.Page{Repositories: secondPage.Repositories, Cursor: repositories.PageCursor{EndCursor: "cursor-1", HasNextPage: true}}},
			},
			expectedNames:    concatenateNames(firstPage, secondPage),
			expectedRequests: 2,
			expectedWarnings: []string{testCursorStalledMessage},
			expectedCursors:  []string{"", "cursor-1"},
		},
		{
			name: "missing_cursor_stops_pagination",
			responses: []scriptedPageResponse{
				{page: repositories.Page{Repositories: firstPage.Repositories, Cursor: repositories.PageCursor{HasNextPage: true}}},
			},
			expectedNames:    concatenateNames(firstPage),
			expectedRequests: 1,
			expectedWarnings: []string{testCursorStalledMessage},
			expectedCursors:  []string{""},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			pageFetcher := &scriptedPageFetcher{responses: testCase.responses}

			fetcher, creationError := repositories.NewFetcher(pageFetcher, zap.New(observerCore), repositories.FetcherOptions{})
			require.NoError(testInstance, creationError)

			summaries := fetcher.FetchAll(context.Background(), testOwnerConstant)
			require.NotNil(testInstance, summaries)
			require.Equal(testInstance, testCase.expectedNames, repositories.Names(summaries))
			require.Len(testInstance, pageFetcher.recordedRequests, testCase.expectedRequests)

			recordedCursors := make([]string, 0, len(pageFetcher.recordedRequests))
			for _, request := range pageFetcher.recordedRequests {
				require.Equal(testInstance, testOwnerConstant, request.Owner)
				require.Equal(testInstance, repositories.DefaultPageSize, request.PageSize)
				require.Equal(testInstance, repositories.DefaultTopicLimit, request.TopicLimit)
				recordedCursors = append(recordedCursors, request.After)
			}
			require.Equal(testInstance, testCase.expectedCursors, recordedCursors)

			warningMessages := make([]string, 0)
			for _, entry := range observedLogs.FilterLevelExact(zapcore.WarnLevel).All() {
				warningMessages = append(warningMessages, entry.Message)
			}
			if len(testCase.expectedWarnings) == 0 {
				require.Empty(testInstance, warningMessages)
			} else {
				require.Equal(testInstance, testCase.expectedWarnings, warningMessages)
			}
		})
	}
}

func TestFetcherPartialResultProperty(testInstance *testing.T) {
	for totalPages := 1; totalPages <= 5; totalPages++ {
		for failingPage := 1; failingPage <= totalPages; failingPage++ {
			testInstance.Run(fmt.Sprintf("pages_%d_failing_%d", totalPages, failingPage), func(testInstance *testing.T) {
				responses := make([]scriptedPageResponse, 0, totalPages)
				successfulPages := make([]repositories.Page, 0, failingPage-1)
				for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
					if pageIndex == failingPage {
						responses = append(responses, scriptedPageResponse{err: errors.New("page failure")})
						continue
					}
					page := buildPage(pageIndex, pageIndex+1, pageIndex < totalPages)
					responses = append(responses, scriptedPageResponse{page: page})
					if pageIndex < failingPage {
						successfulPages = append(successfulPages, page)
					}
				}

				fetcher, creationError := repositories.NewFetcher(&scriptedPageFetcher{responses: responses}, nil, repositories.FetcherOptions{})
				require.NoError(testInstance, creationError)

				summaries := fetcher.FetchAll(context.Background(), testOwnerConstant)
				require.Equal(testInstance, concatenateNames(successfulPages...), repositories.Names(summaries))
			})
		}
	}
}

func TestFetcherHonorsCustomOptions(testInstance *testing.T) {
	pageFetcher := &scriptedPageFetcher{responses: []scriptedPageResponse{{page: buildPage(1, 1, false)}}}
	fetcher, creationError := repositories.NewFetcher(pageFetcher, zap.NewNop(), repositories.FetcherOptions{
		PageSize:   testCustomPageSizeConstant,
		TopicLimit: testCustomTopicLimitConstant,
	})
	require.NoError(testInstance, creationError)

	fetcher.FetchAll(context.Background(), testOwnerConstant)

	require.Len(testInstance, pageFetcher.recordedRequests, 1)
	require.Equal(testInstance, testCustomPageSizeConstant, pageFetcher.recordedRequests[0].PageSize)
	require.Equal(testInstance, testCustomTopicLimitConstant, pageFetcher.recordedRequests[0].TopicLimit)
}

package githubapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repokit/internal/githubapi"
	"github.com/temirov/repokit/internal/repositories"
)

const (
	testTokenConstant         = "test-token"
	testOwnerConstant         = "octocat"
	testCursorConstant        = "Y3Vyc29yOjE="
	testFirstPageResponse     = `{"data":{"user":{"repositories":{"nodes":[{"name":"agent-api-dashboard","description":"Ops board","url":"https://github.com/octocat/agent-api-dashboard","isPrivate":false,"repositoryTopics":{"nodes":[{"topic":{"name":"api"}}]}},{"name":"notes","description":null,"url":"https://github.com/octocat/notes","isPrivate":true,"repositoryTopics":{"nodes":[]}}],"pageInfo":{"hasNextPage":true,"endCursor":"Y3Vyc29yOjE="}}}}}`
	testLastPageResponse      = `{"data":{"user":{"repositories":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":null}}}}}`
	testMissingUserResponse   = `{"data":{"user":null}}`
	testGraphQLErrorsResponse = `{"data":null,"errors":[{"message":"Could not resolve to a User with the login of 'octocat'."}]}`
)

type recordedGraphQLRequest struct {
	Authorization string
	Query         string
	Variables     map[string]any
}

func newGraphQLServer(testInstance *testing.T, statusCode int, responseBody string, recorded *[]recordedGraphQLRequest) *httptest.Server {
	testInstance.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		requestBody, readError := io.ReadAll(request.Body)
		require.NoError(testInstance, readError)

		var payload struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(testInstance, json.Unmarshal(requestBody, &payload))
		*recorded = append(*recorded, recordedGraphQLRequest{
			Authorization: request.Header.Get("Authorization"),
			Query:         payload.Query,
			Variables:     payload.Variables,
		})

		responseWriter.Header().Set("Content-Type", "application/json")
		responseWriter.WriteHeader(statusCode)
		_, _ = responseWriter.Write([]byte(responseBody))
	}))
	testInstance.Cleanup(server.Close)
	return server
}

func TestNewClientRequiresToken(testInstance *testing.T) {
	client, creationError := githubapi.NewClient(githubapi.ClientOptions{Token: "  "})
	require.ErrorIs(testInstance, creationError, githubapi.ErrTokenNotConfigured)
	require.Nil(testInstance, client)
}

func TestFetchRepositoryPageFirstPage(testInstance *testing.T) {
	var recorded []recordedGraphQLRequest
	server := newGraphQLServer(testInstance, http.StatusOK, testFirstPageResponse, &recorded)

	client, creationError := githubapi.NewClient(githubapi.ClientOptions{Endpoint: server.URL, Token: testTokenConstant})
	require.NoError(testInstance, creationError)

	page, fetchError := client.FetchRepositoryPage(context.Background(), repositories.PageRequest{Owner: testOwnerConstant, PageSize: 50, TopicLimit: 5})
	require.NoError(testInstance, fetchError)

	require.Equal(testInstance, repositories.Page{
		Repositories: []repositories.RepositorySummary{
			{Name: "agent-api-dashboard", Description: "Ops board", URL: "https://github.com/octocat/agent-api-dashboard", Topics: []string{"api"}},
			{Name: "notes", URL: "https://github.com/octocat/notes", IsPrivate: true, Topics: []string{}},
		},
		Cursor: repositories.PageCursor{EndCursor: testCursorConstant, HasNextPage: true},
	}, page)

	require.Len(testInstance, recorded, 1)
	require.Equal(testInstance, "Bearer "+testTokenConstant, recorded[0].Authorization)
	require.Contains(testInstance, recorded[0].Query, "user(login: $owner)")
	require.Contains(testInstance, recorded[0].Query, "orderBy: {field: UPDATED_AT, direction: DESC}")
	require.Equal(testInstance, testOwnerConstant, recorded[0].Variables["owner"])
	require.EqualValues(testInstance, 50, recorded[0].Variables["pageSize"])
	require.EqualValues(testInstance, 5, recorded[0].Variables["topicLimit"])
	require.Nil(testInstance, recorded[0].Variables["after"])
}

func TestFetchRepositoryPageWithCursor(testInstance *testing.T) {
	var recorded []recordedGraphQLRequest
	server := newGraphQLServer(testInstance, http.StatusOK, testLastPageResponse, &recorded)

	client, creationError := githubapi.NewClient(githubapi.ClientOptions{Endpoint: server.URL, Token: testTokenConstant})
	require.NoError(testInstance, creationError)

	page, fetchError := client.FetchRepositoryPage(context.Background(), repositories.PageRequest{Owner: testOwnerConstant, After: testCursorConstant})
	require.NoError(testInstance, fetchError)
	require.Empty(testInstance, page.Repositories)
	require.False(testInstance, page.Cursor.HasNextPage)
	require.Empty(testInstance, page.Cursor.EndCursor)

	require.Equal(testInstance, testCursorConstant, recorded[0].Variables["after"])
	require.EqualValues(testInstance, repositories.DefaultPageSize, recorded[0].Variables["pageSize"])
	require.EqualValues(testInstance, repositories.DefaultTopicLimit, recorded[0].Variables["topicLimit"])
}

func TestFetchRepositoryPageFailures(testInstance *testing.T) {
	testCases := []struct {
		name         string
		statusCode   int
		responseBody string
		expectedIs   error
		expectedText string
	}{
		{name: "graphql_errors", statusCode: http.StatusOK, responseBody: testGraphQLErrorsResponse, expectedText: "Could not resolve"},
		{name: "missing_user", statusCode: http.StatusOK, responseBody: testMissingUserResponse, expectedIs: githubapi.ErrOwnerNotFound},
		{name: "http_failure", statusCode: http.StatusUnauthorized, responseBody: `{"message":"Bad credentials"}`, expectedText: "FetchRepositoryPage"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var recorded []recordedGraphQLRequest
			server := newGraphQLServer(testInstance, testCase.statusCode, testCase.responseBody, &recorded)

			client, creationError := githubapi.NewClient(githubapi.ClientOptions{Endpoint: server.URL, Token: testTokenConstant})
			require.NoError(testInstance, creationError)

			_, fetchError := client.FetchRepositoryPage(context.Background(), repositories.PageRequest{Owner: testOwnerConstant})
			require.Error(testInstance, fetchError)
			require.IsType(testInstance, githubapi.OperationError{}, fetchError)
			if testCase.expectedIs != nil {
				require.ErrorIs(testInstance, fetchError, testCase.expectedIs)
			}
			if len(testCase.expectedText) > 0 {
				require.True(testInstance, strings.Contains(fetchError.Error(), testCase.expectedText), fetchError.Error())
			}
		})
	}
}

func TestFetchRepositoryPageRequiresOwner(testInstance *testing.T) {
	client, creationError := githubapi.NewClient(githubapi.ClientOptions{Token: testTokenConstant})
	require.NoError(testInstance, creationError)

	_, fetchError := client.FetchRepositoryPage(context.Background(), repositories.PageRequest{})
	require.ErrorIs(testInstance, fetchError, githubapi.ErrOwnerNotConfigured)
}

func TestFetcherFollowsGraphQLCursors(testInstance *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		requestCount++
		responseWriter.Header().Set("Content-Type", "application/json")
		if requestCount == 1 {
			_, _ = responseWriter.Write([]byte(testFirstPageResponse))
			return
		}
		_, _ = responseWriter.Write([]byte(testLastPageResponse))
	}))
	testInstance.Cleanup(server.Close)

	client, creationError := githubapi.NewClient(githubapi.ClientOptions{Endpoint: server.URL, Token: testTokenConstant})
	require.NoError(testInstance, creationError)

	fetcher, fetcherError := repositories.NewFetcher(client, nil, repositories.FetcherOptions{})
	require.NoError(testInstance, fetcherError)

	repositorySummaries := fetcher.FetchAll(context.Background(), testOwnerConstant)
	require.Equal(testInstance, []string{"agent-api-dashboard", "notes"}, repositories.Names(repositorySummaries))
	require.Equal(testInstance, 2, requestCount)
}

package topics

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTableParseErrorTemplateConstant = "failed to parse default topic suggestions: %w"
	emptyKeywordMessageConstant            = "topic suggestion keyword must be non-empty"
)

//go:embed default_suggestions.yaml
var embeddedDefaultSuggestions []byte

// ErrEmptyKeyword indicates a suggestion entry without a keyword.
var ErrEmptyKeyword = errors.New(emptyKeywordMessageConstant)

// SuggestionEntry associates a name keyword with suggested topics.
type SuggestionEntry struct {
	Keyword string   `yaml:"keyword" mapstructure:"keyword"`
	Topics  []string `yaml:"topics" mapstructure:"topics"`
}

// SuggestionTable is an ordered keyword table. Lookups honor entry order.
type SuggestionTable struct {
	entries []SuggestionEntry
}

type suggestionDocument struct {
	Suggestions []SuggestionEntry `yaml:"suggestions"`
}

// NewSuggestionTable copies the entries into a table, preserving their order.
func NewSuggestionTable(entries []SuggestionEntry) (SuggestionTable, error) {
	copiedEntries := make([]SuggestionEntry, 0, len(entries))
	for _, entry := range entries {
		if len(entry.Keyword) == 0 {
			return SuggestionTable{}, ErrEmptyKeyword
		}
		copiedEntries = append(copiedEntries, SuggestionEntry{
			Keyword: entry.Keyword,
			Topics:  append([]string{}, entry.Topics...),
		})
	}
	return SuggestionTable{entries: copiedEntries}, nil
}

// DefaultSuggestionTable returns the built-in keyword table.
func DefaultSuggestionTable() (SuggestionTable, error) {
	var document suggestionDocument
	if decodeError := yaml.Unmarshal(embeddedDefaultSuggestions, &document); decodeError != nil {
		return SuggestionTable{}, fmt.Errorf(defaultTableParseErrorTemplateConstant, decodeError)
	}
	return NewSuggestionTable(document.Suggestions)
}

// Suggest returns the topics of the first keyword, in table order, contained in repositoryName.
// Matching is case-sensitive. No match yields an empty slice.
func (table SuggestionTable) Suggest(repositoryName string) []string {
	for _, entry := range table.entries {
		if strings.Contains(repositoryName, entry.Keyword) {
			return append([]string{}, entry.Topics...)
		}
	}
	return []string{}
}

// Entries returns a copy of the table entries in order.
func (table SuggestionTable) Entries() []SuggestionEntry {
	copiedEntries := make([]SuggestionEntry, 0, len(table.entries))
	for _, entry := range table.entries {
		copiedEntries = append(copiedEntries, SuggestionEntry{Keyword: entry.Keyword, Topics: append([]string{}, entry.Topics...)})
	}
	return copiedEntries
}

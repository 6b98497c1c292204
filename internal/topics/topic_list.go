package topics

import "strings"

const topicSeparatorConstant = ","

// ParseTopicList splits a comma-separated line, trims each entry, and drops empty entries.
func ParseTopicList(line string) []string {
	parsedTopics := make([]string, 0)
	for _, candidate := range strings.Split(line, topicSeparatorConstant) {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		parsedTopics = append(parsedTopics, trimmedCandidate)
	}
	return parsedTopics
}

// FormatTopicLine joins topics into the comma-separated form accepted by ParseTopicList.
func FormatTopicLine(topicList []string) string {
	return strings.Join(topicList, topicSeparatorConstant)
}

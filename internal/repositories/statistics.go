package repositories

// Statistics summarizes a fetched repository set.
type Statistics struct {
	Total              int
	Public             int
	Private            int
	WithDescription    int
	WithoutDescription int
	WithTopics         int
}

// ComputeStatistics counts visibility, description, and topic coverage.
func ComputeStatistics(summaries []RepositorySummary) Statistics {
	statistics := Statistics{Total: len(summaries)}
	for _, summary := range summaries {
		if summary.IsPrivate {
			statistics.Private++
		} else {
			statistics.Public++
		}
		if summary.HasDescription() {
			statistics.WithDescription++
		} else {
			statistics.WithoutDescription++
		}
		if summary.HasTopics() {
			statistics.WithTopics++
		}
	}
	return statistics
}

// FindByName returns the repository with the given name.
func FindByName(summaries []RepositorySummary, name string) (RepositorySummary, bool) {
	for _, summary := range summaries {
		if summary.Name == name {
			return summary, true
		}
	}
	return RepositorySummary{}, false
}

// Names lists repository names in order.
func Names(summaries []RepositorySummary) []string {
	names := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		names = append(names, summary.Name)
	}
	return names
}

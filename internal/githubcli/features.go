package githubcli

import "fmt"

const enableFeatureFlagTemplateConstant = "--enable-%s=true"

// RepositoryFeature names a toggleable repository capability.
type RepositoryFeature string

// Supported repository features, in menu order.
const (
	RepositoryFeatureWiki        RepositoryFeature = RepositoryFeature("wiki")
	RepositoryFeatureIssues      RepositoryFeature = RepositoryFeature("issues")
	RepositoryFeatureProjects    RepositoryFeature = RepositoryFeature("projects")
	RepositoryFeatureDiscussions RepositoryFeature = RepositoryFeature("discussions")
)

var repositoryFeatureDisplayNames = map[RepositoryFeature]string{
	RepositoryFeatureWiki:        "Wikis",
	RepositoryFeatureIssues:      "Issues",
	RepositoryFeatureProjects:    "Projects",
	RepositoryFeatureDiscussions: "Discussions",
}

// RepositoryFeatures lists every supported feature in menu order.
func RepositoryFeatures() []RepositoryFeature {
	return []RepositoryFeature{
		RepositoryFeatureWiki,
		RepositoryFeatureIssues,
		RepositoryFeatureProjects,
		RepositoryFeatureDiscussions,
	}
}

// DisplayName returns the operator-facing label.
func (feature RepositoryFeature) DisplayName() string {
	if displayName, known := repositoryFeatureDisplayNames[feature]; known {
		return displayName
	}
	return string(feature)
}

// IsValid reports whether gh repo edit supports enabling the feature.
func (feature RepositoryFeature) IsValid() bool {
	_, known := repositoryFeatureDisplayNames[feature]
	return known
}

func (feature RepositoryFeature) enableFlag() string {
	return fmt.Sprintf(enableFeatureFlagTemplateConstant, feature)
}

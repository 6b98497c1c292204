package dispatch

// Action identifies a menu entry.
type Action int

// Menu actions in display order.
const (
	ActionList Action = iota
	ActionAddTopics
	ActionSetDefaultBranch
	ActionEnableFeatures
	ActionGetStatistics
	ActionExit
)

var actionLabels = map[Action]string{
	ActionList:             "List All Repositories",
	ActionAddTopics:        "Add Topics to Repo",
	ActionSetDefaultBranch: "Set Default Branch",
	ActionEnableFeatures:   "Enable Features",
	ActionGetStatistics:    "Get Statistics",
	ActionExit:             "Exit",
}

var actionLogNames = map[Action]string{
	ActionList:             "list",
	ActionAddTopics:        "add_topics",
	ActionSetDefaultBranch: "set_default_branch",
	ActionEnableFeatures:   "enable_features",
	ActionGetStatistics:    "get_statistics",
	ActionExit:             "exit",
}

// MenuActions returns every action in display order.
func MenuActions() []Action {
	return []Action{
		ActionList,
		ActionAddTopics,
		ActionSetDefaultBranch,
		ActionEnableFeatures,
		ActionGetStatistics,
		ActionExit,
	}
}

// Label returns the menu text for the action.
func (action Action) Label() string {
	return actionLabels[action]
}

func (action Action) logName() string {
	return actionLogNames[action]
}

func menuLabels() []string {
	actions := MenuActions()
	labels := make([]string, 0, len(actions))
	for _, action := range actions {
		labels = append(labels, action.Label())
	}
	return labels
}

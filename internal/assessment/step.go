package assessment

// Step describes how a state is presented: its wizard position, title and
// the actions a client may take from it.
type Step struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Actions []string `json:"actions"`
}

// Action names used in Step.Actions.
const (
	ActionAddSymptom    = "add_symptom"
	ActionRemoveSymptom = "remove_symptom"
	ActionNext          = "next"
	ActionBack          = "back"
	ActionSetDetails    = "set_details"
	ActionSubmit        = "submit"
	ActionCancel        = "cancel"
	ActionViewResult    = "view_result"
)

// ProgressLabels are the wizard headings in order.
var ProgressLabels = []string{"Symptoms", "Confirm Details"}

var steps = map[State]Step{
	CollectingSymptoms: {
		Number:  1,
		Title:   "Symptoms",
		Actions: []string{ActionAddSymptom, ActionRemoveSymptom, ActionNext, ActionCancel},
	},
	ConfirmingDetails: {
		Number:  2,
		Title:   "Confirm Details",
		Actions: []string{ActionSetDetails, ActionBack, ActionSubmit, ActionCancel},
	},
	Scoring: {
		Number:  2,
		Title:   "Analyzing",
		Actions: []string{},
	},
	Complete: {
		Number:  3,
		Title:   "Results",
		Actions: []string{ActionViewResult},
	},
}

// StepFor returns the presentation of s. Unknown states get a zero Step.
func StepFor(s State) Step {
	st, ok := steps[s]
	if !ok {
		return Step{Actions: []string{}}
	}
	actions := make([]string, len(st.Actions))
	copy(actions, st.Actions)
	st.Actions = actions
	return st
}

// Allows reports whether action is permitted from s.
func Allows(s State, action string) bool {
	for _, a := range steps[s].Actions {
		if a == action {
			return true
		}
	}
	return false
}

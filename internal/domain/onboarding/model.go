package onboarding

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wizard steps in the order a new practice walks through them.
const (
	StepPracticeProfile = "practice-profile"
	StepPractitioners   = "practitioners"
	StepImplantCatalog  = "implant-catalog"
	StepPreferences     = "preferences"
	StepDone            = "done"
)

var stepOrder = []string{
	StepPracticeProfile,
	StepPractitioners,
	StepImplantCatalog,
	StepPreferences,
	StepDone,
}

// NextStep returns the step after the given one, or "" when the step is
// unknown or already the last.
func NextStep(step string) string {
	for i, s := range stepOrder {
		if s == step && i < len(stepOrder)-1 {
			return stepOrder[i+1]
		}
	}
	return ""
}

func ValidStep(step string) bool {
	for _, s := range stepOrder {
		if s == step {
			return true
		}
	}
	return false
}

// State maps to the onboarding_state table. There is one row per tenant
// schema; StepData accumulates the payload of each completed step keyed
// by step name.
type State struct {
	ID          uuid.UUID                  `db:"id" json:"id"`
	CurrentStep string                     `db:"current_step" json:"current_step"`
	Completed   bool                       `db:"completed" json:"completed"`
	StepData    map[string]json.RawMessage `db:"step_data" json:"step_data"`
	CreatedAt   time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                  `db:"updated_at" json:"updated_at"`
}

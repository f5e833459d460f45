package domain

// CarryMarker prefixes the observation text of an activity that was
// carried over from a prior workday.
const CarryMarker = "Continuada del día anterior"

// RejectionTask is the description of the synthetic activity appended to
// a workday when a supervisor rejects it.
const RejectionTask = "Jornada rechazada"

// Activity is a planned or carried unit of work within a workday.
type Activity struct {
	ActivityID  string `json:"activityID"`
	WorkdayID   string `json:"workdayID"`
	Task        string `json:"task"` // free-text description
	Goal        string `json:"goal"`
	StateID     string `json:"stateID"`
	Observation string `json:"observation,omitempty"`
	Carried     bool   `json:"carried"`
	// OriginActivityID references the activity this one was cloned from
	// when Carried is true. Lookup-only: deleting the origin does not
	// cascade here.
	OriginActivityID string `json:"originActivityID,omitempty"`
	AuditFields

	// State is populated on composed reads.
	State *TaskState `json:"state,omitempty"`
	// Comments is populated on composed reads, newest first.
	Comments []Comment `json:"comments,omitempty"`
}

// Seeded task state names. StatePending is the default state for new and
// carried activities; StateDone marks an activity as completed for the
// report completion counters.
const (
	StatePending    = "Pendiente"
	StateInProgress = "En progreso"
	StateDone       = "Completado"
)

// TaskState is a lookup value describing an activity's progress
// (Pendiente, En progreso, Completado, ...).
type TaskState struct {
	StateID string `json:"stateID"`
	Name    string `json:"name"`
	AuditFields
}

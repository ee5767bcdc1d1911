package models

// Patient is the patient record as served by the backend. It is referenced
// by appointments but owned by the patients module; only the session
// counters are mutated from here.
type Patient struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Pathology         string `json:"pathology,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	PlannedSessions   int    `json:"plannedSessions"`
	CompletedSessions int    `json:"completedSessions"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

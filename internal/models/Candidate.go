package models

// Candidate carries caller-supplied values before validation. Fields are
// untyped so a value of the wrong kind (an age sent as "30") reaches the
// validator as-is instead of failing somewhere in decoding.
type Candidate struct {
	ID           int64 `json:"-"`
	FullName     any   `json:"fullName"`
	Age          any   `json:"age"`
	DateOfVisit  any   `json:"dateOfVisit"`
	TimeOfVisit  any   `json:"timeOfVisit"`
	Comments     any   `json:"comments"`
	AssistorName any   `json:"assistorName"`
}

func NewCandidate(ids IDGenerator, fullName, age, dateOfVisit, timeOfVisit, comments, assistorName any) *Candidate {
	return &Candidate{
		ID:           ids.Next(),
		FullName:     fullName,
		Age:          age,
		DateOfVisit:  dateOfVisit,
		TimeOfVisit:  timeOfVisit,
		Comments:     comments,
		AssistorName: assistorName,
	}
}

package models

// Visitor is a persisted visitor record. Field order matches the on-disk key order.
type Visitor struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	Age          int    `json:"age"`
	DateOfVisit  string `json:"dateOfVisit"`
	TimeOfVisit  string `json:"timeOfVisit"`
	Comments     string `json:"comments"`
	AssistorName string `json:"assistorName"`
}

// NewVisitor builds a record and assigns it the next id from ids.
func NewVisitor(ids IDGenerator, fullName string, age int, dateOfVisit, timeOfVisit, comments, assistorName string) *Visitor {
	return &Visitor{
		ID:           ids.Next(),
		FullName:     fullName,
		Age:          age,
		DateOfVisit:  dateOfVisit,
		TimeOfVisit:  timeOfVisit,
		Comments:     comments,
		AssistorName: assistorName,
	}
}

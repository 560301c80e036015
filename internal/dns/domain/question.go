package domain

import "fmt"

// Question represents a single entry in a DNS message's question section.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name string, t RRType, c RRClass) (Question, error) {
	q := Question{Name: name, Type: t, Class: c}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks that the question carries a non-empty name.
// Numeric type/class values are accepted permissively, matching the wire
// codec's tolerance for unrecognized RFC values (see wire package).
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("question name must not be empty")
	}
	return nil
}

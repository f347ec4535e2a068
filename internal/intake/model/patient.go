package model

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRe rejects anything other than letters and spaces, 1-100 characters.
var nameRe = regexp.MustCompile(`^[a-zA-Z\s]{1,100}$`)

const (
	minAge      = 0
	maxAge      = 120
	maxQueryLen = 500
)

// Field identifies one slot of PatientData.
type Field string

const (
	FieldNone  Field = ""
	FieldName  Field = "name"
	FieldAge   Field = "age"
	FieldQuery Field = "query"
)

// PatientData accumulates the registration fields collected over a
// conversation. A field stays absent until a valid value is assigned through
// its setter; once set it is never cleared.
type PatientData struct {
	Name  string `json:"name,omitempty"`
	Age   *int   `json:"age,omitempty"`
	Query string `json:"query,omitempty"`
}

// SetName validates and assigns the patient name. On failure the field is
// left untouched and the validation error is returned to the caller.
func (p *PatientData) SetName(raw string) error {
	if !nameRe.MatchString(raw) {
		return fmt.Errorf("name must contain only letters and spaces, and be 1-100 characters long")
	}
	p.Name = raw
	return nil
}

// SetAge validates and assigns the patient age.
func (p *PatientData) SetAge(age int) error {
	if age < minAge || age > maxAge {
		return fmt.Errorf("age must be between %d and %d", minAge, maxAge)
	}
	p.Age = &age
	return nil
}

// SetQuery trims, validates and assigns the symptom description.
func (p *PatientData) SetQuery(raw string) error {
	q := strings.TrimSpace(raw)
	if len(q) < 1 || len(q) > maxQueryLen {
		return fmt.Errorf("query must be between 1 and %d characters", maxQueryLen)
	}
	p.Query = q
	return nil
}

// NextMissing returns the first unfilled field in the fixed
// name -> age -> query order, or FieldNone when all slots are filled. A later
// field is never reported missing while an earlier one is still unset.
func (p *PatientData) NextMissing() Field {
	switch {
	case p.Name == "":
		return FieldName
	case p.Age == nil:
		return FieldAge
	case p.Query == "":
		return FieldQuery
	default:
		return FieldNone
	}
}

package engine

import (
	"fmt"
	"strings"

	"github.com/wardline/server/internal/intake/model"
)

const (
	promptNameWithQuery = "Hello. I have noted your symptoms. To proceed with registration, could you please provide the patient's full name?"
	promptNameWelcome   = "Hello. Welcome to the hospital reception. To begin, could you please provide the patient's full name?"
	promptNameRepeat    = "Could you please provide the patient's full name?"
	promptAge           = "Thank you. Now, could you please provide the patient's age?"
	promptQuery         = "Thank you. Could you briefly describe the main symptoms or reason for the visit?"
	replyClosing        = "You are welcome. Please proceed to the assigned ward."
)

var gratitudePhrases = []string{"thank", "thanks", "thx", "cool", "ok", "okay", "bye"}

func isGratitude(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range gratitudePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// collect advances the slot-filling state machine by one turn: extract the
// awaited field from the latest message, re-scan for the next gap, and emit
// exactly one reply. Fields are requested in strict name -> age -> query
// order. When no gap remains the session is marked complete. The reply is
// appended to the history and returned.
func collect(s *model.SessionState, msg string) string {
	if prev := s.MissingField; prev != model.FieldNone {
		extractField(&s.Patient, prev, msg)
	}

	missing := s.Patient.NextMissing()
	var reply string

	switch missing {
	case model.FieldName:
		// Greeting varies on the first turn depending on whether routing
		// already captured the symptom description.
		switch {
		case s.Patient.Query != "" && len(s.Messages) <= 1:
			reply = promptNameWithQuery
		case len(s.Messages) <= 1:
			reply = promptNameWelcome
		default:
			reply = promptNameRepeat
		}
	case model.FieldAge:
		reply = promptAge
	case model.FieldQuery:
		reply = promptQuery
	default:
		s.IsComplete = true
		if isGratitude(msg) {
			reply = replyClosing
		} else {
			reply = summaryReply(s)
		}
	}

	s.MissingField = missing
	s.Append(model.RoleAssistant, reply)
	return reply
}

func summaryReply(s *model.SessionState) string {
	ward := s.Ward.DisplayName()
	return fmt.Sprintf(
		"Registration complete.\nPatient %s, age %d, has been assigned to the %s.\nPlease proceed to the %s or wait for further assistance.",
		s.Patient.Name, *s.Patient.Age, ward, ward,
	)
}

package engine

import (
	"strings"

	"github.com/wardline/server/internal/intake/model"
	logx "github.com/wardline/server/pkg/logger"
)

// Keyword tables checked in priority order: emergency wins over mental
// health when keywords from both appear in the same utterance.
var wardKeywords = []struct {
	ward     model.Ward
	keywords []string
}{
	{model.WardEmergency, []string{
		"pain", "bleeding", "unconscious", "accident", "severe", "stroke",
		"heart attack", "broken", "trauma", "heart", "chest", "collapse",
	}},
	{model.WardMentalHealth, []string{
		"anxiety", "depression", "panic", "suicide", "self-harm", "sad",
		"hopeless", "stress", "mental",
	}},
	// General captures everything else (stomach, routine, mild issues).
}

// ClassifyWard assigns a ward from one user utterance by substring keyword
// matching. The first category in priority order with any hit wins; no
// best-match scoring. Pure function.
func ClassifyWard(text string) model.Ward {
	lower := strings.ToLower(text)
	for _, c := range wardKeywords {
		for _, k := range c.keywords {
			if strings.Contains(lower, k) {
				return c.ward
			}
		}
	}
	return model.WardGeneral
}

// routeWard classifies the session once, on the first turn, and seeds the
// symptom query from that message so it is not asked for again. Later turns
// never re-classify, even if the topic changes.
func routeWard(s *model.SessionState, msg string) {
	if s.Ward != model.WardUnset {
		return
	}
	s.Ward = ClassifyWard(msg)
	if s.Patient.Query == "" {
		if err := s.Patient.SetQuery(msg); err != nil {
			logx.Debug().Err(err).Str("session_id", s.SessionID).Msg("initial message rejected as query, will ask later")
		}
	}
	logx.Info().Str("session_id", s.SessionID).Str("ward", string(s.Ward)).Msg("session routed")
}

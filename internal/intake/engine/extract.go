package engine

import (
	"regexp"
	"strconv"

	"github.com/wardline/server/internal/intake/model"
	logx "github.com/wardline/server/pkg/logger"
)

var digitsRe = regexp.MustCompile(`\d+`)

// extractField applies the latest user text to the slot that was being
// awaited. Validation failures are swallowed: the slot stays unset and the
// collector re-prompts for it, so the user experience is "ask again" rather
// than an error.
func extractField(p *model.PatientData, field model.Field, text string) {
	switch field {
	case model.FieldName:
		// The entire raw message is the name candidate.
		if err := p.SetName(text); err != nil {
			logx.Debug().Err(err).Msg("name rejected")
		}
	case model.FieldAge:
		// First contiguous run of digits in the message.
		m := digitsRe.FindString(text)
		if m == "" {
			return
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return
		}
		if err := p.SetAge(n); err != nil {
			logx.Debug().Err(err).Msg("age rejected")
		}
	case model.FieldQuery:
		if err := p.SetQuery(text); err != nil {
			logx.Debug().Err(err).Msg("query rejected")
		}
	}
}

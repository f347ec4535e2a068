package model

import "fmt"

// WebhookPayload is the immutable snapshot sent to persistence and the
// notification endpoint once a registration completes. It is derived, never
// stored.
type WebhookPayload struct {
	PatientName  string `json:"patient_name"`
	PatientAge   int    `json:"patient_age"`
	PatientQuery string `json:"patient_query"`
	Ward         Ward   `json:"ward"`
}

// NewWebhookPayload snapshots completed patient data. It fails when a
// required field is still missing or the ward is unknown; a caller reaching
// this with incomplete data has broken the state machine's invariants.
func NewWebhookPayload(p PatientData, w Ward) (WebhookPayload, error) {
	if f := p.NextMissing(); f != FieldNone {
		return WebhookPayload{}, fmt.Errorf("patient data incomplete: %s not set", f)
	}
	if !w.Valid() {
		return WebhookPayload{}, fmt.Errorf("invalid ward %q", w)
	}
	return WebhookPayload{
		PatientName:  p.Name,
		PatientAge:   *p.Age,
		PatientQuery: p.Query,
		Ward:         w,
	}, nil
}

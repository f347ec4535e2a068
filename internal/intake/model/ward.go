package model

// Ward is the hospital department a patient is assigned to.
type Ward string

const (
	WardUnset        Ward = ""
	WardGeneral      Ward = "general"
	WardEmergency    Ward = "emergency"
	WardMentalHealth Ward = "mental_health"
)

// Valid reports whether the ward is one of the three known departments.
func (w Ward) Valid() bool {
	switch w {
	case WardGeneral, WardEmergency, WardMentalHealth:
		return true
	default:
		return false
	}
}

// DisplayName returns the human readable ward name used in replies.
// Unknown values fall back to the general ward.
func (w Ward) DisplayName() string {
	switch w {
	case WardEmergency:
		return "Emergency Ward"
	case WardMentalHealth:
		return "Mental Health Ward"
	default:
		return "General Ward"
	}
}

package engine

import (
	"strings"
	"testing"

	"github.com/wardline/server/internal/intake/model"
)

func TestCollectGreetingVariants(t *testing.T) {
	t.Run("first turn with captured query", func(t *testing.T) {
		s := model.NewSessionState("s1")
		s.Append(model.RoleUser, "severe chest pain")
		routeWard(s, "severe chest pain")

		reply := collect(s, "severe chest pain")
		if reply != promptNameWithQuery {
			t.Errorf("expected acknowledgment greeting, got %q", reply)
		}
		if s.MissingField != model.FieldName {
			t.Errorf("expected name awaited, got %q", s.MissingField)
		}
	})

	t.Run("first turn without query", func(t *testing.T) {
		// an over-long first message fails query seeding
		long := strings.Repeat("x", 501)
		s := model.NewSessionState("s1")
		s.Append(model.RoleUser, long)
		routeWard(s, long)

		reply := collect(s, long)
		if reply != promptNameWelcome {
			t.Errorf("expected plain welcome, got %q", reply)
		}
	})

	t.Run("repeat request on later turns", func(t *testing.T) {
		s := model.NewSessionState("s1")
		s.Append(model.RoleUser, "headache")
		routeWard(s, "headache")
		collect(s, "headache")

		s.Append(model.RoleUser, "John123")
		reply := collect(s, "John123")
		if reply != promptNameRepeat {
			t.Errorf("expected short repeat request, got %q", reply)
		}
	})
}

func TestCollectRepeatsAgePrompt(t *testing.T) {
	s := model.NewSessionState("s1")
	if err := s.Patient.SetName("John Smith"); err != nil {
		t.Fatal(err)
	}
	s.MissingField = model.FieldAge

	// no digits in the answer: same prompt again, age still unset
	for i := 0; i < 2; i++ {
		s.Append(model.RoleUser, "quite old")
		if reply := collect(s, "quite old"); reply != promptAge {
			t.Fatalf("expected age prompt repeated, got %q", reply)
		}
	}
	if s.Patient.Age != nil {
		t.Errorf("age set from digit-free message: %d", *s.Patient.Age)
	}
}

func TestCollectGratitude(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"thanks a lot", true},
		{"thx", true},
		{"ok bye", true},
		{"Thank you!", true},
		{"what happens next", false},
	}
	for _, tt := range tests {
		if got := isGratitude(tt.text); got != tt.want {
			t.Errorf("isGratitude(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCollectCompletionSummary(t *testing.T) {
	s := model.NewSessionState("s1")
	s.Ward = model.WardEmergency
	if err := s.Patient.SetName("John Smith"); err != nil {
		t.Fatal(err)
	}
	if err := s.Patient.SetQuery("severe chest pain"); err != nil {
		t.Fatal(err)
	}
	s.MissingField = model.FieldAge
	s.Append(model.RoleUser, "34")

	reply := collect(s, "34")
	if !s.IsComplete {
		t.Fatal("expected session complete")
	}
	for _, want := range []string{"John Smith", "age 34", "Emergency Ward", "Registration complete."} {
		if !strings.Contains(reply, want) {
			t.Errorf("summary missing %q: %q", want, reply)
		}
	}
	if s.MissingField != model.FieldNone {
		t.Errorf("expected no awaited field, got %q", s.MissingField)
	}
}

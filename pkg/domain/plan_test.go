package domain

import "testing"

func TestValidPlanType(t *testing.T) {
	tests := []struct {
		name  string
		plan  PlanType
		valid bool
	}{
		{"basic", PlanBasic, true},
		{"premium", PlanPremium, true},
		{"empty", "", false},
		{"unknown", "enterprise", false},
		{"capitalized", "Premium", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPlanType(tt.plan); got != tt.valid {
				t.Errorf("ValidPlanType(%q) = %v, want %v", tt.plan, got, tt.valid)
			}
		})
	}
}

func TestPlanLabel(t *testing.T) {
	tests := []struct {
		plan PlanType
		want string
	}{
		{PlanPremium, "Premium"},
		{PlanBasic, "Basic"},
		{"", "Basic"},
		{"gold", "Basic"},
	}
	for _, tt := range tests {
		if got := tt.plan.Label(); got != tt.want {
			t.Errorf("PlanType(%q).Label() = %q, want %q", tt.plan, got, tt.want)
		}
	}
}

func TestSalonContact(t *testing.T) {
	s := Salon{Phone: "0551234567"}
	if got := s.Contact(); got != "0551234567" {
		t.Errorf("Contact() = %q, want phone", got)
	}
	s.WhatsApp = "0559999999"
	if got := s.Contact(); got != "0559999999" {
		t.Errorf("Contact() = %q, want whatsapp", got)
	}
}

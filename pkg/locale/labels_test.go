package locale

import (
	"testing"

	"konica/pkg/model"
)

func TestPeriodLabel(t *testing.T) {
	if got := PeriodLabel(model.PeriodMorning); got != "صباح" {
		t.Errorf("PeriodLabel(morning) = %q", got)
	}
	if got := PeriodLabel(model.PeriodEvening); got != "مساء" {
		t.Errorf("PeriodLabel(evening) = %q", got)
	}
	// unknown values fall back to the raw enum so the frontend never renders blank
	if got := PeriodLabel(model.Period("noon")); got != "noon" {
		t.Errorf("PeriodLabel(noon) = %q, want raw fallback", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := map[model.Status]string{
		model.StatusPending:   "في الانتظار",
		model.StatusConfirmed: "مؤكد",
		model.StatusCompleted: "مكتمل",
		model.StatusCancelled: "ملغي",
	}

	for status, want := range tests {
		if got := StatusLabel(status); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestForReservation(t *testing.T) {
	r := &model.Reservation{
		Period:         model.PeriodMorning,
		TeamPreference: model.TeamFemales,
		Status:         model.StatusConfirmed,
	}

	labels := ForReservation(r)

	if labels.Period != "صباح" {
		t.Errorf("Period label = %q", labels.Period)
	}
	if labels.TeamPreference != "فريق نسائي" {
		t.Errorf("TeamPreference label = %q", labels.TeamPreference)
	}
	if labels.Status != "مؤكد" {
		t.Errorf("Status label = %q", labels.Status)
	}
}

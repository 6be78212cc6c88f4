// Package locale holds the Arabic display labels for reservation enums. The
// admin frontend renders these; the entities themselves stay label-free.
package locale

import "konica/pkg/model"

var (
	periodLabels = map[model.Period]string{
		model.PeriodMorning: "صباح",
		model.PeriodEvening: "مساء",
	}

	teamLabels = map[model.TeamPreference]string{
		model.TeamFemales: "فريق نسائي",
		model.TeamMales:   "فريق رجالي",
		model.TeamAny:     "لا يهم",
	}

	statusLabels = map[model.Status]string{
		model.StatusPending:   "في الانتظار",
		model.StatusConfirmed: "مؤكد",
		model.StatusCompleted: "مكتمل",
		model.StatusCancelled: "ملغي",
	}
)

// PeriodLabel returns the Arabic label for a period, falling back to the raw
// enum value for unknown input.
func PeriodLabel(p model.Period) string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return string(p)
}

func TeamLabel(t model.TeamPreference) string {
	if label, ok := teamLabels[t]; ok {
		return label
	}
	return string(t)
}

func StatusLabel(s model.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Labels bundles the translated enum values of one reservation for the
// response envelope.
type Labels struct {
	Period         string `json:"period"`
	TeamPreference string `json:"teamPreference"`
	Status         string `json:"status"`
}

func ForReservation(r *model.Reservation) Labels {
	return Labels{
		Period:         PeriodLabel(r.Period),
		TeamPreference: TeamLabel(r.TeamPreference),
		Status:         StatusLabel(r.Status),
	}
}

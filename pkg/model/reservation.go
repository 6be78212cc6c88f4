package model

import "time"

type Period string

const (
	PeriodMorning Period = "morning"
	PeriodEvening Period = "evening"
)

type TeamPreference string

const (
	TeamFemales TeamPreference = "females"
	TeamMales   TeamPreference = "males"
	TeamAny     TeamPreference = "any"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the strict lifecycle table: pending -> confirmed ->
// completed, with cancellation allowed from pending and confirmed.
// Completed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to next is allowed under the
// strict lifecycle. The permissive compatibility path (Reservation.Update /
// SetStatus) bypasses this table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Invoice is the billing sub-record embedded in a reservation. TotalPrice and
// RemainingAmount are derived; they are never written directly, only through
// the invoice package.
type Invoice struct {
	PackPrice         float64 `json:"packPrice" bson:"packPrice" validate:"min=0"`
	AdditionalCharges float64 `json:"additionalCharges" bson:"additionalCharges" validate:"min=0"`
	Discount          float64 `json:"discount" bson:"discount" validate:"min=0"`
	TotalPrice        float64 `json:"totalPrice" bson:"totalPrice" validate:"min=0"`
	PaidAmount        float64 `json:"paidAmount" bson:"paidAmount" validate:"min=0"`
	RemainingAmount   float64 `json:"remainingAmount" bson:"remainingAmount" validate:"min=0"`
}

// Reservation is a customer's booking of a Pack for a date and period, with
// billing and staffing attached. Pack and TypePhotographie hold hex ObjectIDs
// of catalog records; both must resolve at creation time. Field names match
// the documents already in the database, so bson tags stay camelCase.
type Reservation struct {
	ID                string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CustomerName      string         `json:"customerName" bson:"customerName" validate:"required,max=100"`
	CustomerPhone     string         `json:"customerPhone" bson:"customerPhone" validate:"required,max=20"`
	CustomerEmail     string         `json:"customerEmail,omitempty" bson:"customerEmail,omitempty" validate:"omitempty,email,max=100"`
	Date              time.Time      `json:"date" bson:"date" validate:"required"`
	Period            Period         `json:"period" bson:"period" validate:"required,oneof=morning evening"`
	Pack              string         `json:"pack" bson:"pack" validate:"required,mongodb"`
	TypePhotographie  string         `json:"typePhotographie" bson:"typePhotographie" validate:"required,mongodb"`
	TeamPreference    TeamPreference `json:"teamPreference" bson:"teamPreference" validate:"required,oneof=females males any"`
	AssignedEmployers []string       `json:"assignedEmployers" bson:"assignedEmployers" validate:"omitempty,dive,mongodb"`
	Invoice           Invoice        `json:"invoice" bson:"invoice"`
	Status            Status         `json:"status" bson:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Notes             string         `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt         time.Time      `json:"createdAt,omitempty" bson:"createdAt" validate:"omitempty"`
	UpdatedAt         time.Time      `json:"updatedAt,omitempty" bson:"updatedAt" validate:"omitempty"`
}

// ReservationUpdate is the generic merge-update payload. Status changes made
// through it are permissive, matching the behavior external consumers rely
// on; the status endpoint enforces the strict table instead.
type ReservationUpdate struct {
	CustomerName      string         `json:"customerName,omitempty" validate:"omitempty,max=100"`
	CustomerPhone     string         `json:"customerPhone,omitempty" validate:"omitempty,max=20"`
	CustomerEmail     *string        `json:"customerEmail,omitempty" validate:"omitempty"`
	Date              *time.Time     `json:"date,omitempty" validate:"omitempty"`
	Period            Period         `json:"period,omitempty" validate:"omitempty,oneof=morning evening"`
	TeamPreference    TeamPreference `json:"teamPreference,omitempty" validate:"omitempty,oneof=females males any"`
	AssignedEmployers *[]string      `json:"assignedEmployers,omitempty" validate:"omitempty,dive,mongodb"`
	Status            Status         `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes             *string        `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// InvoiceUpdate carries the four raw invoice inputs; derived fields are
// recomputed by the service, never accepted from the caller.
type InvoiceUpdate struct {
	PackPrice         float64 `json:"packPrice" validate:"min=0"`
	AdditionalCharges float64 `json:"additionalCharges" validate:"min=0"`
	Discount          float64 `json:"discount" validate:"min=0"`
	PaidAmount        float64 `json:"paidAmount" validate:"min=0"`
}

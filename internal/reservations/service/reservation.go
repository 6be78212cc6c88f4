package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	packserrors "konica/internal/packs/errors"
	packsrepo "konica/internal/packs/repository"
	phototypeserrors "konica/internal/phototypes/errors"
	phototypesrepo "konica/internal/phototypes/repository"
	reserrors "konica/internal/reservations/errors"
	"konica/internal/reservations/repository"
	"konica/internal/reservations/validator"
	userserrors "konica/internal/users/errors"
	usersrepo "konica/internal/users/repository"
	"konica/pkg/config"
	apperrors "konica/pkg/errors"
	"konica/pkg/events"
	"konica/pkg/invoice"
	"konica/pkg/model"
	"konica/pkg/sanitizer"
)

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context) ([]*model.Reservation, error)
	GetByEmployer(ctx context.Context, employerID string) ([]*model.Reservation, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	Update(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.Reservation, error)
	Transition(ctx context.Context, id string, next model.Status) (*model.Reservation, error)
	SetStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error)
	AssignEmployer(ctx context.Context, id string, employerID string) (*model.Reservation, error)
	UpdateInvoice(ctx context.Context, id string, updates *model.InvoiceUpdate) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	packs     packsrepo.PackRepository
	types     phototypesrepo.TypeRepository
	users     usersrepo.UserRepository
	validator *validator.ReservationValidator
	publisher *events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	packs packsrepo.PackRepository,
	types phototypesrepo.TypeRepository,
	users usersrepo.UserRepository,
	validator *validator.ReservationValidator,
	publisher *events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		packs:     packs,
		types:     types,
		users:     users,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create resolves the referenced pack and photography type before writing
// anything, copies the pack price into the invoice, and derives the computed
// invoice fields. The stored pack price does not change if the pack is
// repriced later.
func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) error {
	s.sanitize(reservation)
	s.applyDefaults(reservation)

	pack, err := s.packs.FindByID(ctx, reservation.Pack)
	if err != nil {
		if errors.Is(err, packserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Pack", reservation.Pack)
		}
		if errors.Is(err, packserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid pack ID format")
		}
		s.cfg.Log.Error("Failed to resolve pack for reservation", "pack", reservation.Pack, "error", err)
		return apperrors.Internal("Failed to resolve pack", err)
	}

	if _, err := s.types.FindByID(ctx, reservation.TypePhotographie); err != nil {
		if errors.Is(err, phototypeserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Photography type", reservation.TypePhotographie)
		}
		if errors.Is(err, phototypeserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid photography type ID format")
		}
		s.cfg.Log.Error("Failed to resolve photography type for reservation", "type", reservation.TypePhotographie, "error", err)
		return apperrors.Internal("Failed to resolve photography type", err)
	}

	inv, err := invoice.Derive(
		pack.Price,
		reservation.Invoice.AdditionalCharges,
		reservation.Invoice.Discount,
		reservation.Invoice.PaidAmount,
	)
	if err != nil {
		return apperrors.Validation("Invalid invoice amounts", map[string]any{"error": err.Error()})
	}
	reservation.Invoice = inv

	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "customer", reservation.CustomerName, "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		s.cfg.Log.Error("Failed to create reservation", "customer", reservation.CustomerName, "error", err)
		return apperrors.Internal("Failed to create reservation", err)
	}

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"customer", reservation.CustomerName,
		"date", reservation.Date,
		"total", reservation.Invoice.TotalPrice,
	)
	s.publish(ctx, events.New(events.TypeReservationCreated, reservation.ID, reservation))
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

func (s *reservationService) GetAll(ctx context.Context) ([]*model.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) GetByEmployer(ctx context.Context, employerID string) ([]*model.Reservation, error) {
	if employerID == "" {
		return nil, apperrors.InvalidInput("Employer ID cannot be empty")
	}

	reservations, err := s.repo.FindByEmployer(ctx, employerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations by employer", "employer", employerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

func (s *reservationService) GetByDateRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	if to.Before(from) {
		return nil, apperrors.InvalidInput("Date range end cannot precede its start")
	}

	reservations, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations by date range", "from", from, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// Update merges field-level changes onto the stored reservation. Status
// changes through this path are permissive; the status endpoint is the one
// that enforces the lifecycle table. Pack, photography type, and invoice are
// not updatable here.
func (s *reservationService) Update(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Reservation update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.merge(existing, updates)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update reservation", err)
	}

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	s.publish(ctx, events.New(events.TypeReservationUpdated, id, merged))
	return merged, nil
}

// Transition applies the strict lifecycle: pending -> confirmed -> completed,
// with cancellation from pending or confirmed. Anything else is rejected.
func (s *reservationService) Transition(ctx context.Context, id string, next model.Status) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Cannot transition reservation from %q to %q", reservation.Status, next,
		))
	}

	return s.setStatus(ctx, reservation, next)
}

// SetStatus writes any valid status value without consulting the lifecycle
// table. Kept for callers that predate the strict transition endpoint.
func (s *reservationService) SetStatus(ctx context.Context, id string, status model.Status) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.setStatus(ctx, reservation, status)
}

func (s *reservationService) setStatus(ctx context.Context, reservation *model.Reservation, status model.Status) (*model.Reservation, error) {
	switch status {
	case model.StatusPending, model.StatusConfirmed, model.StatusCompleted, model.StatusCancelled:
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown reservation status %q", status))
	}

	previous := reservation.Status
	if err := s.repo.UpdateStatus(ctx, reservation.ID, status); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", reservation.ID)
		}
		s.cfg.Log.Error("Failed to update reservation status", "id", reservation.ID, "error", err)
		return nil, apperrors.Internal("Failed to update reservation status", err)
	}

	reservation.Status = status
	s.cfg.Log.Info("Reservation status changed", "id", reservation.ID, "from", previous, "to", status)
	s.publish(ctx, events.New(events.TypeReservationStatusChanged, reservation.ID, map[string]any{
		"from": previous,
		"to":   status,
	}))
	return reservation, nil
}

// AssignEmployer verifies the user exists, then appends them. Assigning the
// same employer twice keeps both entries.
func (s *reservationService) AssignEmployer(ctx context.Context, id string, employerID string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if employerID == "" {
		return nil, apperrors.InvalidInput("Employer ID cannot be empty")
	}

	if _, err := s.users.FindByID(ctx, employerID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Employer", employerID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid employer ID format")
		}
		s.cfg.Log.Error("Failed to resolve employer", "employer", employerID, "error", err)
		return nil, apperrors.Internal("Failed to resolve employer", err)
	}

	if err := s.repo.PushEmployer(ctx, id, employerID); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to assign employer", "id", id, "employer", employerID, "error", err)
		return nil, apperrors.Internal("Failed to assign employer", err)
	}

	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Employer assigned to reservation", "id", id, "employer", employerID)
	s.publish(ctx, events.New(events.TypeReservationEmployerAssigned, id, map[string]any{
		"employer": employerID,
	}))
	return reservation, nil
}

// UpdateInvoice replaces the four raw invoice inputs and re-derives the
// computed fields. This is the one write path that always leaves the invoice
// internally consistent, whatever state the stored document was in.
func (s *reservationService) UpdateInvoice(ctx context.Context, id string, updates *model.InvoiceUpdate) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	if err := s.validator.ValidateInvoiceUpdate(updates); err != nil {
		s.cfg.Log.Warn("Invoice update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid invoice input", map[string]any{"error": err.Error()})
	}

	inv, err := invoice.Derive(
		updates.PackPrice,
		updates.AdditionalCharges,
		updates.Discount,
		updates.PaidAmount,
	)
	if err != nil {
		return nil, apperrors.Validation("Invalid invoice amounts", map[string]any{"error": err.Error()})
	}

	if err := s.repo.SetInvoice(ctx, id, inv); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to update reservation invoice", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update reservation invoice", err)
	}

	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Reservation invoice updated",
		"id", id,
		"total", inv.TotalPrice,
		"remaining", inv.RemainingAmount,
	)
	s.publish(ctx, events.New(events.TypeReservationInvoiceUpdated, id, inv))
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to delete reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.cfg.Log.Info("Reservation deleted", "id", id)
	s.publish(ctx, events.New(events.TypeReservationDeleted, id, map[string]any{"id": id}))
	return nil
}

func (s *reservationService) sanitize(r *model.Reservation) {
	r.CustomerName = sanitizer.SanitizeText(r.CustomerName)
	r.CustomerPhone = sanitizer.SanitizePhone(r.CustomerPhone)
	r.CustomerEmail = sanitizer.SanitizeText(r.CustomerEmail)
	r.Notes = sanitizer.SanitizeText(r.Notes)
	r.AssignedEmployers = sanitizer.SanitizeSlice(r.AssignedEmployers, sanitizer.SanitizeText)
}

func (s *reservationService) applyDefaults(r *model.Reservation) {
	if r.Status == "" {
		r.Status = model.StatusPending
	}
	if r.TeamPreference == "" {
		r.TeamPreference = model.TeamAny
	}
}

func (s *reservationService) merge(existing *model.Reservation, updates *model.ReservationUpdate) *model.Reservation {
	merged := *existing

	if updates.CustomerName != "" {
		merged.CustomerName = updates.CustomerName
	}
	if updates.CustomerPhone != "" {
		merged.CustomerPhone = updates.CustomerPhone
	}
	if updates.CustomerEmail != nil {
		merged.CustomerEmail = *updates.CustomerEmail
	}
	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.Period != "" {
		merged.Period = updates.Period
	}
	if updates.TeamPreference != "" {
		merged.TeamPreference = updates.TeamPreference
	}
	if updates.AssignedEmployers != nil {
		merged.AssignedEmployers = *updates.AssignedEmployers
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}

	return &merged
}

// publish is best-effort; a broker outage must never fail the API call.
func (s *reservationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"type", event.Type,
			"reservation", event.Key,
			"error", err,
		)
	}
}

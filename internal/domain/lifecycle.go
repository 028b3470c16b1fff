package domain

import (
	"fmt"
	"strings"
	"time"
)

// Accept moves a pending reservation to accepted
func (r *Reservation) Accept(actor Actor, now time.Time) error {
	if !actor.Can(ActionApprove) {
		return fmt.Errorf("%w: person id=%d cannot accept reservations", ErrForbidden, actor.PersonID)
	}
	if err := r.requirePending(); err != nil {
		return err
	}

	r.State = StateAccepted
	r.decide(actor, now)
	return nil
}

// Reject moves a pending reservation to rejected and stores the reason
func (r *Reservation) Reject(actor Actor, reason string, now time.Time) error {
	if !actor.Can(ActionApprove) {
		return fmt.Errorf("%w: person id=%d cannot reject reservations", ErrForbidden, actor.PersonID)
	}
	if err := r.requirePending(); err != nil {
		return err
	}
	reason, err := normalizeReason(reason)
	if err != nil {
		return err
	}

	r.State = StateRejected
	r.RejectReason = &reason
	r.decide(actor, now)
	return nil
}

// CheckModifiable verifies the reservation can be edited or deleted by the actor.
// Accepted and rejected reservations are never modifiable, whatever the actor's role.
func (r *Reservation) CheckModifiable(actor Actor) error {
	if err := r.requirePending(); err != nil {
		return err
	}
	if !actor.CanModify(r) {
		return fmt.Errorf("%w: person id=%d does not own reservation id=%d", ErrForbidden, actor.PersonID, r.ID)
	}
	return nil
}

// SoftDelete marks a pending reservation as deleted, freeing its slot
func (r *Reservation) SoftDelete(actor Actor, reason string, now time.Time) error {
	if err := r.CheckModifiable(actor); err != nil {
		return err
	}
	reason, err := normalizeReason(reason)
	if err != nil {
		return err
	}

	r.Deleted = true
	r.DeleteReason = &reason
	deletedAt := now
	r.DeletedAt = &deletedAt
	r.UpdatedAt = now
	return nil
}

func (r *Reservation) requirePending() error {
	if r.Deleted {
		return fmt.Errorf("%w: reservation id=%d is deleted", ErrInvalidTransition, r.ID)
	}
	if r.State != StatePending {
		return fmt.Errorf("%w: reservation id=%d is %s", ErrInvalidTransition, r.ID, r.State)
	}
	return nil
}

func (r *Reservation) decide(actor Actor, now time.Time) {
	decidedBy := actor.PersonID
	decidedAt := now
	r.DecidedBy = &decidedBy
	r.DecidedAt = &decidedAt
	r.UpdatedAt = now
}

func normalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", ErrReasonRequired
	}
	if len([]rune(reason)) > MaxReasonLength {
		return "", fmt.Errorf("%w: reason must not exceed %d characters", ErrReasonRequired, MaxReasonLength)
	}
	return reason, nil
}

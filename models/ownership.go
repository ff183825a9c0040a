package models

import "errors"

// Errors surfaced by the data layer. All are caller mistakes, not transient
// faults; handlers translate them to HTTP statuses and never retry.
var (
	ErrBothOwnersSet                   = errors.New("submission cannot have both an account and a guest identity")
	ErrNoOwnerSet                      = errors.New("submission must have either an account or a guest identity")
	ErrEmptyText                       = errors.New("request text cannot be blank")
	ErrEmptyContent                    = errors.New("testimonial content cannot be blank")
	ErrInvalidTransition               = errors.New("invalid status transition")
	ErrNotFound                        = errors.New("record not found")
	ErrAlreadyLinkedToDifferentAccount = errors.New("guest identity is already linked to a different account")
)

// ValidateOwnership enforces the exactly-one-owner rule shared by prayer
// requests and testimonials: a submission belongs to an account or a guest
// identity, never both and never neither.
func ValidateOwnership(accountID *int, guestIdentityID *int) error {
	if accountID != nil && guestIdentityID != nil {
		return ErrBothOwnersSet
	}
	if accountID == nil && guestIdentityID == nil {
		return ErrNoOwnerSet
	}
	return nil
}

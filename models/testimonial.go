package models

import (
	"strings"
	"time"
)

const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

type Testimonial struct {
	Testimonial_ID    int       `json:"testimonialId" goqu:"skipinsert"`
	Account_ID        *int      `json:"accountId"`
	Guest_Identity_ID *int      `json:"guestIdentityId"`
	Display_Name      string    `json:"displayName"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	Status            string    `json:"status"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type TestimonialCreate struct {
	Content         string `json:"content"`
	Title           string `json:"title"`
	Display_Name    string `json:"displayName"`
	Guest_Public_ID string `json:"guestPublicId"`
}

// PublicAuthorName resolves the name shown on the public site: the
// submitted display name first, then the owning account's name, otherwise
// Anonymous. owner may be nil when the testimonial belongs to a guest or
// the owning account has been deleted.
func (t Testimonial) PublicAuthorName(owner *Account) string {
	if name := strings.TrimSpace(t.Display_Name); name != "" {
		return name
	}
	if t.Account_ID != nil && owner != nil {
		return owner.FullName()
	}
	return "Anonymous"
}

package models

import "time"

// GuestIdentity is an anonymous visitor. The browser keeps the public_id in
// a cookie so repeat visits resolve to the same record. Linked_Account_ID is
// set when the guest later registers and history gets merged.
type GuestIdentity struct {
	Guest_Identity_ID int       `json:"guestIdentityId" goqu:"skipinsert"`
	Public_ID         string    `json:"publicId"`
	Linked_Account_ID *int      `json:"linkedAccountId"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

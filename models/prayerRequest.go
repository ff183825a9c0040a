package models

import "time"

const (
	CategoryFamily    = "family"
	CategoryFaith     = "faith"
	CategoryHealth    = "health"
	CategorySpouse    = "spouse"
	CategoryChildren  = "children"
	CategoryParenting = "parenting"
	CategoryFinances  = "finances"
	CategoryGuidance  = "guidance"
	CategoryOther     = "other"
)

var prayerCategories = map[string]bool{
	CategoryFamily:    true,
	CategoryFaith:     true,
	CategoryHealth:    true,
	CategorySpouse:    true,
	CategoryChildren:  true,
	CategoryParenting: true,
	CategoryFinances:  true,
	CategoryGuidance:  true,
	CategoryOther:     true,
}

func ValidCategory(category string) bool {
	return prayerCategories[category]
}

const (
	StatusNew     = "new"
	StatusPraying = "praying"
	StatusPrayed  = "prayed"
	StatusClosed  = "closed"
)

// nextStatus holds the single allowed forward step; closed is terminal.
var nextStatus = map[string]string{
	StatusNew:     StatusPraying,
	StatusPraying: StatusPrayed,
	StatusPrayed:  StatusClosed,
}

// ValidStatusTransition reports whether a prayer request may advance from
// current to next. Backward moves and skipped steps are rejected.
func ValidStatusTransition(current, next string) bool {
	return next != "" && nextStatus[current] == next
}

type PrayerRequest struct {
	Prayer_Request_ID      int       `json:"prayerRequestId" goqu:"skipinsert"`
	Account_ID             *int      `json:"accountId"`
	Guest_Identity_ID      *int      `json:"guestIdentityId"`
	Request_Text           string    `json:"requestText"`
	Category_User_Selected string    `json:"categoryUserSelected"`
	Category_ML_Suggested  *string   `json:"categoryMlSuggested"`
	Status                 string    `json:"status"`
	Datetime_Create        time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type PrayerRequestCreate struct {
	Request_Text           string `json:"requestText"`
	Category_User_Selected string `json:"categoryUserSelected"`
	Guest_Public_ID        string `json:"guestPublicId"`
}

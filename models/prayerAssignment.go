package models

import "time"

// PrayerAssignment records which team member is praying for a request.
// Rows are append-only: re-assigning the same person adds a new timestamped
// record rather than overwriting history.
type PrayerAssignment struct {
	Prayer_Assignment_ID int       `json:"prayerAssignmentId" goqu:"skipinsert"`
	Prayer_Request_ID    int       `json:"prayerRequestId"`
	Assigned_To          int       `json:"assignedTo"`
	Note                 string    `json:"note"`
	Datetime_Assigned    time.Time `json:"datetimeAssigned" goqu:"skipinsert"`
}

type PrayerAssignmentCreate struct {
	Assigned_To int    `json:"assignedTo" binding:"required"`
	Note        string `json:"note"`
}

package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
)

// resolveOwner works out who a submission belongs to: the bearer account
// when the caller is signed in, or the guest identity behind guestPublicId.
// The ownership validator then decides whether the combination is legal.
func resolveOwner(c *gin.Context, guestPublicID string) (*int, *int, bool) {
	var accountID *int
	if v, ok := c.Get("currentAccount"); ok {
		account := v.(models.Account)
		accountID = &account.Account_ID
	}

	var guestIdentityID *int
	if guestPublicID != "" {
		var guest models.GuestIdentity
		found, err := initializers.DB.From("guest_identity").
			Where(goqu.C("public_id").Eq(guestPublicID)).
			ScanStruct(&guest)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve guest identity", "details": err.Error()})
			return nil, nil, false
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown guest identity"})
			return nil, nil, false
		}
		guestIdentityID = &guest.Guest_Identity_ID
	}

	return accountID, guestIdentityID, true
}

func CreatePrayerRequest(c *gin.Context) {
	var newRequest models.PrayerRequestCreate
	if err := c.ShouldBindJSON(&newRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	accountID, guestIdentityID, ok := resolveOwner(c, newRequest.Guest_Public_ID)
	if !ok {
		return
	}

	if err := models.ValidateOwnership(accountID, guestIdentityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(newRequest.Request_Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyText.Error()})
		return
	}

	category := newRequest.Category_User_Selected
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	request := models.PrayerRequest{
		Account_ID:             accountID,
		Guest_Identity_ID:      guestIdentityID,
		Request_Text:           newRequest.Request_Text,
		Category_User_Selected: category,
		Status:                 models.StatusNew,
	}

	insert := initializers.DB.Insert("prayer_request").
		Rows(request).
		Returning("prayer_request_id", "datetime_create")

	var inserted struct {
		Prayer_Request_ID int       `db:"prayer_request_id"`
		Datetime_Create   time.Time `db:"datetime_create"`
	}

	if _, err := insert.Executor().ScanStruct(&inserted); err != nil {
		log.Printf("Failed to create prayer request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer request", "details": err.Error()})
		return
	}

	request.Prayer_Request_ID = inserted.Prayer_Request_ID
	request.Datetime_Create = inserted.Datetime_Create

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Prayer request created successfully.",
		"prayerRequest": request,
	})
}

// GetPrayerRequests backs the moderation surface: filter by status,
// category and owner kind, free-text search over the request text, and
// bound by creation date. Newest first.
func GetPrayerRequests(c *gin.Context) {
	query := initializers.DB.From("prayer_request").Select("*")

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("status").Eq(status))
	}
	if category := c.Query("category"); category != "" {
		query = query.Where(goqu.C("category_user_selected").Eq(category))
	}
	switch c.Query("ownerKind") {
	case "account":
		query = query.Where(goqu.C("account_id").IsNotNull())
	case "guest":
		query = query.Where(goqu.C("guest_identity_id").IsNotNull())
	}
	if q := c.Query("q"); q != "" {
		query = query.Where(goqu.C("request_text").ILike("%" + q + "%"))
	}
	if after := c.Query("createdAfter"); after != "" {
		query = query.Where(goqu.C("datetime_create").Gte(after))
	}
	if before := c.Query("createdBefore"); before != "" {
		query = query.Where(goqu.C("datetime_create").Lte(before))
	}

	query = query.Order(goqu.I("datetime_create").Desc())

	var requests []models.PrayerRequest
	if err := query.ScanStructsContext(c, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer requests", "details": err.Error()})
		return
	}

	if len(requests) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No prayer requests found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Prayer requests retrieved successfully.",
		"prayerRequests": requests,
	})
}

func GetPrayerRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, request)
}

// SetPrayerRequestMLCategory stores the classifier's suggestion. Enrichment
// only: the user-selected category and workflow status are untouched.
func SetPrayerRequestMLCategory(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	var body struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if !models.ValidCategory(body.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	update := initializers.DB.Update("prayer_request").
		Set(goqu.Record{"category_ml_suggested": body.Category}).
		Where(goqu.C("prayer_request_id").Eq(requestID))

	result, err := update.Executor().Exec()
	if err != nil {
		log.Printf("Failed to set ML category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set ML category", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ML category suggestion stored successfully."})
}

// TransitionPrayerRequestStatus advances the workflow one step along
// new -> praying -> prayed -> closed. The UPDATE is guarded on the status
// read above it, so two racing moderators cannot both advance the same
// request.
func TransitionPrayerRequestStatus(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var request models.PrayerRequest
	found, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	if !models.ValidStatusTransition(request.Status, body.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":         models.ErrInvalidTransition.Error(),
			"currentStatus": request.Status,
		})
		return
	}

	update := initializers.DB.Update("prayer_request").
		Set(goqu.Record{"status": body.Status}).
		Where(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("status").Eq(request.Status),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		log.Printf("Failed to transition prayer request status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		// lost the race: another transition landed between read and write
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrInvalidTransition.Error()})
		return
	}

	request.Status = body.Status
	c.JSON(http.StatusOK, gin.H{
		"message":       "Prayer request status updated successfully.",
		"prayerRequest": request,
	})
}

// DeletePrayerRequest removes a request and hard-cascades its assignment
// history in one transaction. Owner references elsewhere are not touched.
func DeletePrayerRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
		return
	}

	var deleted int64
	err = tx.Wrap(func() error {
		if _, err := tx.Delete("prayer_assignment").
			Where(goqu.C("prayer_request_id").Eq(requestID)).
			Executor().Exec(); err != nil {
			return err
		}

		result, err := tx.Delete("prayer_request").
			Where(goqu.C("prayer_request_id").Eq(requestID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Printf("Failed to delete prayer request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer request", "details": err.Error()})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer request deleted successfully."})
}

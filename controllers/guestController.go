package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/doug-martin/goqu/v9"
)

// CreateGuest mints a fresh guest identity. The client is expected to hold
// the returned public_id (typically in a cookie) and present it on later
// submissions.
func CreateGuest(c *gin.Context) {
	newGuest := models.GuestIdentity{
		Public_ID: uuid.NewString(),
	}

	insert := initializers.DB.Insert("guest_identity").
		Rows(newGuest).
		Returning("guest_identity_id", "datetime_create")

	var inserted struct {
		Guest_Identity_ID int       `db:"guest_identity_id"`
		Datetime_Create   time.Time `db:"datetime_create"`
	}

	if _, err := insert.Executor().ScanStruct(&inserted); err != nil {
		log.Printf("Failed to create guest identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest identity", "details": err.Error()})
		return
	}

	newGuest.Guest_Identity_ID = inserted.Guest_Identity_ID
	newGuest.Datetime_Create = inserted.Datetime_Create

	c.JSON(http.StatusCreated, gin.H{
		"message": "Guest identity created successfully.",
		"guest":   newGuest,
	})
}

func GetGuest(c *gin.Context) {
	publicID := c.Param("public_id")

	var guest models.GuestIdentity
	found, err := initializers.DB.From("guest_identity").
		Where(goqu.C("public_id").Eq(publicID)).
		ScanStruct(&guest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest identity", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest identity not found"})
		return
	}

	c.JSON(http.StatusOK, guest)
}

// LinkGuestAccount attaches the authenticated account to a guest identity
// so pre-registration history carries over. Linking the same account twice
// is a no-op; a guest already linked elsewhere stays put.
func LinkGuestAccount(c *gin.Context) {
	account := c.MustGet("currentAccount").(models.Account)
	publicID := c.Param("public_id")

	var guest models.GuestIdentity
	found, err := initializers.DB.From("guest_identity").
		Where(goqu.C("public_id").Eq(publicID)).
		ScanStruct(&guest)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest identity", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest identity not found"})
		return
	}

	if guest.Linked_Account_ID != nil {
		if *guest.Linked_Account_ID == account.Account_ID {
			c.JSON(http.StatusOK, gin.H{
				"message": "Guest identity already linked to this account.",
				"guest":   guest,
			})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrAlreadyLinkedToDifferentAccount.Error()})
		return
	}

	update := initializers.DB.Update("guest_identity").
		Set(goqu.Record{"linked_account_id": account.Account_ID}).
		Where(goqu.C("guest_identity_id").Eq(guest.Guest_Identity_ID))

	if _, err := update.Executor().Exec(); err != nil {
		log.Printf("Failed to link guest identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link guest identity", "details": err.Error()})
		return
	}

	guest.Linked_Account_ID = &account.Account_ID

	c.JSON(http.StatusOK, gin.H{
		"message": "Guest identity linked successfully.",
		"guest":   guest,
	})
}

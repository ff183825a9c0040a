package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/doug-martin/goqu/v9"
)

func GetAccountProfile(c *gin.Context) {
	account, _ := c.Get("currentAccount")

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"admin":   c.MustGet("admin"),
	})
}

// DeleteAccount removes an account record and runs the delete hooks:
// submissions it owns keep their rows but lose the owner reference,
// assignment records where it was the assignee are removed outright, and
// any guest identities linked to it are unlinked. Submissions left without
// an owner stay that way; the ownership rule is a write-time check only.
func DeleteAccount(c *gin.Context) {
	accountID, err := strconv.Atoi(c.Param("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID", "details": err.Error()})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
		return
	}

	var deleted int64
	err = tx.Wrap(func() error {
		if _, err := tx.Update("prayer_request").
			Set(goqu.Record{"account_id": nil}).
			Where(goqu.C("account_id").Eq(accountID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Update("testimonial").
			Set(goqu.Record{"account_id": nil}).
			Where(goqu.C("account_id").Eq(accountID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Delete("prayer_assignment").
			Where(goqu.C("assigned_to").Eq(accountID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Update("guest_identity").
			Set(goqu.Record{"linked_account_id": nil}).
			Where(goqu.C("linked_account_id").Eq(accountID)).
			Executor().Exec(); err != nil {
			return err
		}

		result, err := tx.Delete("account").
			Where(goqu.C("account_id").Eq(accountID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Printf("Failed to delete account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account", "details": err.Error()})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully."})
}

// DeleteGuest removes a guest identity. Its submissions keep their rows
// with the guest reference cleared, mirroring the account delete hooks.
func DeleteGuest(c *gin.Context) {
	guestIdentityID, err := strconv.Atoi(c.Param("guest_identity_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest identity ID", "details": err.Error()})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction", "details": err.Error()})
		return
	}

	var deleted int64
	err = tx.Wrap(func() error {
		if _, err := tx.Update("prayer_request").
			Set(goqu.Record{"guest_identity_id": nil}).
			Where(goqu.C("guest_identity_id").Eq(guestIdentityID)).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Update("testimonial").
			Set(goqu.Record{"guest_identity_id": nil}).
			Where(goqu.C("guest_identity_id").Eq(guestIdentityID)).
			Executor().Exec(); err != nil {
			return err
		}

		result, err := tx.Delete("guest_identity").
			Where(goqu.C("guest_identity_id").Eq(guestIdentityID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		deleted, err = result.RowsAffected()
		return err
	})
	if err != nil {
		log.Printf("Failed to delete guest identity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete guest identity", "details": err.Error()})
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest identity not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest identity deleted successfully."})
}

package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/services"
	"github.com/doug-martin/goqu/v9"
)

// AssignPrayerRequest appends an assignment record. The same person can be
// assigned again; that is a timestamped re-affirmation, not an error.
func AssignPrayerRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	var newAssignment models.PrayerAssignmentCreate
	if err := c.ShouldBindJSON(&newAssignment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var request models.PrayerRequest
	requestFound, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request", "details": err.Error()})
		return
	}
	if !requestFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	var assignee models.Account
	assigneeFound, err := initializers.DB.From("account").
		Where(goqu.C("account_id").Eq(newAssignment.Assigned_To)).
		ScanStruct(&assignee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignee account", "details": err.Error()})
		return
	}
	if !assigneeFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignee account not found"})
		return
	}

	assignment := models.PrayerAssignment{
		Prayer_Request_ID: requestID,
		Assigned_To:       newAssignment.Assigned_To,
		Note:              newAssignment.Note,
	}

	insert := initializers.DB.Insert("prayer_assignment").
		Rows(assignment).
		Returning("prayer_assignment_id", "datetime_assigned")

	var inserted struct {
		Prayer_Assignment_ID int       `db:"prayer_assignment_id"`
		Datetime_Assigned    time.Time `db:"datetime_assigned"`
	}

	if _, err := insert.Executor().ScanStruct(&inserted); err != nil {
		log.Printf("Failed to create assignment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment", "details": err.Error()})
		return
	}

	assignment.Prayer_Assignment_ID = inserted.Prayer_Assignment_ID
	assignment.Datetime_Assigned = inserted.Datetime_Assigned

	if svc := services.GetEmailService(); svc != nil {
		go func() {
			if err := svc.SendAssignmentEmail(assignee.Email, assignee.First_Name, request.Request_Text, assignment.Note); err != nil {
				log.Printf("Failed to send assignment email: %v", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Prayer request assigned successfully.",
		"assignment": assignment,
	})
}

// GetPrayerRequestAssignments lists the full reviewer history for a
// request, oldest first.
func GetPrayerRequestAssignments(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID", "details": err.Error()})
		return
	}

	var request models.PrayerRequest
	requestFound, err := initializers.DB.From("prayer_request").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		ScanStruct(&request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer request", "details": err.Error()})
		return
	}
	if !requestFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer request not found"})
		return
	}

	var assignments []models.PrayerAssignment
	err = initializers.DB.From("prayer_assignment").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Order(goqu.I("datetime_assigned").Asc()).
		ScanStructsContext(c, &assignments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments", "details": err.Error()})
		return
	}

	if len(assignments) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No assignments found for this prayer request."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Assignments retrieved successfully.",
		"assignments": assignments,
	})
}

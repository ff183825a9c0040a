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

func CreateTestimonial(c *gin.Context) {
	var newTestimonial models.TestimonialCreate
	if err := c.ShouldBindJSON(&newTestimonial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	accountID, guestIdentityID, ok := resolveOwner(c, newTestimonial.Guest_Public_ID)
	if !ok {
		return
	}

	if err := models.ValidateOwnership(accountID, guestIdentityID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(newTestimonial.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyContent.Error()})
		return
	}

	testimonial := models.Testimonial{
		Account_ID:        accountID,
		Guest_Identity_ID: guestIdentityID,
		Display_Name:      newTestimonial.Display_Name,
		Title:             newTestimonial.Title,
		Content:           newTestimonial.Content,
		Status:            models.TestimonialPending,
	}

	insert := initializers.DB.Insert("testimonial").
		Rows(testimonial).
		Returning("testimonial_id", "datetime_create")

	var inserted struct {
		Testimonial_ID  int       `db:"testimonial_id"`
		Datetime_Create time.Time `db:"datetime_create"`
	}

	if _, err := insert.Executor().ScanStruct(&inserted); err != nil {
		log.Printf("Failed to create testimonial: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create testimonial", "details": err.Error()})
		return
	}

	testimonial.Testimonial_ID = inserted.Testimonial_ID
	testimonial.Datetime_Create = inserted.Datetime_Create

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Testimonial submitted successfully. It will appear once approved.",
		"testimonial": testimonial,
	})
}

// GetPublicTestimonials is the site-facing list: approved entries only,
// newest first, with author names resolved the same way for accounts,
// guests and deleted owners.
func GetPublicTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	err := initializers.DB.From("testimonial").
		Where(goqu.C("status").Eq(models.TestimonialApproved)).
		Order(goqu.I("datetime_create").Desc()).
		ScanStructsContext(c, &testimonials)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials", "details": err.Error()})
		return
	}

	if len(testimonials) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No testimonials found."})
		return
	}

	accountIDs := make([]int, 0, len(testimonials))
	for _, t := range testimonials {
		if t.Account_ID != nil {
			accountIDs = append(accountIDs, *t.Account_ID)
		}
	}

	accounts := make(map[int]models.Account)
	if len(accountIDs) > 0 {
		var rows []models.Account
		err := initializers.DB.From("account").
			Where(goqu.C("account_id").In(accountIDs)).
			ScanStructs(&rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authors", "details": err.Error()})
			return
		}
		for _, a := range rows {
			accounts[a.Account_ID] = a
		}
	}

	entries := make([]gin.H, 0, len(testimonials))
	for _, t := range testimonials {
		var owner *models.Account
		if t.Account_ID != nil {
			if a, found := accounts[*t.Account_ID]; found {
				owner = &a
			}
		}
		entries = append(entries, gin.H{
			"testimonialId":  t.Testimonial_ID,
			"title":          t.Title,
			"content":        t.Content,
			"authorName":     t.PublicAuthorName(owner),
			"datetimeCreate": t.Datetime_Create,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Testimonials retrieved successfully.",
		"testimonials": entries,
	})
}

// GetTestimonials backs the moderation surface: all statuses, filterable
// and searchable over content, title and display name.
func GetTestimonials(c *gin.Context) {
	query := initializers.DB.From("testimonial").Select("*")

	if status := c.Query("status"); status != "" {
		query = query.Where(goqu.C("status").Eq(status))
	}
	switch c.Query("ownerKind") {
	case "account":
		query = query.Where(goqu.C("account_id").IsNotNull())
	case "guest":
		query = query.Where(goqu.C("guest_identity_id").IsNotNull())
	}
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(goqu.Or(
			goqu.C("content").ILike(pattern),
			goqu.C("title").ILike(pattern),
			goqu.C("display_name").ILike(pattern),
		))
	}
	if after := c.Query("createdAfter"); after != "" {
		query = query.Where(goqu.C("datetime_create").Gte(after))
	}
	if before := c.Query("createdBefore"); before != "" {
		query = query.Where(goqu.C("datetime_create").Lte(before))
	}

	query = query.Order(goqu.I("datetime_create").Desc())

	var testimonials []models.Testimonial
	if err := query.ScanStructsContext(c, &testimonials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonials", "details": err.Error()})
		return
	}

	if len(testimonials) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No testimonials found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Testimonials retrieved successfully.",
		"testimonials": testimonials,
	})
}

// ModerateTestimonial applies a one-shot approve/reject decision. The
// UPDATE only matches rows still pending, so a second decision (or a
// racing one) affects zero rows and comes back as an invalid transition.
func ModerateTestimonial(c *gin.Context) {
	testimonialID, err := strconv.Atoi(c.Param("testimonial_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid testimonial ID", "details": err.Error()})
		return
	}

	var body struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if body.Decision != models.TestimonialApproved && body.Decision != models.TestimonialRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be 'approved' or 'rejected'"})
		return
	}

	var testimonial models.Testimonial
	found, err := initializers.DB.From("testimonial").
		Where(goqu.C("testimonial_id").Eq(testimonialID)).
		ScanStruct(&testimonial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch testimonial", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Testimonial not found"})
		return
	}

	if testimonial.Status != models.TestimonialPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":         models.ErrInvalidTransition.Error(),
			"currentStatus": testimonial.Status,
		})
		return
	}

	update := initializers.DB.Update("testimonial").
		Set(goqu.Record{"status": body.Decision}).
		Where(
			goqu.C("testimonial_id").Eq(testimonialID),
			goqu.C("status").Eq(models.TestimonialPending),
		)

	result, err := update.Executor().Exec()
	if err != nil {
		log.Printf("Failed to moderate testimonial: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate testimonial", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrInvalidTransition.Error()})
		return
	}

	testimonial.Status = body.Decision
	c.JSON(http.StatusOK, gin.H{
		"message":     "Testimonial moderated successfully.",
		"testimonial": testimonial,
	})
}

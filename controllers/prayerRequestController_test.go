package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerWall/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testGuestPublicID = "3f2c9a1e-0000-4000-8000-00000000000a"

func guestRows(exists bool) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"guest_identity_id", "public_id", "linked_account_id", "datetime_create"})
	if exists {
		rows.AddRow(7, testGuestPublicID, nil, time.Now())
	}
	return rows
}

func prayerRequestRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"prayer_request_id", "account_id", "guest_identity_id", "request_text",
		"category_user_selected", "category_ml_suggested", "status", "datetime_create",
	}).AddRow(1, nil, 7, "Please pray for my family", "family", nil, status, time.Now())
}

func TestCreatePrayerRequest(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		authenticated    bool
		mockGuestLookup  bool
		guestExists      bool
		expectInsert     bool
		expectedStatus   int
		expectedError    string
		expectedCategory string
	}{
		{
			name:            "guest submission succeeds with default category",
			body:            `{"requestText": "Please pray for my family", "guestPublicId": "` + testGuestPublicID + `"}`,
			mockGuestLookup: true,
			guestExists:     true,
			expectInsert:     true,
			expectedStatus:   http.StatusCreated,
			expectedCategory: models.CategoryOther,
		},
		{
			name:             "account submission succeeds with chosen category",
			body:             `{"requestText": "Guidance for a new season", "categoryUserSelected": "guidance"}`,
			authenticated:    true,
			expectInsert:     true,
			expectedStatus:   http.StatusCreated,
			expectedCategory: models.CategoryGuidance,
		},
		{
			name:           "no owner",
			body:           `{"requestText": "Please pray"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  models.ErrNoOwnerSet.Error(),
		},
		{
			name:            "both owners",
			body:            `{"requestText": "Please pray", "guestPublicId": "` + testGuestPublicID + `"}`,
			authenticated:   true,
			mockGuestLookup: true,
			guestExists:     true,
			expectedStatus:  http.StatusBadRequest,
			expectedError:   models.ErrBothOwnersSet.Error(),
		},
		{
			name:            "unknown guest identity",
			body:            `{"requestText": "Please pray", "guestPublicId": "` + testGuestPublicID + `"}`,
			mockGuestLookup: true,
			guestExists:     false,
			expectedStatus:  http.StatusBadRequest,
		},
		{
			name:            "blank text never persists",
			body:            `{"requestText": "   ", "guestPublicId": "` + testGuestPublicID + `"}`,
			mockGuestLookup: true,
			guestExists:     true,
			expectedStatus:  http.StatusBadRequest,
			expectedError:   models.ErrEmptyText.Error(),
		},
		{
			name:            "invalid category",
			body:            `{"requestText": "Please pray", "categoryUserSelected": "misc", "guestPublicId": "` + testGuestPublicID + `"}`,
			mockGuestLookup: true,
			guestExists:     true,
			expectedStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.mockGuestLookup {
				mock.ExpectQuery("SELECT").WillReturnRows(guestRows(tt.guestExists))
			}
			if tt.expectInsert {
				mock.ExpectQuery("INSERT").
					WillReturnRows(sqlmock.NewRows([]string{"prayer_request_id", "datetime_create"}).AddRow(11, time.Now()))
			}

			c, w := SetupTestContext()
			if tt.authenticated {
				SetAuthenticatedAccount(c, models.Account{Account_ID: 1, Username: "jdoe"}, false)
			}
			SetJSONBody(c, tt.body)

			CreatePrayerRequest(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response struct {
					Error string `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedError, response.Error)
			}

			if tt.expectInsert {
				var response struct {
					PrayerRequest models.PrayerRequest `json:"prayerRequest"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, 11, response.PrayerRequest.Prayer_Request_ID)
				assert.Equal(t, models.StatusNew, response.PrayerRequest.Status)
				assert.Equal(t, tt.expectedCategory, response.PrayerRequest.Category_User_Selected)
				assert.Nil(t, response.PrayerRequest.Category_ML_Suggested)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetPrayerRequests(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		hasResults bool
	}{
		{
			name:       "unfiltered list",
			hasResults: true,
		},
		{
			name:       "filtered by status, category and owner kind",
			query:      "status=new&category=family&ownerKind=guest",
			hasResults: true,
		},
		{
			name:       "search with date bounds",
			query:      "q=family&createdAfter=2026-01-01&createdBefore=2026-12-31",
			hasResults: true,
		},
		{
			name:       "no matches",
			query:      "status=closed",
			hasResults: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.hasResults {
				mock.ExpectQuery("SELECT").WillReturnRows(prayerRequestRows(models.StatusNew))
			} else {
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{
					"prayer_request_id", "account_id", "guest_identity_id", "request_text",
					"category_user_selected", "category_ml_suggested", "status", "datetime_create",
				}))
			}

			c, w := SetupTestContext()
			c.Request = newGetRequest("/prayer-requests?" + tt.query)

			GetPrayerRequests(c)

			assert.Equal(t, http.StatusOK, w.Code)

			if tt.hasResults {
				var response struct {
					PrayerRequests []models.PrayerRequest `json:"prayerRequests"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Len(t, response.PrayerRequests, 1)
			}
		})
	}
}

func TestTransitionPrayerRequestStatus(t *testing.T) {
	tests := []struct {
		name           string
		requestID      string
		body           string
		currentStatus  string
		requestExists  bool
		expectUpdate   bool
		updateRows     int64
		expectedStatus int
	}{
		{
			name:           "invalid id",
			requestID:      "invalid",
			body:           `{"status": "praying"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not found",
			requestID:      "1",
			body:           `{"status": "praying"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "forward step succeeds",
			requestID:      "1",
			body:           `{"status": "praying"}`,
			currentStatus:  models.StatusNew,
			requestExists:  true,
			expectUpdate:   true,
			updateRows:     1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "skip move rejected",
			requestID:      "1",
			body:           `{"status": "prayed"}`,
			currentStatus:  models.StatusNew,
			requestExists:  true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "backward move rejected",
			requestID:      "1",
			body:           `{"status": "new"}`,
			currentStatus:  models.StatusPraying,
			requestExists:  true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "closed is terminal",
			requestID:      "1",
			body:           `{"status": "praying"}`,
			currentStatus:  models.StatusClosed,
			requestExists:  true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "concurrent transition loses",
			requestID:      "1",
			body:           `{"status": "praying"}`,
			currentStatus:  models.StatusNew,
			requestExists:  true,
			expectUpdate:   true,
			updateRows:     0,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.requestID != "invalid" {
				if tt.requestExists {
					mock.ExpectQuery("SELECT").WillReturnRows(prayerRequestRows(tt.currentStatus))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{
						"prayer_request_id", "account_id", "guest_identity_id", "request_text",
						"category_user_selected", "category_ml_suggested", "status", "datetime_create",
					}))
				}
			}
			if tt.expectUpdate {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, tt.updateRows))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_request_id", Value: tt.requestID})
			SetJSONBody(c, tt.body)

			TransitionPrayerRequestStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusConflict {
				var response struct {
					Error string `json:"error"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, models.ErrInvalidTransition.Error(), response.Error)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSetPrayerRequestMLCategory(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectUpdate   bool
		updateRows     int64
		expectedStatus int
	}{
		{
			name:           "suggestion stored",
			body:           `{"category": "health"}`,
			expectUpdate:   true,
			updateRows:     1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown request",
			body:           `{"category": "health"}`,
			expectUpdate:   true,
			updateRows:     0,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid category",
			body:           `{"category": "misc"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectUpdate {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, tt.updateRows))
			}

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_request_id", Value: "1"})
			SetJSONBody(c, tt.body)

			SetPrayerRequestMLCategory(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeletePrayerRequest(t *testing.T) {
	tests := []struct {
		name           string
		deletedRows    int64
		expectedStatus int
	}{
		{
			name:           "delete cascades to assignments",
			deletedRows:    1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			deletedRows:    0,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectBegin()
			mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 3))
			mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, tt.deletedRows))
			mock.ExpectCommit()

			c, w := SetupTestContext()
			c.Params = append(c.Params, gin.Param{Key: "prayer_request_id", Value: "1"})

			DeletePrayerRequest(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

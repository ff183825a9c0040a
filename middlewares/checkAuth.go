package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// resolveAccount validates a bearer token issued by the auth provider and
// loads the account it references. Token issuance and password handling
// live entirely outside this service.
func resolveAccount(authHeader string) (models.Account, bool, error) {
	var account models.Account

	authToken := strings.Split(authHeader, " ")
	if len(authToken) != 2 || authToken[0] != "Bearer" {
		return account, false, errors.New("invalid token format")
	}

	token, err := jwt.Parse(authToken[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return account, false, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return account, false, errors.New("invalid token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || float64(time.Now().Unix()) > exp {
		return account, false, errors.New("token expired")
	}

	found, err := initializers.DB.From("account").
		Select("*").
		Where(goqu.C("account_id").Eq(claims["id"])).
		ScanStruct(&account)
	if err != nil {
		return account, false, err
	}
	if !found || account.Account_ID == 0 {
		return account, false, errors.New("account not found")
	}

	return account, claims["role"] == "admin", nil
}

func CheckAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		return
	}

	account, admin, err := resolveAccount(authHeader)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.Set("currentAccount", account)
	c.Set("admin", admin)

	c.Next()
}

// CheckOptionalAuth resolves the account when a bearer token is present but
// lets anonymous guests through. A present-but-invalid token is still
// rejected so a caller never silently loses their identity.
func CheckOptionalAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.Set("admin", false)
		c.Next()
		return
	}

	account, admin, err := resolveAccount(authHeader)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.Set("currentAccount", account)
	c.Set("admin", admin)

	c.Next()
}

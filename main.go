package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerWall/controllers"
	"github.com/PrayerWall/initializers"
	"github.com/PrayerWall/middlewares"
	"github.com/PrayerWall/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	// guest identity endpoints; how the token reaches a cookie is the client's job
	router.POST("/guests", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.CreateGuest)
	router.GET("/guests/:public_id", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GetGuest)

	// public submission endpoints; a bearer token is honored when present
	router.POST("/prayer-requests", middlewares.CheckOptionalAuth, middlewares.RateLimitMiddleware(2, 2, getKey), controllers.CreatePrayerRequest)
	router.POST("/testimonials", middlewares.CheckOptionalAuth, middlewares.RateLimitMiddleware(2, 2, getKey), controllers.CreateTestimonial)
	router.GET("/testimonials", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GetPublicTestimonials)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		auth.GET("/accounts/me", controllers.GetAccountProfile)
		auth.POST("/guests/:public_id/link", controllers.LinkGuestAccount)

		// moderation surface
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/prayer-requests", controllers.GetPrayerRequests)
			admin.GET("/prayer-requests/:prayer_request_id", controllers.GetPrayerRequest)
			admin.PATCH("/prayer-requests/:prayer_request_id/status", controllers.TransitionPrayerRequestStatus)
			admin.PATCH("/prayer-requests/:prayer_request_id/ml-category", controllers.SetPrayerRequestMLCategory)
			admin.DELETE("/prayer-requests/:prayer_request_id", controllers.DeletePrayerRequest)

			admin.GET("/prayer-requests/:prayer_request_id/assignments", controllers.GetPrayerRequestAssignments)
			admin.POST("/prayer-requests/:prayer_request_id/assignments", controllers.AssignPrayerRequest)

			admin.GET("/testimonials/all", controllers.GetTestimonials)
			admin.PATCH("/testimonials/:testimonial_id/moderate", controllers.ModerateTestimonial)

			admin.DELETE("/accounts/:account_id", controllers.DeleteAccount)
			admin.DELETE("/guests/:guest_identity_id", controllers.DeleteGuest)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}

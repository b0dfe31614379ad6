package main

import (
	"fmt"
	"os"
	"uniscope/authentication"
	"uniscope/controllers"
	"uniscope/middleware"
)

func handleRequests() {
	router.Use(middleware.CORSMiddleware())

	// ToDo: Groups ?

	router.GET("/test", controllers.Test)

	router.GET("/lookups", controllers.ListLookups)

	// auth-related
	router.POST("/login", controllers.Login)
	router.POST("/logout", authentication.TokenAuthMiddleware(), controllers.Logout)
	router.POST("/refresh", controllers.Refresh) // nicht prüfen, ob das at noch valide ist (keine Middleware)
	router.POST("/register", controllers.Register)

	router.POST("/email/exists", controllers.EMailExists)

	// enrolled units of the current user
	// (set semantics live in the store - $addToSet/$pull)
	router.GET("/user/units", authentication.TokenAuthMiddleware(), controllers.GetUserUnits)
	router.POST("/user/units", authentication.TokenAuthMiddleware(), controllers.AddUserUnit)
	router.DELETE("/user/units/:code", authentication.TokenAuthMiddleware(), controllers.RemoveUserUnit)

	// unit catalog (read-only, seeded externally)
	router.GET("/units", controllers.ListUnits)
	router.GET("/units/:code", controllers.GetUnit)
	router.GET("/units/:code/reviews", controllers.ListUnitReviews)
	// statistics
	router.GET("/units/:code/visits", controllers.GetUnitVisits) // visits since last 7 days "hot"

	// reviews & aggregates
	router.GET("/reviews", controllers.ListReviews) // homepage "trending now"
	router.POST("/reviews", authentication.TokenAuthMiddleware(), controllers.AddReview)
	router.GET("/summaries", controllers.GetUnitSummaries)

	// AI summary of the currently displayed review texts (on-demand, pull)
	router.POST("/summarize", controllers.SummarizeReviews)

	// system tools
	router.GET("/monitor/requests/count", authentication.TokenAuthMiddleware(), controllers.CountRequests)
	router.GET("/monitor/requests/dump", authentication.TokenAuthMiddleware(), controllers.DumpRequests)
	router.POST("/monitor/requests/flush", authentication.TokenAuthMiddleware(), controllers.FlushRequests)

	switch os.Getenv("APP_ENV") {
	case "DEV":
		router.Run(":" + os.Getenv("API_PORT"))
	case "PRD":
		router.RunTLS(":"+os.Getenv("API_PORT"), os.Getenv("APP_CERTFILE"), os.Getenv("APP_KEYFILE"))
	default:
		panic(fmt.Errorf("APP_ENV must not set"))
	}
}

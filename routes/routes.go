package routes

import (
	"net/http"

	"solstice/auth"
	"solstice/inventory"
	"solstice/merch"
	"solstice/middleware"
	"solstice/passes"
	"solstice/payments"
	"solstice/ratelim"
	"solstice/reservations"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/merchpic/*filepath", http.Dir("static/merchpic"))
	router.ServeFiles("/static/proofpic/*filepath", http.Dir("static/proofpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.GET("/api/auth/profile", middleware.Authenticate(auth.GetProfile))
}

func AddMerchRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/merch", rl.Limit(merch.GetMerchList))
	router.GET("/api/merch/:merchid", rl.Limit(merch.GetMerch))
	router.POST("/api/merch", middleware.RequireRole("admin", merch.CreateMerch))
	router.PUT("/api/merch/:merchid", middleware.RequireRole("admin", merch.EditMerch))
	router.DELETE("/api/merch/:merchid", middleware.RequireRole("admin", merch.DeleteMerch))
}

func AddInventoryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/availability", rl.Limit(inventory.GetAvailability))
	router.POST("/api/availability", middleware.RequireRole("admin", inventory.CreateAvailability))
	router.PUT("/api/availability", middleware.RequireRole("admin", inventory.ModifyAvailability))
	router.GET("/ws/capacity/:resource/:id", middleware.Authenticate(inventory.HandleWS))
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reservations", rl.Limit(middleware.Authenticate(reservations.CreateReservation)))
	router.GET("/api/reservations/mine", middleware.Authenticate(reservations.GetMyReservations))
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/payments", rl.Limit(middleware.Authenticate(payments.SubmitPayment)))
	router.GET("/api/payments/mine", middleware.Authenticate(payments.GetMyPayments))

	router.GET("/api/admin/payments", middleware.RequireRole("admin", payments.ListAllPayments))
	router.GET("/api/admin/payments/stats", middleware.RequireRole("admin", payments.GetAdminStats))
	router.PATCH("/api/admin/payments/:paymentid/verify", middleware.RequireRole("admin", payments.VerifyPayment))
	router.PATCH("/api/admin/payments/:paymentid/reject", middleware.RequireRole("admin", payments.RejectPayment))
}

func AddPassRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/passes", middleware.Authenticate(passes.GetMyPasses))
	router.GET("/api/passes/:passid/print", middleware.Authenticate(passes.PrintPass))
	router.POST("/api/passes/redeem", rl.Limit(middleware.RequireRole("admin", passes.RedeemPass)))
}

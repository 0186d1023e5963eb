package routes

import (
	"solstice/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddMerchRoutes(router, rateLimiter)
	AddInventoryRoutes(router, rateLimiter)
	AddReservationRoutes(router, rateLimiter)
	AddPaymentRoutes(router, rateLimiter)
	AddPassRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}

package router

import (
	"loja_manager/handler"
	"loja_manager/middleware"
	"loja_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", logger.New())

	auth := api.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Put("/profile", middleware.Protected(), validate.UpdateProfile(), handler.UpdateProfile)
	auth.Post("/password-reset/request", validate.PasswordResetRequest(), handler.RequestPasswordReset)
	auth.Post("/password-reset/verify", validate.PasswordResetVerify(), handler.VerifyPasswordReset)
	auth.Post("/password-reset", validate.PasswordReset(), handler.ResetPassword)

	customer := api.Group("/customers")
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", validate.Login(), handler.LoginCustomer)
	customer.Get("/me", middleware.CustomerProtected(), handler.MeCustomer)
	customer.Put("/profile", middleware.CustomerProtected(), validate.UpdateCustomerProfile(), handler.UpdateCustomerProfile)
	customer.Get("/stats", middleware.Protected(), handler.CustomerStats)
	customer.Get("/", middleware.Protected(), handler.ListCustomers)
	customer.Get("/:id", middleware.Protected(), validate.GetById("id"), handler.GetCustomerById)
	customer.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteCustomer)

	order := api.Group("/orders")
	order.Post("/", middleware.OptionalJWT(), validate.CreateOrder(), handler.CreateOrder)
	order.Get("/my", handler.GetMyOrders)
	order.Get("/track/:id", handler.TrackOrder)
	order.Get("/stats", middleware.Protected(), handler.OrderStats)
	order.Get("/", middleware.Protected(), handler.ListOrders)
	order.Get("/:id", middleware.Protected(), validate.GetById("id"), handler.GetOrderById)
	order.Patch("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdateOrder(), handler.UpdateOrder)
	order.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteOrder)

	payment := api.Group("/payments")
	payment.Post("/webhook", handler.PaymentWebhook)
	payment.Post("/", validate.CreatePayment(), handler.CreatePayment)
	payment.Get("/status/:orderId", validate.GetById("orderId"), handler.GetPaymentStatus)
	payment.Get("/stats", middleware.Protected(), handler.PaymentStats)
	payment.Get("/", middleware.Protected(), handler.ListPayments)
	payment.Get("/:id", middleware.Protected(), validate.GetById("id"), handler.GetPaymentById)
	payment.Post("/:id/refund", middleware.Protected(), validate.GetById("id"), handler.RefundPayment)

	product := api.Group("/products")
	product.Get("/", handler.ListProducts)
	product.Get("/:id", handler.GetProduct)
	product.Get("/:productId/reviews", validate.GetById("productId"), handler.GetProductReviews)
	product.Get("/:productId/promotion", validate.GetById("productId"), handler.GetActivePromotion)
	product.Post("/", middleware.Protected(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdateProduct(), handler.UpdateProduct)
	product.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteProduct)
	product.Delete("/:id/permanent", middleware.Protected(), validate.GetById("id"), handler.PermanentDeleteProduct)
	product.Post("/:id/images", middleware.Protected(), validate.GetById("id"), handler.UploadProductImage)
	product.Put("/:id/images/reorder", middleware.Protected(), validate.GetById("id"), handler.ReorderProductImages)
	product.Delete("/images/:imageId", middleware.Protected(), validate.GetById("imageId"), handler.DeleteProductImage)
	product.Post("/:id/files", middleware.Protected(), validate.GetById("id"), handler.UploadDigitalFile)
	product.Get("/:id/files", middleware.Protected(), validate.GetById("id"), handler.ListDigitalFiles)

	digital := api.Group("/digital-files")
	digital.Get("/stats", middleware.Protected(), handler.DigitalFileStats)
	digital.Get("/:productId/download", validate.GetById("productId"), handler.DownloadDigitalFiles)
	digital.Get("/:productId/check", validate.GetById("productId"), handler.CheckDigitalAccess)
	digital.Put("/:fileId", middleware.Protected(), validate.GetById("fileId"), validate.UpdateDigitalFile(), handler.UpdateDigitalFile)
	digital.Delete("/:fileId", middleware.Protected(), validate.GetById("fileId"), handler.DeleteDigitalFile)

	purchase := api.Group("/purchases")
	purchase.Get("/my", handler.GetMyPurchases)
	purchase.Get("/verify", handler.VerifyPurchase)

	promotion := api.Group("/promotions")
	promotion.Get("/", middleware.Protected(), handler.ListPromotions)
	promotion.Post("/", middleware.Protected(), validate.CreatePromotion(), handler.CreatePromotion)
	promotion.Put("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdatePromotion(), handler.UpdatePromotion)
	promotion.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeletePromotion)

	review := api.Group("/reviews")
	review.Post("/", validate.CreateReview(), handler.CreateReview)
	review.Get("/", middleware.Protected(), handler.ListReviews)
	review.Put("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdateReview(), handler.UpdateReview)
	review.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteReview)

	notification := api.Group("/notifications")
	notification.Get("/ws", middleware.Protected(), handler.NotificationFeed())
	notification.Get("/", middleware.Protected(), handler.ListNotifications)
	notification.Patch("/read-all", middleware.Protected(), handler.MarkAllNotificationsRead)
	notification.Patch("/:id/read", middleware.Protected(), validate.GetById("id"), handler.MarkNotificationRead)
	notification.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteNotification)

	goal := api.Group("/sales-goals")
	goal.Get("/current", middleware.Protected(), handler.CurrentSalesGoal)
	goal.Get("/:year/:month", middleware.Protected(), handler.SalesGoalByMonth)
	goal.Get("/", middleware.Protected(), handler.ListSalesGoals)
	goal.Post("/", middleware.Protected(), validate.CreateSalesGoal(), handler.CreateSalesGoal)
	goal.Put("/:year/:month", middleware.Protected(), validate.UpdateSalesGoal(), handler.UpdateSalesGoal)
	goal.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteSalesGoal)
}

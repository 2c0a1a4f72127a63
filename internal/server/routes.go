package server

import (
	"time"

	"github.com/tradelink/marketplace/internal/auth"
	"github.com/tradelink/marketplace/internal/buyer"
	"github.com/tradelink/marketplace/internal/category"
	"github.com/tradelink/marketplace/internal/inquiry"
	"github.com/tradelink/marketplace/internal/models"
	"github.com/tradelink/marketplace/internal/notification"
	"github.com/tradelink/marketplace/internal/product"
	"github.com/tradelink/marketplace/internal/supplier"
	"github.com/tradelink/marketplace/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Marketplace API is running",
		})
	})

	// ==========================================
	// AUTH ROUTES (No authentication required)
	// ==========================================
	authGroup := app.Group("/auth")
	app.Use("/auth", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}))
	authGroup.Post("/register", auth.RegisterHandler)
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), auth.LoginHandler)
	authGroup.Get("/google/login", auth.GoogleLogin)
	authGroup.Get("/google/callback", auth.GoogleCallback)
	authGroup.Post("/verify-email", auth.VerifyEmailHandler)
	authGroup.Post("/resend-verification", auth.ResendVerificationHandler)
	authGroup.Post("/forgot-password", auth.ForgotPasswordHandler)
	authGroup.Post("/reset-password", auth.ResetPasswordHandler)
	authGroup.Post("/refresh", limiter.New(limiter.Config{
		Max:        3,
		Expiration: 5 * time.Minute,
	}), auth.RefreshHandler)
	authGroup.Post("/logout", auth.JWTProtected(), auth.LogoutHandler)
	authGroup.Get("/me", auth.JWTProtected(), auth.MeHandler)

	// ==========================================
	// PUBLIC CATALOG
	// ==========================================
	app.Get("/products", product.ListProductsHandler)
	app.Get("/products/:id", product.GetProductHandler)
	app.Get("/categories", category.ListCategoriesHandler)
	app.Get("/categories/:id", category.GetCategoryHandler)
	app.Get("/suppliers", supplier.ListSuppliersHandler)
	app.Get("/suppliers/:id", supplier.GetSupplierHandler)

	// ==========================================
	// SUPPLIER AREA
	// ==========================================
	supplierGroup := app.Group("/supplier")
	supplierGroup.Use(auth.JWTProtected())
	supplierGroup.Use(auth.RoleProtected(models.RoleSupplier))

	supplierGroup.Get("/profile", supplier.GetMyProfileHandler)
	supplierGroup.Put("/profile", supplier.UpdateMyProfileHandler)
	supplierGroup.Put("/onboarding/draft", supplier.SaveOnboardingDraftHandler)
	supplierGroup.Post("/onboarding/submit", supplier.SubmitOnboardingHandler)

	supplierGroup.Post("/products", auth.SupplierProtected(), product.CreateProductHandler)
	supplierGroup.Get("/products", auth.SupplierProtected(), product.ListMyProductsHandler)
	supplierGroup.Get("/products/:id", auth.SupplierProtected(), product.GetMyProductHandler)
	supplierGroup.Put("/products/:id", auth.SupplierProtected(), product.UpdateProductHandler)
	supplierGroup.Post("/products/:id/submit", auth.SupplierProtected(), product.SubmitProductHandler)
	supplierGroup.Delete("/products/:id", auth.SupplierProtected(), product.DeleteMyProductHandler)
	supplierGroup.Post("/products/:id/recover", auth.SupplierProtected(), product.RecoverMyProductHandler)

	supplierGroup.Get("/inquiries", auth.SupplierProtected(), inquiry.ListSupplierInquiriesHandler)
	supplierGroup.Get("/inquiries/:id", auth.SupplierProtected(), inquiry.GetSupplierInquiryHandler)
	supplierGroup.Post("/inquiries/:id/reply", auth.SupplierProtected(), inquiry.SupplierReplyHandler)
	supplierGroup.Delete("/inquiries/:id", auth.SupplierProtected(), inquiry.SupplierDeleteInquiryHandler)
	supplierGroup.Post("/inquiries/:id/recover", auth.SupplierProtected(), inquiry.SupplierRecoverInquiryHandler)

	// ==========================================
	// BUYER AREA
	// ==========================================
	buyerGroup := app.Group("/buyer")
	buyerGroup.Use(auth.JWTProtected())
	buyerGroup.Use(auth.RoleProtected(models.RoleBuyer))

	buyerGroup.Get("/profile", buyer.GetMyProfileHandler)
	buyerGroup.Put("/profile", buyer.UpdateMyProfileHandler)

	buyerGroup.Post("/saved-products/:id", auth.BuyerProtected(), buyer.SaveProductHandler)
	buyerGroup.Delete("/saved-products/:id", auth.BuyerProtected(), buyer.UnsaveProductHandler)
	buyerGroup.Get("/saved-products", auth.BuyerProtected(), buyer.ListSavedProductsHandler)
	buyerGroup.Post("/followed-suppliers/:id", auth.BuyerProtected(), buyer.FollowSupplierHandler)
	buyerGroup.Delete("/followed-suppliers/:id", auth.BuyerProtected(), buyer.UnfollowSupplierHandler)
	buyerGroup.Get("/followed-suppliers", auth.BuyerProtected(), buyer.ListFollowedSuppliersHandler)

	buyerGroup.Post("/inquiries", auth.BuyerProtected(), inquiry.CreateInquiryHandler)
	buyerGroup.Get("/inquiries", auth.BuyerProtected(), inquiry.ListMyInquiriesHandler)
	buyerGroup.Get("/inquiries/:id", auth.BuyerProtected(), inquiry.GetMyInquiryHandler)
	buyerGroup.Post("/inquiries/:id/reply", auth.BuyerProtected(), inquiry.BuyerReplyHandler)

	// ==========================================
	// NOTIFICATIONS (any authenticated user)
	// ==========================================
	notifGroup := app.Group("/notifications")
	notifGroup.Use(auth.JWTProtected())
	notifGroup.Get("/", notification.ListNotificationsHandler)
	notifGroup.Get("/unread-count", notification.UnreadCountHandler)
	notifGroup.Put("/:id/read", notification.MarkReadHandler)
	notifGroup.Put("/read-all", notification.MarkAllReadHandler)
	notifGroup.Delete("/:id", notification.DeleteNotificationHandler)

	// ==========================================
	// ADMIN
	// ==========================================
	adminGroup := app.Group("/admin")
	adminGroup.Use(auth.JWTProtected())
	adminGroup.Use(auth.RoleProtected(models.RoleAdmin))

	adminGroup.Get("/users", user.ListUsersHandler)
	adminGroup.Get("/users/:id", user.GetUserHandler)
	adminGroup.Delete("/users/:id", user.DeleteUserHandler)

	adminGroup.Get("/suppliers", supplier.AdminListSuppliersHandler)
	adminGroup.Get("/suppliers/stats", supplier.SupplierStatsHandler)
	adminGroup.Get("/suppliers/:id", supplier.AdminGetSupplierHandler)
	adminGroup.Post("/suppliers/:id/approve", supplier.ApproveSupplierHandler)
	adminGroup.Post("/suppliers/:id/reject", supplier.RejectSupplierHandler)
	adminGroup.Post("/suppliers/:id/suspend", supplier.SuspendSupplierHandler)
	adminGroup.Post("/suppliers/:id/activate", supplier.ActivateSupplierHandler)
	adminGroup.Delete("/suppliers/:id", supplier.DeleteSupplierHandler)
	adminGroup.Post("/suppliers/:id/restore", supplier.RestoreSupplierHandler)

	adminGroup.Get("/buyers", buyer.AdminListBuyersHandler)
	adminGroup.Post("/buyers/:id/suspend", buyer.SuspendBuyerHandler)
	adminGroup.Post("/buyers/:id/activate", buyer.ActivateBuyerHandler)
	adminGroup.Delete("/buyers/:id", buyer.DeleteBuyerHandler)

	adminGroup.Post("/categories", category.CreateCategoryHandler)
	adminGroup.Put("/categories/:id", category.UpdateCategoryHandler)
	adminGroup.Delete("/categories/:id", category.DeleteCategoryHandler)

	adminGroup.Get("/products", product.AdminListProductsHandler)
	adminGroup.Get("/products/stats", product.ProductStatsHandler)
	adminGroup.Get("/products/:id", product.AdminGetProductHandler)
	adminGroup.Post("/products/:id/approve", product.ApproveProductHandler)
	adminGroup.Post("/products/:id/reject", product.RejectProductHandler)
	adminGroup.Post("/products/:id/suspend", product.SuspendProductHandler)
	adminGroup.Post("/products/:id/restore", product.RestoreProductHandler)
	adminGroup.Delete("/products/:id", product.AdminDeleteProductHandler)

	adminGroup.Get("/inquiries", inquiry.AdminListInquiriesHandler)
	adminGroup.Get("/inquiries/:id", inquiry.AdminGetInquiryHandler)
	adminGroup.Post("/inquiries/:id/approve", inquiry.ApproveInquiryHandler)
	adminGroup.Post("/inquiries/:id/reject", inquiry.RejectInquiryHandler)
	adminGroup.Delete("/inquiries/:id", inquiry.DeleteInquiryHandler)
	adminGroup.Post("/inquiries/:id/recover", inquiry.RecoverInquiryHandler)

	adminGroup.Get("/notifications", notification.ListAdminNotificationsHandler)
	adminGroup.Put("/notifications/:id/read", notification.MarkAdminReadHandler)
}

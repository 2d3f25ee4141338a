package routes

import (
	"os"

	donationController "care-connect/controllers/donation"
	volunteerController "care-connect/controllers/volunteer"
	geocodeService "care-connect/httpServices/geocode"
	smsService "care-connect/httpServices/sms"
	"care-connect/logger"
	"care-connect/middleware"
	"care-connect/repository"
	"care-connect/services/lifecycle"
	otpService "care-connect/services/otp"
	"care-connect/types"
	"care-connect/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	donationRepo := repository.NewGormDonationRepository(db)
	beneficiaryRepo := repository.NewGormBeneficiaryRepository(db)
	verifiedRepo := repository.NewGormVerifiedDonationRepository(db)

	smsClient := smsService.NewSMSClient()
	geocoder := geocodeService.NewGeocodeClient(os.Getenv("GEOCODER_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)

	engine := lifecycle.NewEngine(donationRepo, geocoder, utils.EnvBool("STRICT_TRANSITIONS", true))

	// Demo mode surfaces OTP codes in responses; never enabled in production.
	demoMode := !smsClient.Enabled() && os.Getenv("APP_ENV") != "production"
	otp := otpService.NewService(beneficiaryRepo, verifiedRepo, smsClient, demoMode)

	donations := donationController.NewDonationController(donationRepo, engine, asyncLogger)
	volunteers := volunteerController.NewVolunteerController(beneficiaryRepo, verifiedRepo, otp, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.ApiResponse{
			Success: true,
			Message: "Care Connect API",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	/*=============================================================================
	| Donation Routes
	===============================================================================*/
	donationGroup := api.Group("/donations")

	donationGroup.Get("/", donations.Index)
	donationGroup.Get("/pending", donations.Pending)
	donationGroup.Post("/", donations.Store)

	donationGroup.Get("/:id", donations.Show)
	donationGroup.Post("/:id/accept", donations.Accept)
	donationGroup.Post("/:id/decline", donations.Decline)
	donationGroup.Post("/:id/pickup", donations.Pickup)
	donationGroup.Post("/:id/transit", donations.Transit)
	donationGroup.Post("/:id/deliver", donations.Deliver)
	donationGroup.Patch("/:id/location", donations.UpdateLocation)

	// Administrative fallbacks
	donationGroup.Patch("/:id/status", middleware.RequireAdmin(), donations.OverrideStatus)
	donationGroup.Delete("/all", middleware.RequireAdmin(), donations.Clear)

	/*=============================================================================
	| Volunteer Routes (beneficiary directory + hand-off verification)
	===============================================================================*/
	volunteerGroup := api.Group("/volunteers")

	volunteerGroup.Get("/", volunteers.Index)
	volunteerGroup.Get("/verified/all", volunteers.VerifiedAll)
	volunteerGroup.Post("/", middleware.RequireAdmin(), volunteers.Store)
	volunteerGroup.Post("/send-otp", volunteers.SendOTP)
	volunteerGroup.Post("/verify-otp", volunteers.VerifyOTP)
	volunteerGroup.Get("/:id", volunteers.Show)
}

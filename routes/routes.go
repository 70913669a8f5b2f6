package routes

import (
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/controllers"
	"github.com/coopetico/coopex/controllers/admin_controllers"
	"github.com/coopetico/coopex/routes/middlewares"
)

func SetupRouter() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)

	api := app.Group("/api/v2", middlewares.Authenticate)

	api.Get("/members", controllers.GetMembers)
	api.Get("/members/:id", controllers.GetMember)
	api.Get("/members/:id/accounts", controllers.GetMemberAccounts)
	api.Get("/members/:id/card", controllers.GetMemberCard)

	api.Get("/liquidations/preview/:member_id", controllers.GetLiquidationPreview)
	api.Get("/liquidations/history", controllers.GetLiquidationHistory)
	api.Get("/liquidations/stats", controllers.GetLiquidationStats)
	api.Get("/liquidations/pending", controllers.GetPendingLiquidations)
	api.Get("/liquidations/:id/receipt", controllers.GetLiquidationReceipt)
	api.Post("/liquidations/execute", admin_controllers.ExecuteLiquidation)

	api.Get("/deposits", controllers.GetDeposits)
	api.Get("/withdrawals", controllers.GetWithdrawals)
	api.Post("/withdrawals", controllers.SubmitWithdrawal)

	admin := api.Group("/admin", middlewares.AdminValidator)

	admin.Post("/members", admin_controllers.CreateMember)
	admin.Put("/members/:id", admin_controllers.UpdateMember)
	admin.Post("/deposits", admin_controllers.CreateDeposit)
	admin.Post("/withdrawals/:id/approve", admin_controllers.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", admin_controllers.RejectWithdrawal)
	admin.Post("/withdrawals/:id/pay", admin_controllers.PayWithdrawal)

	return app
}

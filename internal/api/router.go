package api

import (
	"errors"

	"transaction-management/docs"
	"transaction-management/internal/api/handlers"
	"transaction-management/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// maxUploadSize bounds multipart CSV uploads.
const maxUploadSize = 32 * 1024 * 1024

func SetupRouter(
	txHandler *handlers.TransactionHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   docs.SwaggerInfo.Title,
		BodyLimit: maxUploadSize,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.HeaderRequestID,
		ExposeHeaders: "Content-Disposition," + middleware.HeaderRequestID,
	}))
	app.Use(middleware.RequestLogger(appLogger))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", txHandler.Health)

	// Routes are named after the handler actions clients already call.
	app.Get("/GetTransactionBetweenTwoDataUserOffsetAsync", txHandler.GetTransactionBetweenTwoDataUserOffset)
	app.Get("/GetTransactionBetweenTwoDataClientOffsetAsync", txHandler.GetTransactionBetweenTwoDataClientOffset)
	app.Get("/GetJanuaryTransactionsAsync", txHandler.GetJanuaryTransactions)
	app.Get("/ExportToExcelAsync", txHandler.ExportToExcel)
	app.Post("/DownloadDataAsync", txHandler.DownloadData)

	return app
}

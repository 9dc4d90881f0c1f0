// server/internal/api/routes/routes.go
package routes

import (
	"procureflow-api-server/config"
	"procureflow-api-server/internal/api/handlers"
	"procureflow-api-server/internal/api/middleware"
	"procureflow-api-server/internal/pipeline"
	"procureflow-api-server/internal/s3"
	"procureflow-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the pipeline components into the HTTP surface.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	ledger *pipeline.RequestLedger,
	dispatcher *pipeline.RFQDispatcher,
	rfqBook *pipeline.RFQBook,
	synchronizer *pipeline.OrderSynchronizer,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	requestHandler := &handlers.RequestHandler{Ledger: ledger, Dispatcher: dispatcher, Hub: wsHub}
	rfqHandler := &handlers.RFQHandler{RFQs: rfqBook, Synchronizer: synchronizer, Hub: wsHub, S3Uploader: s3Uploader}
	orderHandler := &handlers.OrderHandler{Synchronizer: synchronizer, Hub: wsHub}
	dashboardHandler := &handlers.DashboardHandler{Ledger: ledger, RFQs: rfqBook, Synchronizer: synchronizer}
	userHandler := &handlers.UserHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Admin-only management routes.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin"))
		{
			admin.POST("/users", userHandler.CreateUser)
		}

		// The procurement pipeline. Reads and request creation are open to
		// all authenticated roles; approval, dispatch, conversion and
		// deletion are admin actions.
		business := apiV1.Group("/")
		business.Use(middleware.Authenticate())
		business.Use(middleware.Authorize("admin", "staff"))
		{
			business.GET("/dashboard", dashboardHandler.GetDashboard)

			requests := business.Group("/requests")
			{
				requests.POST("/", requestHandler.CreateRequest)
				requests.GET("/", requestHandler.GetRequests)
				requests.GET("/:id", requestHandler.GetRequestByID)

				adminRequests := requests.Group("/")
				adminRequests.Use(middleware.Authorize("admin"))
				{
					adminRequests.PUT("/:id/approval", requestHandler.SetApproval)
					adminRequests.POST("/:id/rfq", requestHandler.DispatchRFQ)
					adminRequests.DELETE("/:id", requestHandler.DeleteRequest)
				}
			}

			rfqs := business.Group("/rfqs")
			{
				rfqs.GET("/", rfqHandler.GetRFQs)
				rfqs.GET("/:id", rfqHandler.GetRFQByID)

				adminRFQs := rfqs.Group("/")
				adminRFQs.Use(middleware.Authorize("admin"))
				{
					adminRFQs.POST("/:id/send-to-order", rfqHandler.SendToOrder)
					adminRFQs.POST("/:id/quote-document", rfqHandler.UploadQuoteDocument)
					adminRFQs.DELETE("/:id", rfqHandler.DeleteRFQ)
				}
			}

			orders := business.Group("/orders")
			{
				orders.GET("/", orderHandler.GetOrders)
				orders.GET("/:id", orderHandler.GetOrderByID)

				adminOrders := orders.Group("/")
				adminOrders.Use(middleware.Authorize("admin"))
				{
					adminOrders.PUT("/:id/approval", orderHandler.SetApproval)
					adminOrders.POST("/:id/receive", orderHandler.MarkReceived)
					adminOrders.DELETE("/:id", orderHandler.DeleteOrder)
				}
			}
		}
	}

	return router
}

package routes

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "presupuesto_obra/docs" // This will be auto-generated
	"presupuesto_obra/internal/adapter/http/handlers"
	"presupuesto_obra/internal/adapter/persistence/repository"
	"presupuesto_obra/internal/infrastructure/database"
	"presupuesto_obra/internal/infrastructure/payments"
	"presupuesto_obra/internal/usecase"
	"presupuesto_obra/internal/usecase/interfaces"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	stageRepo := repository.NewStageCatalogDynamoRepository(ddb)
	coefficientRepo := repository.NewCoefficientDynamoRepository(ddb)
	organizationRepo := repository.NewOrganizationDynamoRepository(ddb)
	inventoryRepo := repository.NewInventoryDynamoRepository(ddb)
	budgetRepo := repository.NewBudgetDynamoRepository(ddb)
	paymentRepo := repository.NewBudgetPaymentDynamoRepository(ddb)

	budgetUseCase := usecase.NewBudgetUseCase(
		budgetRepo,
		stageRepo,
		coefficientRepo,
		organizationRepo,
		inventoryRepo,
		usecase.RatesFromEnv(),
		usecase.LogObserver{},
	)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewBudgetPaymentUseCase(paymentRepo, budgetRepo, paymentGateway)

	budgetHandler := handlers.NewBudgetHandler(budgetUseCase)
	stageHandler := handlers.NewStageHandler(budgetUseCase)
	paymentHandler := handlers.NewBudgetPaymentHandler(paymentUseCase)

	// Rutas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPresupuestoRoutes(v1, budgetHandler, stageHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

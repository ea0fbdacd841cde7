package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/handlers"
	"github.com/BruksfildServices01/gym-scheduler/internal/identity"
	"github.com/BruksfildServices01/gym-scheduler/internal/media"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	ucAccount "github.com/BruksfildServices01/gym-scheduler/internal/usecase/account"
	ucClient "github.com/BruksfildServices01/gym-scheduler/internal/usecase/client"
	ucModality "github.com/BruksfildServices01/gym-scheduler/internal/usecase/modality"
	ucPayment "github.com/BruksfildServices01/gym-scheduler/internal/usecase/payment"
	ucSelf "github.com/BruksfildServices01/gym-scheduler/internal/usecase/selfservice"
	ucShift "github.com/BruksfildServices01/gym-scheduler/internal/usecase/shift"
)

// Dependencies are the singletons built by main.
type Dependencies struct {
	Config      *config.Config
	Store       store.Store
	Repo        domain.Repository
	Identity    identity.Provider
	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher

	// Uploader may be nil; brand uploads then answer 503.
	Uploader media.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) error {
	cfg := deps.Config
	repo := deps.Repo
	dispatcher := deps.Audit
	retries := cfg.BookingMaxRetries

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	authLimit, err := middleware.RateLimit(cfg.AuthRateLimit)
	if err != nil {
		return err
	}

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	ensureAccountUC := ucAccount.NewEnsureAccount(repo, cfg.AdminEmails)
	getAccountUC := ucAccount.NewGetAccount(repo)
	getBrandUC := ucAccount.NewGetBrand(repo)
	setBrandUC := ucAccount.NewSetBrandImage(repo, dispatcher)
	uploadBrandUC := ucAccount.NewUploadBrandImage(repo, dispatcher, deps.Uploader)

	// ======================================================
	// USE CASES: CATALOG + SCHEDULE
	// ======================================================
	listModalitiesUC := ucModality.NewListModalities(repo)

	listShiftsUC := ucShift.NewListShifts(repo)
	watchShiftsUC := ucShift.NewWatchShifts(repo)
	createShiftUC := ucShift.NewCreateShift(repo, dispatcher)
	updateShiftUC := ucShift.NewUpdateShift(repo, dispatcher, retries)
	deleteShiftUC := ucShift.NewDeleteShift(repo, dispatcher)
	bookClientUC := ucShift.NewBookClient(repo, dispatcher, retries)
	unbookClientUC := ucShift.NewUnbookClient(repo, dispatcher, retries)

	// ======================================================
	// USE CASES: ROSTER + LEDGER
	// ======================================================
	listClientsUC := ucClient.NewListClients(repo)
	clientStatusUC := ucPayment.NewClientStatus(repo)
	rosterStatusUC := ucPayment.NewRosterStatus(repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(deps.Store)
	authHandler := handlers.NewAuthHandler(deps.Identity, ensureAccountUC)
	meHandler := handlers.NewMeHandler(getAccountUC)

	modalityHandler := handlers.NewModalityHandler(
		listModalitiesUC,
		ucModality.NewCreateModality(repo, dispatcher),
		ucModality.NewUpdateModality(repo, dispatcher),
		ucModality.NewDeleteModality(repo, dispatcher),
	)

	shiftHandler := handlers.NewShiftHandler(
		createShiftUC,
		updateShiftUC,
		deleteShiftUC,
		bookClientUC,
		unbookClientUC,
		listShiftsUC,
		watchShiftsUC,
		listModalitiesUC,
		listClientsUC,
	)

	clientHandler := handlers.NewClientHandler(
		listClientsUC,
		ucClient.NewGetClient(repo),
		ucClient.NewCreateClient(repo, dispatcher),
		ucClient.NewUpdateClient(repo, dispatcher),
		ucClient.NewDeleteClient(repo, dispatcher, retries),
		ucClient.NewSetClientModality(repo, dispatcher),
		clientStatusUC,
		rosterStatusUC,
	)

	paymentHandler := handlers.NewPaymentHandler(
		ucPayment.NewListPayments(repo),
		ucPayment.NewRecordPayment(repo, dispatcher),
		ucPayment.NewDeletePayment(repo, dispatcher),
	)

	brandHandler := handlers.NewBrandHandler(getBrandUC, setBrandUC, uploadBrandUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogger)

	selfHandler := handlers.NewSelfHandler(
		ucSelf.NewGetOverview(repo),
		ucSelf.NewWatchOverview(repo),
		ucSelf.NewBookShift(repo, dispatcher, retries),
		ucSelf.NewCancelShift(repo, dispatcher, retries),
		ucSelf.NewChangeModality(repo, dispatcher),
	)

	r.GET("/health", healthHandler.Check)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth", authLimit)
		{
			auth.POST("/signup", authHandler.SignUp)
			auth.POST("/signin", authHandler.SignIn)
			auth.POST("/signout", authHandler.SignOut)
		}

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Identity, ensureAccountUC))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// SELF SERVICE (any account)
			// ------------------------------
			self := secured.Group("/self")
			{
				self.GET("", selfHandler.Overview)
				self.GET("/stream", selfHandler.Stream)
				self.POST("/shifts/:id/book", selfHandler.Book)
				self.DELETE("/shifts/:id/book", selfHandler.Cancel)
				self.PUT("/modality", selfHandler.ChangeModality)
			}

			// ------------------------------
			// ADMIN (tenant = own account)
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/modalities", modalityHandler.List)
				admin.POST("/modalities", modalityHandler.Create)
				admin.PUT("/modalities/:id", modalityHandler.Update)
				admin.DELETE("/modalities/:id", modalityHandler.Delete)

				admin.GET("/shifts", shiftHandler.List)
				admin.GET("/shifts/stream", shiftHandler.Stream)
				admin.POST("/shifts", shiftHandler.Create)
				admin.PUT("/shifts/:id", shiftHandler.Update)
				admin.DELETE("/shifts/:id", shiftHandler.Delete)
				admin.POST("/shifts/:id/bookings", shiftHandler.Book)
				admin.DELETE("/shifts/:id/bookings/:clientId", shiftHandler.Unbook)

				admin.GET("/clients", clientHandler.List)
				admin.GET("/clients/statuses", clientHandler.Statuses)
				admin.POST("/clients", clientHandler.Create)
				admin.GET("/clients/:id", clientHandler.Get)
				admin.PUT("/clients/:id", clientHandler.Update)
				admin.DELETE("/clients/:id", clientHandler.Delete)
				admin.PUT("/clients/:id/modality", clientHandler.SetModality)
				admin.GET("/clients/:id/status", clientHandler.Status)

				admin.GET("/payments", paymentHandler.List)
				admin.POST("/payments", paymentHandler.Create)
				admin.DELETE("/payments/:id", paymentHandler.Delete)

				admin.GET("/brand", brandHandler.Get)
				admin.PUT("/brand", brandHandler.Set)
				admin.POST("/brand/image", brandHandler.Upload)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}

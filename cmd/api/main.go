package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "credit-risk-ledger/internal/adapter/http"
	"credit-risk-ledger/internal/adapter/middleware"
	"credit-risk-ledger/internal/adapter/repository/mysql"
	"credit-risk-ledger/internal/config"
	npaDomain "credit-risk-ledger/internal/domain/npa"
	repaymentDomain "credit-risk-ledger/internal/domain/repayment"
	"credit-risk-ledger/internal/domain/uow"
	"credit-risk-ledger/internal/infrastructure/cache"
	"credit-risk-ledger/internal/infrastructure/db"
	loanUC "credit-risk-ledger/internal/usecase/loan"
	npaUC "credit-risk-ledger/internal/usecase/npa"
	"credit-risk-ledger/internal/usecase/origination"
	"credit-risk-ledger/internal/usecase/portfolio"
	repaymentUC "credit-risk-ledger/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	customers := mysql.NewCustomerRepository(gormDB)
	applications := mysql.NewApplicationRepository(gormDB)
	loans := mysql.NewLoanRepository(gormDB)
	repayments := mysql.NewRepaymentRepository(gormDB)
	npas := mysql.NewNpaRepository(gormDB)
	tx := mysql.NewGormUoW(gormDB).
		WithTxTimeout(cfg.TxTimeout).
		WithMaxRetries(cfg.TxMaxRetries)

	penalty := repaymentDomain.PenaltyPolicy{DailyRate: cfg.PenaltyDailyRate}
	provision := npaDomain.ProvisionPolicy{
		SubStandard: cfg.ProvisionSubStandard,
		Doubtful:    cfg.ProvisionDoubtful,
		Loss:        cfg.ProvisionLoss,
	}

	originationSvc := origination.NewUsecase(customers, applications, tx)
	loanSvc := loanUC.NewUsecase(loans, tx)
	repaymentSvc := repaymentUC.NewUsecase(tx, loans, penalty, provision)
	npaSvc := npaUC.NewUsecase(tx, provision)
	portfolioSvc := portfolio.NewUsecase(uow.Repos{
		Customers:    customers,
		Applications: applications,
		Loans:        loans,
		Repayments:   repayments,
		NPAs:         npas,
	}, rdb, cfg.PortfolioCacheTTL)

	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(originationSvc)
	loanH := httpadp.NewLoanHandler(loanSvc)
	repayH := httpadp.NewRepaymentHandler(repaymentSvc)
	npaH := httpadp.NewNpaHandler(npaSvc)
	portH := httpadp.NewPortfolioHandler(portfolioSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	api.POST("/applications", appH.Submit)
	api.GET("/applications/:application_id", appH.Get)
	api.POST("/applications/:application_id/approve", appH.Approve)
	api.POST("/applications/:application_id/reject", appH.Reject)

	api.GET("/loans/:loan_id", loanH.Get)
	api.GET("/loans/:loan_id/schedule", repayH.Schedule)
	api.POST("/loans/:loan_id/disbursements", loanH.Disburse)
	api.POST("/loans/:loan_id/payments", repayH.Pay)
	api.POST("/loans/:loan_id/collateral", loanH.AttachCollateral)
	api.POST("/loans/:loan_id/guarantors", loanH.AttachGuarantor)
	api.POST("/loans/:loan_id/close", loanH.Close)
	api.POST("/loans/:loan_id/default", loanH.MarkDefaulted)
	api.POST("/loans/:loan_id/write-off", loanH.WriteOff)

	api.POST("/sweeps/overdue", repayH.Sweep)
	api.POST("/npa/:npa_id/resolve", npaH.Resolve)

	api.GET("/portfolio/summary", portH.Summary)
	api.GET("/portfolio/npa-analysis", portH.NPAAnalysis)
	api.GET("/portfolio/repayment-stats", portH.RepaymentStats)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

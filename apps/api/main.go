package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof handlers on the default mux
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/beacon/apps/api/echo"
	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	"github.com/trezcool/beacon/core/vendor"
	emailsvc "github.com/trezcool/beacon/services/email"
	logsvc "github.com/trezcool/beacon/services/logger"
	uploadsvc "github.com/trezcool/beacon/services/upload"
	"github.com/trezcool/beacon/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	if err = database.Migrate(db); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	docStore, err := uploadsvc.NewStore(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up document store: %v", err), err)
	}

	catSvc := category.NewService(database.NewCategoryRepository(db))
	vndSvc := vendor.NewService(database.NewVendorRepository(db), mailSvc, logger)
	usrSvc := user.NewService(database.NewUserRepository(db))
	oppSvc := opportunity.NewService(database.NewOpportunityRepository(db), usrSvc, docStore, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:           conf,
		Logger:         logger,
		CategorySvc:    catSvc,
		VendorSvc:      vndSvc,
		OpportunitySvc: oppSvc,
	})
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

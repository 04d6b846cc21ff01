package main

import (
	"log"
	"os"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	logsvc "github.com/trezcool/beacon/services/logger"
	uploadsvc "github.com/trezcool/beacon/services/upload"
	"github.com/trezcool/beacon/storage/database"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}

	docStore, err := uploadsvc.NewStore(conf, logger)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}

	usrSvc := user.NewService(database.NewUserRepository(db))

	// start CLI
	cli := commandLine{
		db:     db,
		catSvc: category.NewService(database.NewCategoryRepository(db)),
		oppSvc: opportunity.NewService(database.NewOpportunityRepository(db), usrSvc, docStore, logger),
		usrSvc: usrSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error(), err)
		}
		os.Exit(1)
	}
}

package main

import (
	"gorm.io/gorm"

	"github.com/trezcool/beacon/storage/database"
)

var migrateFunc = func(db *gorm.DB) error { return database.Migrate(db) } // mockable

func (cli *commandLine) migrate() error {
	return migrateFunc(cli.db)
}

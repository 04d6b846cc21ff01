package database

import (
	"log"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	"github.com/trezcool/beacon/core/vendor"
)

// Open connects to the configured database engine.
// Engine "sqlite" uses Database.Name as the DSN (":memory:" in tests).
func Open(conf *core.Config) (*gorm.DB, error) {
	dbLogger := gormlogger.New(
		log.New(os.Stdout, "DB : ", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dial gorm.Dialector
	switch conf.Database.Engine {
	case "sqlite":
		dial = sqlite.Open(conf.Database.Name)
	default:
		dial = postgres.Open(dsn(conf))
	}

	db, err := gorm.Open(dial, &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	return db, nil
}

func dsn(conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&category.Category{},
		&user.User{},
		&vendor.Vendor{},
		&opportunity.RequiredBidDocument{},
		&opportunity.Opportunity{},
	)
	return errors.Wrap(err, "migrating database")
}

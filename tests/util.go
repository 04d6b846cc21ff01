package testutil

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	"github.com/trezcool/beacon/storage/database"
)

var (
	initOnce  sync.Once
	dbCounter uint64
)

// NewConfig returns a test configuration backed by an in-memory database and
// a throwaway upload directory. Validators and email templates are set up on
// first use.
func NewConfig(t *testing.T) *core.Config {
	conf := &core.Config{
		Debug:            true,
		TestMode:         true,
		Env:              "TEST",
		AppName:          "Beacon",
		WorkDir:          core.Getwd(),
		FrontendBaseURL:  "http://localhost:8080",
		DefaultFromEmail: mail.Address{Name: "Beacon", Address: "noreply@localhost"},
		Database: core.DatabaseConfig{
			Engine: "sqlite",
			Name:   fmt.Sprintf("file:beacontest%d?mode=memory&cache=shared", atomic.AddUint64(&dbCounter, 1)),
		},
		Upload: core.UploadConfig{Destination: t.TempDir()},
	}

	initOnce.Do(func() {
		core.InitValidators(validator.New(), core.NewTranslator())
		core.ParseEmailTemplates(conf, NewLogger())
	})
	return conf
}

// PrepareDB opens a fresh migrated database for the test.
func PrepareDB(t *testing.T, conf *core.Config) *gorm.DB {
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateCategories(t *testing.T, db *gorm.DB, pairs ...[2]string) []category.Category {
	cats := make([]category.Category, 0, len(pairs))
	for _, pair := range pairs {
		cats = append(cats, category.Category{Category: pair[0], Subcategory: pair[1]})
	}
	if err := db.Create(&cats).Error; err != nil {
		t.Fatalf("CreateCategories() failed: %v", err)
	}
	return cats
}

func CreateUser(t *testing.T, db *gorm.DB, email string, roleID int, department string) user.User {
	usr := user.User{Email: email, RoleID: roleID, Department: department}
	if err := db.Create(&usr).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateRequiredDocuments(t *testing.T, db *gorm.DB, names ...string) []opportunity.RequiredBidDocument {
	docs := make([]opportunity.RequiredBidDocument, 0, len(names))
	for _, name := range names {
		docs = append(docs, opportunity.RequiredBidDocument{DisplayName: name})
	}
	if err := db.Create(&docs).Error; err != nil {
		t.Fatalf("CreateRequiredDocuments() failed: %v", err)
	}
	return docs
}

func CreateOpportunity(
	t *testing.T,
	db *gorm.DB,
	title string,
	isPublic bool,
	publish, deadline time.Time,
	contactID uint,
) opportunity.Opportunity {
	opp := opportunity.Opportunity{
		Title:           title,
		Description:     title + " description",
		IsPublic:        isPublic,
		PlannedPublish:  publish,
		PlannedDeadline: deadline,
		ContactID:       contactID,
		CreatedBy:       contactID,
	}
	if err := db.Create(&opp).Error; err != nil {
		t.Fatalf("CreateOpportunity() failed: %v", err)
	}
	return opp
}

// DocStore is a DocumentStore that stores nothing.
type DocStore struct{}

func (DocStore) Save(_ context.Context, doc *core.Document) (string, string, error) {
	if doc == nil || doc.Content == nil {
		return "", "", nil
	}
	return doc.Filename, "/" + doc.Filename, nil
}

// NewLogger returns a logger that swallows everything; tests assert on
// behavior, not log output.
func NewLogger() core.Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

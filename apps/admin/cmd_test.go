package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	"github.com/trezcool/beacon/storage/database"
	testutil "github.com/trezcool/beacon/tests"
)

func setup(t *testing.T) *commandLine {
	conf := testutil.NewConfig(t)
	db := testutil.PrepareDB(t, conf)

	usrSvc := user.NewService(database.NewUserRepository(db))
	docStore := testutil.DocStore{}
	return &commandLine{
		db:     db,
		catSvc: category.NewService(database.NewCategoryRepository(db)),
		oppSvc: opportunity.NewService(database.NewOpportunityRepository(db), usrSvc, docStore, testutil.NewLogger()),
		usrSvc: usrSvc,
	}
}

func writeCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "categories.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeCSV() failed: %v", err)
	}
	return path
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []struct {
		name    string
		args    []string // without program name
		wantErr error
	}{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "loadcategories: no file", args: []string{"loadcategories"}, wantErr: errHelp},
		{name: "addcontact: no email", args: []string{"addcontact"}, wantErr: errHelp},
		{name: "migrate", args: []string{"migrate"}},
		{name: "seeddocs", args: []string{"seeddocs"}},
		{name: "addcontact", args: []string{"addcontact", "-email", "clerk@city.cd", "-department", "Finance"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_loadCategories(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	path := writeCSV(t, strings.Join([]string{
		"category,subcategory",
		"Construction,Paving",
		"Construction,Roofing",
		"Construction,Paving", // duplicate
		"Apparel,Uniforms",
	}, "\n"))

	if err := cli.run([]string{"admin", "loadcategories", "-file", path}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	cats, err := cli.catSvc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(cats) != 3 {
		t.Errorf("loaded %d categories, want 3", len(cats))
	}

	// replaying the load is a no-op
	if err := cli.run([]string{"admin", "loadcategories", "-file", path}); err != nil {
		t.Fatalf("cli.run() replay error = %v", err)
	}
	cats, _ = cli.catSvc.QueryAll(ctx)
	if len(cats) != 3 {
		t.Errorf("replayed load left %d categories, want 3", len(cats))
	}
}

func Test_commandLine_loadCategories_emptyFile(t *testing.T) {
	cli := setup(t)

	path := writeCSV(t, "category,subcategory\n")
	err := cli.run([]string{"admin", "loadcategories", "-file", path})
	if err == nil || !strings.Contains(err.Error(), "no categories found") {
		t.Errorf("cli.run() error = %v, want 'no categories found'", err)
	}
}

func Test_commandLine_seedRequiredDocuments(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ { // seeding twice loads once
		if err := cli.run([]string{"admin", "seeddocs"}); err != nil {
			t.Fatalf("cli.run() error = %v", err)
		}
	}
	docs, err := cli.oppSvc.QueryRequiredDocuments(ctx)
	if err != nil {
		t.Fatalf("QueryRequiredDocuments() error = %v", err)
	}
	if len(docs) != len(defaultRequiredDocuments) {
		t.Errorf("seeded %d documents, want %d", len(docs), len(defaultRequiredDocuments))
	}
}

func Test_commandLine_addContact(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	if err := cli.run([]string{"admin", "addcontact", "-email", "Fleet@City.CD", "-department", "Fleet"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, "fleet@city.cd")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if usr.RoleID != user.RoleStaff {
		t.Errorf("RoleID = %d, want %d", usr.RoleID, user.RoleStaff)
	}
	if usr.Department != "Fleet" {
		t.Errorf("Department = %q, want %q", usr.Department, "Fleet")
	}
}

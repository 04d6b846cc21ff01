package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"gorm.io/gorm"

	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *gorm.DB
	catSvc *category.Service
	oppSvc *opportunity.Service
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply pending schema changes")
	fmt.Println("  loadcategories -file FILE - load signup categories from a CSV file")
	fmt.Println("  seeddocs - load the default required bid documents")
	fmt.Println("  addcontact -email EMAIL [-department DEPARTMENT] - add a staff contact")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loadCategoriesCmd := flag.NewFlagSet("loadcategories", flag.ExitOnError)
	loadCategoriesFile := loadCategoriesCmd.String("file", "", "Path to a CSV file of category,subcategory rows.")

	addContactCmd := flag.NewFlagSet("addcontact", flag.ExitOnError)
	addContactEmail := addContactCmd.String("email", "", "The contact's email address.")
	addContactDept := addContactCmd.String("department", "", "The contact's department.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "loadcategories":
		if err := loadCategoriesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loadCategoriesFile == "" {
			loadCategoriesCmd.Usage()
			return errHelp
		}
		return cli.loadCategories(*loadCategoriesFile)
	case "seeddocs":
		return cli.seedRequiredDocuments()
	case "addcontact":
		if err := addContactCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addContactEmail == "" {
			addContactCmd.Usage()
			return errHelp
		}
		return cli.addContact(*addContactEmail, *addContactDept)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) addContact(email, department string) error {
	usr, err := cli.usrSvc.GetOrCreateContact(context.Background(), email, department)
	if err != nil {
		return err
	}
	fmt.Printf("contact #%d: %s\n", usr.ID, usr.Email)
	return nil
}

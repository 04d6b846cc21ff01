package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
)

// loadCategories reads category,subcategory rows from a CSV file and inserts
// them. A leading header row and duplicate pairs are skipped; pairs already in
// the store are left untouched.
func (cli *commandLine) loadCategories(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	seen := make(map[[2]string]struct{})
	var cats []category.Category
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		cat := core.CleanString(rec[0])
		sub := core.CleanString(rec[1])
		if cat == "" || sub == "" || strings.EqualFold(cat, "category") {
			continue
		}
		key := [2]string{strings.ToLower(cat), strings.ToLower(sub)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cats = append(cats, category.Category{Category: cat, Subcategory: sub})
	}
	if len(cats) == 0 {
		return fmt.Errorf("%s: no categories found", path)
	}

	if err := cli.catSvc.Load(context.Background(), cats); err != nil {
		return err
	}
	fmt.Printf("loaded %d categories\n", len(cats))
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/trezcool/beacon/core/opportunity"
)

// defaultRequiredDocuments are the bid documents staff can ask vendors to
// submit with a response. Loading them again is a no-op for known names.
var defaultRequiredDocuments = []opportunity.RequiredBidDocument{
	{DisplayName: "Business License", Description: "A current business license for the vendor's home jurisdiction."},
	{DisplayName: "Certificate of Insurance", Description: "Proof of general liability coverage naming the city as additional insured."},
	{DisplayName: "W-9 Form", Description: "A completed IRS W-9 taxpayer identification form."},
	{DisplayName: "References", Description: "Contact information for three recent clients with comparable work."},
	{DisplayName: "Non-Discrimination Statement", Description: "A signed statement of compliance with the city's non-discrimination policy."},
}

func (cli *commandLine) seedRequiredDocuments() error {
	docs := make([]opportunity.RequiredBidDocument, len(defaultRequiredDocuments))
	copy(docs, defaultRequiredDocuments)
	if err := cli.oppSvc.LoadRequiredDocuments(context.Background(), docs); err != nil {
		return err
	}
	fmt.Printf("loaded %d required bid documents\n", len(docs))
	return nil
}

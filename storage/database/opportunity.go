package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trezcool/beacon/core/opportunity"
)

type opportunityRepository struct {
	db *gorm.DB
}

var _ opportunity.Repository = (*opportunityRepository)(nil) // interface compliance check

func NewOpportunityRepository(db *gorm.DB) *opportunityRepository {
	return &opportunityRepository{db: db}
}

func (repo opportunityRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Contact").
		Preload("RequiredDocs", func(db *gorm.DB) *gorm.DB { return db.Order("document.id ASC") })
}

func (repo opportunityRepository) QueryOpportunitiesByDeadline(ctx context.Context, from time.Time) ([]opportunity.Opportunity, error) {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	var opps []opportunity.Opportunity
	err := repo.preloaded(ctx).
		Where("planned_deadline >= ?", day).
		Order("planned_deadline ASC, id ASC").
		Find(&opps).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying opportunities")
	}
	return opps, nil
}

func (repo opportunityRepository) GetOpportunityByID(ctx context.Context, id uint) (opportunity.Opportunity, error) {
	var opp opportunity.Opportunity
	if err := repo.preloaded(ctx).First(&opp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return opportunity.Opportunity{}, opportunity.ErrNotFound
		}
		return opportunity.Opportunity{}, errors.Wrap(err, "finding opportunity")
	}
	return opp, nil
}

func (repo opportunityRepository) CreateOpportunity(ctx context.Context, opp opportunity.Opportunity) (opportunity.Opportunity, error) {
	if err := repo.db.WithContext(ctx).Create(&opp).Error; err != nil {
		return opportunity.Opportunity{}, errors.Wrap(err, "inserting opportunity")
	}
	return repo.GetOpportunityByID(ctx, opp.ID)
}

// opportunityColumns is the allow-list of fields an edit may overwrite.
// CreatedBy and CreatedAt deliberately stay out.
var opportunityColumns = []string{
	"title", "description", "department", "is_public",
	"planned_publish", "planned_deadline", "contact_id", "document", "document_href",
}

func (repo opportunityRepository) UpdateOpportunity(ctx context.Context, opp opportunity.Opportunity) (opportunity.Opportunity, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&opportunity.Opportunity{ID: opp.ID}).
			Select(opportunityColumns).
			Updates(&opp).Error; err != nil {
			return errors.Wrap(err, "updating opportunity")
		}
		if err := tx.Model(&opp).
			Association("RequiredDocs").
			Replace(&opp.RequiredDocs); err != nil {
			return errors.Wrap(err, "replacing required documents")
		}
		return nil
	})
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	return repo.GetOpportunityByID(ctx, opp.ID)
}

func (repo opportunityRepository) QueryAllRequiredDocuments(ctx context.Context) ([]opportunity.RequiredBidDocument, error) {
	var docs []opportunity.RequiredBidDocument
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&docs).Error; err != nil {
		return nil, errors.Wrap(err, "querying required documents")
	}
	return docs, nil
}

func (repo opportunityRepository) GetRequiredDocumentsByID(ctx context.Context, ids []uint) ([]opportunity.RequiredBidDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var docs []opportunity.RequiredBidDocument
	err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&docs).Error
	if err != nil {
		return nil, errors.Wrap(err, "querying required documents by id")
	}
	return docs, nil
}

func (repo opportunityRepository) CreateRequiredDocuments(ctx context.Context, docs []opportunity.RequiredBidDocument) error {
	if len(docs) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&docs).Error
	if err != nil {
		return errors.Wrap(err, "inserting required documents")
	}
	return nil
}

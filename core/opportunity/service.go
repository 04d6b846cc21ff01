package opportunity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/user"
)

var ErrNotFound = errors.New("opportunity not found")

// systemUserID is recorded as the creator of opportunities; listings are
// entered on behalf of the purchasing system account.
const systemUserID uint = 1

type (
	Repository interface {
		// QueryOpportunitiesByDeadline returns opportunities whose deadline is
		// on from's day or later, ordered by deadline then id ascending.
		QueryOpportunitiesByDeadline(ctx context.Context, from time.Time) ([]Opportunity, error)
		GetOpportunityByID(ctx context.Context, id uint) (Opportunity, error)
		CreateOpportunity(ctx context.Context, opp Opportunity) (Opportunity, error)
		// UpdateOpportunity overwrites the record's editable fields and
		// replaces its required-document set.
		UpdateOpportunity(ctx context.Context, opp Opportunity) (Opportunity, error)
		QueryAllRequiredDocuments(ctx context.Context) ([]RequiredBidDocument, error)
		GetRequiredDocumentsByID(ctx context.Context, ids []uint) ([]RequiredBidDocument, error)
		CreateRequiredDocuments(ctx context.Context, docs []RequiredBidDocument) error
	}

	Service struct {
		repo   Repository
		users  *user.Service
		docs   core.DocumentStore
		logger core.Logger
	}
)

func NewService(repo Repository, users *user.Service, docs core.DocumentStore, logger core.Logger) *Service {
	return &Service{repo: repo, users: users, docs: docs, logger: logger}
}

// Browse partitions the not-yet-expired public opportunities into the ones
// currently within their publication window (active) and the ones ahead of it
// (upcoming). Non-public opportunities appear in neither. Order within each
// partition is the repository's: deadline ascending, then id.
func (svc *Service) Browse(ctx context.Context) (active, upcoming []Opportunity, err error) {
	now := time.Now()
	opps, err := svc.repo.QueryOpportunitiesByDeadline(ctx, now)
	if err != nil {
		return nil, nil, err
	}

	for _, opp := range opps {
		if !opp.IsPublic {
			continue
		}
		if opp.IsPublishedAt(now) {
			active = append(active, opp)
		} else {
			upcoming = append(upcoming, opp)
		}
	}
	return active, upcoming, nil
}

// Get returns the public opportunity with the given id. A private one is
// reported as ErrNotFound, same as a missing one, to avoid leaking existence.
func (svc *Service) Get(ctx context.Context, id uint) (Opportunity, error) {
	opp, err := svc.repo.GetOpportunityByID(ctx, id)
	if err != nil {
		return Opportunity{}, err
	}
	if !opp.IsPublic {
		return Opportunity{}, ErrNotFound
	}
	return opp, nil
}

// GetAny returns the opportunity regardless of visibility, for staff editing.
func (svc *Service) GetAny(ctx context.Context, id uint) (Opportunity, error) {
	return svc.repo.GetOpportunityByID(ctx, id)
}

func (svc *Service) QueryRequiredDocuments(ctx context.Context) ([]RequiredBidDocument, error) {
	return svc.repo.QueryAllRequiredDocuments(ctx)
}

func (svc *Service) LoadRequiredDocuments(ctx context.Context, docs []RequiredBidDocument) error {
	return svc.repo.CreateRequiredDocuments(ctx, docs)
}

// Save builds or updates an opportunity from validated input: the contact is
// resolved by email (a placeholder staff user is created when unknown), the
// submitted document is routed through the document store keyed by the
// existing record's id, and the result is inserted or updated in place.
// Upload and persistence are not atomic; a write failing after a successful
// upload leaves the stored document behind.
func (svc *Service) Save(ctx context.Context, in Input, existing *Opportunity) (Opportunity, error) {
	contact, err := svc.users.GetOrCreateContact(ctx, in.ContactEmail, in.Department)
	if err != nil {
		return Opportunity{}, err
	}

	doc := in.Document
	if doc != nil && existing != nil {
		doc.RefID = strconv.FormatUint(uint64(existing.ID), 10)
	}
	docName, docHref, err := svc.docs.Save(ctx, doc)
	if err != nil {
		return Opportunity{}, err
	}

	reqDocs, err := svc.repo.GetRequiredDocumentsByID(ctx, in.DocumentsNeeded)
	if err != nil {
		return Opportunity{}, err
	}

	opp := Opportunity{
		Title:           in.Title,
		Description:     in.Description,
		Department:      in.Department,
		IsPublic:        in.IsPublic,
		PlannedPublish:  in.PlannedPublish,
		PlannedDeadline: in.PlannedDeadline,
		ContactID:       contact.ID,
		CreatedBy:       systemUserID,
		Document:        docName,
		DocumentHref:    docHref,
		RequiredDocs:    reqDocs,
	}

	if existing != nil {
		opp.ID = existing.ID
		opp.CreatedBy = existing.CreatedBy
		opp.CreatedAt = existing.CreatedAt
		return svc.repo.UpdateOpportunity(ctx, opp)
	}
	return svc.repo.CreateOpportunity(ctx, opp)
}

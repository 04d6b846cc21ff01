package opportunity_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/user"
	"github.com/trezcool/beacon/storage/database"
	testutil "github.com/trezcool/beacon/tests"
)

// docStoreStub records the document routed through it.
type docStoreStub struct {
	name    string
	href    string
	lastDoc *core.Document
}

func (s *docStoreStub) Save(_ context.Context, doc *core.Document) (string, string, error) {
	s.lastDoc = doc
	if doc == nil || doc.Content == nil {
		return "", "", nil
	}
	return s.name, s.href, nil
}

type testEnv struct {
	db      *gorm.DB
	svc     *opportunity.Service
	docs    *docStoreStub
	contact user.User
}

func setup(t *testing.T) testEnv {
	conf := testutil.NewConfig(t)
	db := testutil.PrepareDB(t, conf)
	contact := testutil.CreateUser(t, db, "buyer@city.cd", user.RoleStaff, "Public Works")

	docs := &docStoreStub{name: "opportunity-abc123.pdf", href: "https://bucket.s3.amazonaws.com/opportunity-abc123.pdf"}
	svc := opportunity.NewService(
		database.NewOpportunityRepository(db),
		user.NewService(database.NewUserRepository(db)),
		docs,
		testutil.NewLogger(),
	)
	return testEnv{db: db, svc: svc, docs: docs, contact: contact}
}

func days(n int) time.Time { return time.Now().AddDate(0, 0, n) }

func TestService_Browse(t *testing.T) {
	env := setup(t)

	active := testutil.CreateOpportunity(t, env.db, "Road Repaving", true, days(-1), days(5), env.contact.ID)
	upcoming := testutil.CreateOpportunity(t, env.db, "Bridge Painting", true, days(3), days(10), env.contact.ID)
	testutil.CreateOpportunity(t, env.db, "Secret Project", false, days(-1), days(5), env.contact.ID)
	testutil.CreateOpportunity(t, env.db, "Closed Bid", true, days(-10), days(-1), env.contact.ID)

	gotActive, gotUpcoming, err := env.svc.Browse(context.Background())
	require.NoError(t, err)

	require.Len(t, gotActive, 1)
	assert.Equal(t, active.ID, gotActive[0].ID)
	require.Len(t, gotUpcoming, 1)
	assert.Equal(t, upcoming.ID, gotUpcoming[0].ID)
}

func TestService_Browse_ordersByDeadline(t *testing.T) {
	env := setup(t)

	later := testutil.CreateOpportunity(t, env.db, "Later", true, days(-1), days(9), env.contact.ID)
	sooner := testutil.CreateOpportunity(t, env.db, "Sooner", true, days(-1), days(2), env.contact.ID)

	gotActive, _, err := env.svc.Browse(context.Background())
	require.NoError(t, err)

	require.Len(t, gotActive, 2)
	assert.Equal(t, []uint{sooner.ID, later.ID}, []uint{gotActive[0].ID, gotActive[1].ID})
}

func TestService_Get_hidesPrivate(t *testing.T) {
	env := setup(t)

	public := testutil.CreateOpportunity(t, env.db, "Public", true, days(-1), days(5), env.contact.ID)
	private := testutil.CreateOpportunity(t, env.db, "Private", false, days(-1), days(5), env.contact.ID)

	got, err := env.svc.Get(context.Background(), public.ID)
	require.NoError(t, err)
	assert.Equal(t, "Public", got.Title)
	assert.Equal(t, env.contact.Email, got.Contact.Email)

	// a private opportunity is indistinguishable from a missing one
	_, err = env.svc.Get(context.Background(), private.ID)
	assert.ErrorIs(t, err, opportunity.ErrNotFound)
	_, err = env.svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, opportunity.ErrNotFound)

	// staff editing sees it regardless
	got, err = env.svc.GetAny(context.Background(), private.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestService_Save_create(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	reqDocs := testutil.CreateRequiredDocuments(t, env.db, "W-9 Form", "References")

	in := opportunity.Input{
		Title:           "New Fleet Vehicles",
		Description:     "Five electric vans",
		Department:      "Fleet",
		ContactEmail:    "fleet@city.cd", // unknown; a placeholder contact gets created
		IsPublic:        true,
		PlannedPublish:  days(1),
		PlannedDeadline: days(14),
		DocumentsNeeded: []uint{reqDocs[0].ID},
		Document: &core.Document{
			Content:     strings.NewReader("%PDF-1.4"),
			Filename:    "bid package.pdf",
			ContentType: "application/pdf",
		},
	}
	opp, err := env.svc.Save(ctx, in, nil)
	require.NoError(t, err)

	assert.NotZero(t, opp.ID)
	assert.Equal(t, uint(1), opp.CreatedBy)
	assert.Equal(t, "opportunity-abc123.pdf", opp.Document)
	assert.Equal(t, env.docs.href, opp.DocumentHref)
	require.Len(t, opp.RequiredDocs, 1)
	assert.Equal(t, "W-9 Form", opp.RequiredDocs[0].DisplayName)

	// a fresh upload gets a generated reference, not a record id
	require.NotNil(t, env.docs.lastDoc)
	assert.Empty(t, env.docs.lastDoc.RefID)

	contact, err := user.NewService(database.NewUserRepository(env.db)).GetByEmail(ctx, "fleet@city.cd")
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, contact.RoleID)
	assert.Equal(t, contact.ID, opp.ContactID)
}

func TestService_Save_update(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	reqDocs := testutil.CreateRequiredDocuments(t, env.db, "W-9 Form", "References")

	existing := testutil.CreateOpportunity(t, env.db, "Original", true, days(-1), days(5), env.contact.ID)
	existing, err := env.svc.GetAny(ctx, existing.ID)
	require.NoError(t, err)

	in := opportunity.Input{
		Title:           "Updated Title",
		Description:     "Updated description",
		ContactEmail:    env.contact.Email,
		IsPublic:        false,
		PlannedPublish:  days(2),
		PlannedDeadline: days(20),
		DocumentsNeeded: []uint{reqDocs[1].ID},
		Document: &core.Document{
			Content:  strings.NewReader("%PDF-1.4"),
			Filename: "revised.pdf",
		},
	}
	updated, err := env.svc.Save(ctx, in, &existing)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.False(t, updated.IsPublic)
	// provenance survives edits
	assert.Equal(t, existing.CreatedBy, updated.CreatedBy)
	assert.WithinDuration(t, existing.CreatedAt, updated.CreatedAt, time.Second)
	require.Len(t, updated.RequiredDocs, 1)
	assert.Equal(t, "References", updated.RequiredDocs[0].DisplayName)

	// the re-uploaded document is keyed by the record it belongs to
	require.NotNil(t, env.docs.lastDoc)
	assert.Equal(t, strconv.FormatUint(uint64(existing.ID), 10), env.docs.lastDoc.RefID)
}

func TestService_Save_withoutDocument(t *testing.T) {
	env := setup(t)

	in := opportunity.Input{
		Title:           "No Attachment",
		Description:     "Nothing to download",
		ContactEmail:    env.contact.Email,
		PlannedPublish:  days(1),
		PlannedDeadline: days(7),
	}
	opp, err := env.svc.Save(context.Background(), in, nil)
	require.NoError(t, err)

	assert.Empty(t, opp.Document)
	assert.Empty(t, opp.DocumentHref)
}

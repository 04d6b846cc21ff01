package echoapi

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/opportunity"
	"github.com/trezcool/beacon/core/vendor"
)

const (
	subcategoryFieldPrefix = "subcategories-"
	dateFieldLayout        = "2006-01-02"
)

func formBool(ctx echo.Context, field string) bool {
	switch strings.ToLower(ctx.FormValue(field)) {
	case "on", "true", "1", "y", "yes":
		return true
	}
	return false
}

// bindSubcategoryChoices collects the dynamically-named `subcategories-<id>`
// checkbox fields into explicit (id, checked) pairs, ordered by id to keep
// reconciliation deterministic. Fields with a non-numeric id suffix are
// dropped.
func bindSubcategoryChoices(ctx echo.Context) ([]vendor.SubcategoryChoice, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return nil, err
	}

	choices := make([]vendor.SubcategoryChoice, 0)
	for field, vals := range form {
		if !strings.HasPrefix(field, subcategoryFieldPrefix) {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(field, subcategoryFieldPrefix), 10, 64)
		if err != nil {
			continue
		}
		checked := len(vals) > 0 && (vals[0] == "on" || vals[0] == "true")
		choices = append(choices, vendor.SubcategoryChoice{ID: uint(id), Checked: checked})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].ID < choices[j].ID })
	return choices, nil
}

func bindSignupInput(ctx echo.Context) (*vendor.SignupInput, error) {
	choices, err := bindSubcategoryChoices(ctx)
	if err != nil {
		return nil, err
	}
	return &vendor.SignupInput{
		Email:              ctx.FormValue("email"),
		BusinessName:       ctx.FormValue("business_name"),
		FirstName:          ctx.FormValue("first_name"),
		LastName:           ctx.FormValue("last_name"),
		PhoneNumber:        ctx.FormValue("phone_number"),
		MinorityOwned:      formBool(ctx, "minority_owned"),
		WomanOwned:         formBool(ctx, "woman_owned"),
		VeteranOwned:       formBool(ctx, "veteran_owned"),
		DisadvantagedOwned: formBool(ctx, "disadvantaged_owned"),
		Subcategories:      choices,
	}, nil
}

func bindUnsubscribeInput(ctx echo.Context) (*vendor.UnsubscribeInput, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return nil, err
	}

	subs := make([]uint, 0, len(form["subscriptions"]))
	for _, val := range form["subscriptions"] {
		id, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			continue
		}
		subs = append(subs, uint(id))
	}
	return &vendor.UnsubscribeInput{
		Email:         ctx.FormValue("email"),
		Subscriptions: subs,
	}, nil
}

// bindOpportunityInput collects the admin form, including the optional
// document upload; the caller owns closing the returned closer when set.
func bindOpportunityInput(ctx echo.Context) (*opportunity.Input, func(), error) {
	in := &opportunity.Input{
		Title:        ctx.FormValue("title"),
		Description:  ctx.FormValue("description"),
		Department:   ctx.FormValue("department"),
		ContactEmail: ctx.FormValue("contact_email"),
		IsPublic:     formBool(ctx, "is_public"),
	}

	var fldErrs []core.FieldError
	var err error
	if in.PlannedPublish, err = parseDateField(ctx, "planned_publish"); err != nil {
		fldErrs = append(fldErrs, core.FieldError{Field: "planned_publish", Error: "enter a valid date (YYYY-MM-DD)"})
	}
	if in.PlannedDeadline, err = parseDateField(ctx, "planned_deadline"); err != nil {
		fldErrs = append(fldErrs, core.FieldError{Field: "planned_deadline", Error: "enter a valid date (YYYY-MM-DD)"})
	}
	if len(fldErrs) > 0 {
		return nil, nil, core.NewValidationError(nil, fldErrs...)
	}

	form, err := ctx.FormParams()
	if err != nil {
		return nil, nil, err
	}
	for _, val := range form["documents_needed"] {
		id, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			continue
		}
		in.DocumentsNeeded = append(in.DocumentsNeeded, uint(id))
	}

	// the document upload is optional; any lookup failure counts as "no file"
	cleanup := func() {}
	if fh, err := ctx.FormFile("document"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = src.Close() }
		in.Document = &core.Document{
			Content:     src,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}

	return in, cleanup, nil
}

func parseDateField(ctx echo.Context, field string) (time.Time, error) {
	val := strings.TrimSpace(ctx.FormValue(field))
	if val == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateFieldLayout, val)
}

package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/beacon/core/opportunity"
)

type opportunityAPI struct {
	service *opportunity.Service
}

func registerOpportunityAPI(g *echo.Group, svc *opportunity.Service) {
	api := opportunityAPI{service: svc}

	og := g.Group("/opportunities")
	og.GET("", api.browse)
	og.GET("/:id", api.detail)

	// staff endpoints; authentication is enforced upstream of this service
	og.GET("/admin/new", api.newForm)
	og.POST("/admin/new", api.create)
	og.GET("/:id/admin/edit", api.editForm)
	og.POST("/:id/admin/edit", api.edit)
}

func (api *opportunityAPI) browse(ctx echo.Context) error {
	active, upcoming, err := api.service.Browse(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "browse", echo.Map{
		"Active":   active,
		"Upcoming": upcoming,
	})
}

func (api *opportunityAPI) detail(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return errHTTPNotFound
	}

	opp, err := api.service.Get(ctx.Request().Context(), uint(id))
	if err != nil {
		// private and missing opportunities are indistinguishable here
		if err == opportunity.ErrNotFound {
			return errHTTPNotFound
		}
		return err
	}
	return ctx.Render(http.StatusOK, "detail", echo.Map{"Opportunity": opp})
}

func (api *opportunityAPI) formViewData(ctx echo.Context, in *opportunity.Input, opp *opportunity.Opportunity) (echo.Map, error) {
	docs, err := api.service.QueryRequiredDocuments(ctx.Request().Context())
	if err != nil {
		return nil, err
	}
	return echo.Map{
		"Form":            in,
		"Opportunity":     opp,
		"DocumentChoices": docs,
	}, nil
}

func (api *opportunityAPI) newForm(ctx echo.Context) error {
	data, err := api.formViewData(ctx, &opportunity.Input{}, nil)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "opportunity", data)
}

func (api *opportunityAPI) create(ctx echo.Context) error {
	return api.save(ctx, nil)
}

func (api *opportunityAPI) editForm(ctx echo.Context) error {
	opp, err := api.loadForEdit(ctx)
	if err != nil {
		return err
	}

	in := &opportunity.Input{
		Title:           opp.Title,
		Description:     opp.Description,
		Department:      opp.Department,
		ContactEmail:    opp.Contact.Email,
		IsPublic:        opp.IsPublic,
		PlannedPublish:  opp.PlannedPublish,
		PlannedDeadline: opp.PlannedDeadline,
	}
	for _, doc := range opp.RequiredDocs {
		in.DocumentsNeeded = append(in.DocumentsNeeded, doc.ID)
	}

	data, err := api.formViewData(ctx, in, &opp)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "opportunity", data)
}

func (api *opportunityAPI) edit(ctx echo.Context) error {
	opp, err := api.loadForEdit(ctx)
	if err != nil {
		return err
	}
	return api.save(ctx, &opp)
}

func (api *opportunityAPI) loadForEdit(ctx echo.Context) (opportunity.Opportunity, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return opportunity.Opportunity{}, errHTTPNotFound
	}
	opp, err := api.service.GetAny(ctx.Request().Context(), uint(id))
	if err != nil {
		if err == opportunity.ErrNotFound {
			return opportunity.Opportunity{}, errHTTPNotFound
		}
		return opportunity.Opportunity{}, err
	}
	return opp, nil
}

func (api *opportunityAPI) save(ctx echo.Context, existing *opportunity.Opportunity) error {
	in, cleanup, err := bindOpportunityInput(ctx)
	if err != nil {
		if errs := formErrors(err); errs != nil {
			return api.renderFormErrors(ctx, &opportunity.Input{}, existing, errs)
		}
		return err
	}
	defer cleanup()

	if err := in.Validate(); err != nil {
		if errs := formErrors(err); errs != nil {
			return api.renderFormErrors(ctx, in, existing, errs)
		}
		return err
	}

	opp, err := api.service.Save(ctx.Request().Context(), *in, existing)
	if err != nil {
		return err
	}

	if existing == nil {
		return ctx.Redirect(http.StatusFound, fmt.Sprintf("/beacon/opportunities/%d/admin/edit", opp.ID))
	}

	data, err := api.formViewData(ctx, in, &opp)
	if err != nil {
		return err
	}
	data["Flash"] = "Opportunity Successfully Updated!"
	data["FlashClass"] = "alert-success"
	return ctx.Render(http.StatusOK, "opportunity", data)
}

func (api *opportunityAPI) renderFormErrors(ctx echo.Context, in *opportunity.Input, existing *opportunity.Opportunity, errs map[string]string) error {
	data, err := api.formViewData(ctx, in, existing)
	if err != nil {
		return err
	}
	data["Errors"] = errs
	return ctx.Render(http.StatusBadRequest, "opportunity", data)
}

package echoapi

import (
	"encoding/json"
	"fmt"
	htmltmpl "html/template"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/beacon/core/category"
	"github.com/trezcool/beacon/core/vendor"
)

type vendorAPI struct {
	service    *vendor.Service
	categories *category.Service
}

func registerVendorAPI(g *echo.Group, svc *vendor.Service, catSvc *category.Service) {
	api := vendorAPI{service: svc, categories: catSvc}

	g.GET("/signup", api.signupForm)
	g.POST("/signup", api.signup)
	g.GET("/manage", api.manageForm)
	g.POST("/manage", api.manage)
}

// signupViewData assembles the grouped subcategory choices the signup page
// renders as checkbox groups, Select All last.
func (api *vendorAPI) signupViewData(ctx echo.Context) (echo.Map, error) {
	cats, err := api.categories.QueryAll(ctx.Request().Context())
	if err != nil {
		return nil, err
	}

	grouped := category.Grouped(cats)
	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		if label != category.SelectAllGroup {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	labels = append(labels, category.SelectAllGroup)

	subcatJSON, err := json.Marshal(grouped)
	if err != nil {
		return nil, err
	}

	return echo.Map{
		"Categories":        labels,
		"Grouped":           grouped,
		"SubcategoriesJSON": htmltmpl.JS(subcatJSON),
	}, nil
}

func (api *vendorAPI) signupForm(ctx echo.Context) error {
	data, err := api.signupViewData(ctx)
	if err != nil {
		return err
	}
	// a pre-filled address from the "notify me" link on other pages
	data["Form"] = &vendor.SignupInput{Email: ctx.QueryParam("email")}
	return ctx.Render(http.StatusOK, "signup", data)
}

func (api *vendorAPI) signup(ctx echo.Context) error {
	in, err := bindSignupInput(ctx)
	if err != nil {
		return err
	}

	renderForm := func(code int, errs map[string]string) error {
		data, err := api.signupViewData(ctx)
		if err != nil {
			return err
		}
		data["Form"] = in
		data["Errors"] = errs
		return ctx.Render(code, "signup", data)
	}

	if err := in.Validate(); err != nil {
		if errs := formErrors(err); errs != nil {
			return renderForm(http.StatusBadRequest, errs)
		}
		return err
	}

	_, outcome, err := api.service.Signup(ctx.Request().Context(), *in)
	if err != nil {
		if errs := formErrors(err); errs != nil {
			return renderForm(http.StatusBadRequest, errs)
		}
		return err
	}

	flash, class := "You are already signed up! Your profile was updated with this new information", "alert-info"
	if outcome.Created {
		if outcome.ConfirmationSent {
			flash, class = "Thank you for signing up! Check your email for more information", "alert-success"
		} else {
			flash, class = "Uh oh, something went wrong. We are investigating.", "alert-danger"
		}
	}
	return ctx.Render(http.StatusOK, "index", echo.Map{"Flash": flash, "FlashClass": class})
}

func (api *vendorAPI) manageForm(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, "manage", echo.Map{"Form": &vendor.UnsubscribeInput{}})
}

// manage looks a vendor up by email and, on the unsubscribe action, drops the
// checked subscriptions; either way it re-renders the vendor's current set.
func (api *vendorAPI) manage(ctx echo.Context) error {
	in, err := bindUnsubscribeInput(ctx)
	if err != nil {
		return err
	}

	renderForm := func(code int, vnd *vendor.Vendor, errs map[string]string, flash string) error {
		data := echo.Map{"Form": in, "Errors": errs}
		if vnd != nil {
			subs := make([]category.Choice, 0, len(vnd.Categories))
			for _, cat := range vnd.Categories {
				subs = append(subs, category.Choice{ID: cat.ID, Subcategory: cat.Subcategory})
			}
			data["Subscriptions"] = subs
		}
		if flash != "" {
			data["Flash"] = flash
			data["FlashClass"] = "alert-success"
		}
		return ctx.Render(code, "manage", data)
	}

	if err := in.Validate(); err != nil {
		if errs := formErrors(err); errs != nil {
			return renderForm(http.StatusBadRequest, nil, errs, "")
		}
		return err
	}

	reqCtx := ctx.Request().Context()

	if ctx.FormValue("button") == "unsubscribe" {
		vnd, err := api.service.Unsubscribe(reqCtx, *in)
		if err != nil {
			if err == vendor.ErrNotFound {
				return renderForm(http.StatusOK, nil,
					map[string]string{"email": fmt.Sprintf("We could not find the email %s", in.Email)}, "")
			}
			return err
		}
		return renderForm(http.StatusOK, &vnd, nil, "Preferences updated!")
	}

	vnd, err := api.service.GetByEmail(reqCtx, in.Email)
	if err != nil {
		if err == vendor.ErrNotFound {
			return renderForm(http.StatusOK, nil,
				map[string]string{"email": fmt.Sprintf("We could not find the email %s", in.Email)}, "")
		}
		return err
	}
	return renderForm(http.StatusOK, &vnd, nil, "")
}

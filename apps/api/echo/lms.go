package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
)

type lmsApi struct {
	svc        *lms.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerLMSAPI(
	g *echo.Group,
	svc *lms.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := lmsApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	lg := g.Group("/lms")

	lg.PUT("/credential", api.saveCredential)
	lg.GET("/credential", api.credentialStatus)
	lg.DELETE("/credential", api.deleteCredential)
	lg.POST("/sync", api.runSync)
}

// Handlers

func (api *lmsApi) saveCredential(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data CredentialRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CredentialRequest")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	// the cookie is verified against the LMS before anything is persisted
	if err := api.svc.SaveCredential(ctx.Request().Context(), uid, data.Cookie); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lmsApi) credentialStatus(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	status, err := api.svc.CredentialStatus(ctx.Request().Context(), uid)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, status)
}

func (api *lmsApi) deleteCredential(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.DeleteCredential(ctx.Request().Context(), uid); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lmsApi) runSync(ctx echo.Context) error {
	uid, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	res, err := api.svc.Run(ctx.Request().Context(), uid)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

package echoapi

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
)

type CredentialRequest struct {
	Cookie string `json:"cookie" validate:"required"`
}

func (cr *CredentialRequest) Validate(validate *validator.Validate, translator ut.Translator) error {
	cr.Cookie = core.CleanString(cr.Cookie)
	if err := validate.Struct(cr); err != nil {
		return translateError(err, translator)
	}
	return nil
}

// translateError folds validator errors into a core.ValidationError with
// human-readable field messages.
func translateError(err error, translator ut.Translator) error {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]core.FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
	}
	return core.NewValidationError(err, flds...)
}

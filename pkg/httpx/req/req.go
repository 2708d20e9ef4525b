package req

import (
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"card_market/pkg/errcodes"
)

// MaxBodyBytes bounds the JSON bodies Read accepts.
const MaxBodyBytes = 1 << 20

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// Read decodes a JSON body into dest and validates it. Unknown fields and
// bodies over MaxBodyBytes are rejected as validation errors.
func Read(r *http.Request, dest any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}

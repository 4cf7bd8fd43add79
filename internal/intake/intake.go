// Package intake is the boundary between wire/persisted project data and the
// scoring engine. It validates raw requests and builds fully populated
// scoring.Input values, backfilling defaults for signals older records lack.
package intake

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
)

var (
	urlPattern     = regexp.MustCompile(`^https?://.+`)
	githubPattern  = regexp.MustCompile(`^https://github\.com/.+`)
	twitterPattern = regexp.MustCompile(`^@?[A-Za-z0-9_]{1,15}$`)
	discordPattern = regexp.MustCompile(`^https://discord\.gg/.+`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("weburl", matchPattern(urlPattern))
	_ = v.RegisterValidation("githuburl", matchPattern(githubPattern))
	_ = v.RegisterValidation("twitterhandle", matchPattern(twitterPattern))
	_ = v.RegisterValidation("discordinvite", matchPattern(discordPattern))
	_ = v.RegisterValidation("trackrecord", func(fl validator.FieldLevel) bool {
		return scoring.TrackRecord(fl.Field().String()).Valid()
	})
	return v
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidationError names the offending field of a rejected request.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Struct validates v and converts the first failure into a *ValidationError.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: describe(fe)}
	}
	return &ValidationError{Field: "body", Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "trackrecord":
		return "Invalid track record value"
	case "weburl", "githuburl", "twitterhandle", "discordinvite":
		return "Invalid " + fe.Field()
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pmihealth/cardiology-api/internal/utils"
)

// Violation is one field-level failure. All violations for a request are
// collected and returned together; a mutation never runs after any of them.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Setup registers the custom validators and makes field names in violation
// reports follow the json tags instead of the Go struct fields.
func Setup() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", isISODate)
}

// isISODate accepts a calendar date or a full RFC3339 timestamp.
func isISODate(fl validator.FieldLevel) bool {
	_, err := ParseISODate(fl.Field().String())
	return err == nil
}

// ParseISODate parses "2006-01-02" or an RFC3339 timestamp.
func ParseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Violations translates a binding error into the ordered violation list.
// Evaluation order is the field declaration order of the request struct.
func Violations(err error) []Violation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: "body", Message: "Invalid request body"}}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name from the namespace, leaving paths like
// "address.street".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "isodate":
		return fmt.Sprintf("%s must be a valid date", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// RespondViolations writes the standard 400 validation envelope.
func RespondViolations(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":   false,
		"message":   "Validation failed",
		"errors":    Violations(err),
		"timestamp": utils.Timestamp(),
	})
}

package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	PatientName  string `json:"patientName" binding:"required"`
	PatientEmail string `json:"patientEmail" binding:"required,email"`
	Date         string `json:"date" binding:"required,isodate"`
	Gender       string `json:"gender" binding:"omitempty,oneof=male female"`
	Order        int    `json:"order" binding:"omitempty,min=1"`
}

func bindJSON(t *testing.T, body string, dst any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dst)
}

func TestViolationsAreCollectedInDeclarationOrder(t *testing.T) {
	var form bookingForm
	err := bindJSON(t, `{"patientEmail":"not-an-email","date":"soon","gender":"robot","order":0}`, &form)
	assert.Error(t, err)

	vs := Violations(err)
	assert.Len(t, vs, 4)
	assert.Equal(t, "patientName", vs[0].Field)
	assert.Equal(t, "patientName is required", vs[0].Message)
	assert.Equal(t, "patientEmail", vs[1].Field)
	assert.Contains(t, vs[1].Message, "valid email")
	assert.Equal(t, "date", vs[2].Field)
	assert.Contains(t, vs[2].Message, "valid date")
	assert.Equal(t, "gender", vs[3].Field)
	assert.Contains(t, vs[3].Message, "must be one of")
}

func TestValidPayloadHasNoViolations(t *testing.T) {
	var form bookingForm
	err := bindJSON(t, `{"patientName":"Sara","patientEmail":"sara@example.com","date":"2030-01-15","gender":"female","order":2}`, &form)
	assert.NoError(t, err)
}

func TestMalformedJSONYieldsBodyViolation(t *testing.T) {
	var form bookingForm
	err := bindJSON(t, `{"patientName":`, &form)
	assert.Error(t, err)

	vs := Violations(err)
	assert.Len(t, vs, 1)
	assert.Equal(t, "body", vs[0].Field)
}

func TestNestedFieldPaths(t *testing.T) {
	type address struct {
		Street string `json:"street" binding:"required"`
		City   string `json:"city" binding:"required"`
	}
	type form struct {
		Name    string  `json:"name" binding:"required"`
		Address address `json:"address" binding:"required"`
	}

	var f form
	err := bindJSON(t, `{"name":"x","address":{}}`, &f)
	assert.Error(t, err)

	vs := Violations(err)
	assert.Len(t, vs, 2)
	assert.Equal(t, "address.street", vs[0].Field)
	assert.Equal(t, "address.city", vs[1].Field)
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2030-06-15")
	assert.NoError(t, err)
	assert.Equal(t, 2030, d.Year())

	d, err = ParseISODate("2030-06-15T08:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseISODate("June 15th")
	assert.Error(t, err)
}

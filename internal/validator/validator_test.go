package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

type payload struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"min=0,max=10"`
	Plain string `validate:"required"`
}

func Test_Validator_CheckKeepsFirstError(t *testing.T) {
	v := validator.New()
	assert.True(t, v.Valid())

	v.Check(true, "name", "never recorded")
	assert.True(t, v.Valid())

	v.Check(false, "name", "first")
	v.Check(false, "name", "second")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"name": "first"}, v.Errors)
}

func Test_Validator_StructUsesJSONNames(t *testing.T) {
	v := validator.New()
	v.Struct(payload{Count: 11})

	assert.Equal(t, "must be provided", v.Errors["name"])
	assert.Equal(t, "must be less than or equal to 10", v.Errors["count"])
	assert.Equal(t, "must be provided", v.Errors["Plain"])
	assert.Len(t, v.Errors, 3)
}

func Test_Validator_StructMin(t *testing.T) {
	v := validator.New()
	v.Struct(&payload{Name: "x", Count: -1, Plain: "z"})

	assert.Equal(t, map[string]string{"count": "must be greater than or equal to 0"}, v.Errors)
}

func Test_Validator_StructValid(t *testing.T) {
	v := validator.New()
	v.Struct(payload{Name: "x", Count: 3, Plain: "z"})

	assert.True(t, v.Valid())
}

func Test_Validator_StructRejectsNonStruct(t *testing.T) {
	v := validator.New()
	v.Struct(42)

	assert.Contains(t, v.Errors, "payload")
}

func Test_In(t *testing.T) {
	assert.True(t, validator.In("1", "0", "1"))
	assert.False(t, validator.In("2", "0", "1"))
	assert.False(t, validator.In("x"))
}

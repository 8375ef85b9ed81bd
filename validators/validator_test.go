package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name    string   `validate:"required,max=5"`
	Website string   `validate:"omitempty,url"`
	IDs     []string `validate:"required,min=1,dive,required"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(sample{Name: "ok", IDs: []string{"a"}}))

	err := v.Validate(sample{Name: "toolong", Website: "nope", IDs: []string{"a"}})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "name must be at most 5 characters")
		assert.Contains(t, err.Error(), "website must be a valid URL")
	}

	err = v.Validate(sample{Name: "ok"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "ids is required")
	}
}

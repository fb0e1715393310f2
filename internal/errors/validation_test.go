package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("rules_dir", "is required")
	ve.AddFieldErrorf("workers", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "rules_dir: is required")
	s.Assert().Contains(ve.Error(), "workers: must be at least 1")

	s.Assert().True(ve.HasField("workers"))
	s.Assert().False(ve.HasField("store"))

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().Equal([]errors.FieldError{
		{Field: "rules_dir", Message: "is required"},
		{Field: "workers", Message: "must be at least 1"},
	}, err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationErrorKeepsOrder() {
	ve := errors.NewValidationError()
	ve.AddFieldError("workers", "must be positive")
	ve.AddFieldError("store", "is required")
	ve.AddFieldError("workers", "must be at most 64")

	s.Assert().Equal(
		"validation failed: workers: must be positive, must be at most 64; store: is required",
		ve.Error(),
	)
	s.Assert().Nil(errors.NewValidationError().ToError())
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("parser").
		InvalidField("store", "unknown backend")

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "rules", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("workers", 0, 1, 64, vb)
	errors.ValidateEnum("store", "postgres", []string{"none", "redis", "sqlite"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "workers: must be between 1 and 64")
	s.Assert().Contains(err.Error(), "store: must be one of: none, redis, sqlite")
}

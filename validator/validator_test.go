package validator_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	lcvalidator "github.com/jaysparkx/LambdaCloudWrapper/validator"
	"github.com/stretchr/testify/require"
)

type launchInput struct {
	Region   string   `json:"region_name"       validate:"required"`
	Keys     []string `json:"ssh_key_names"     validate:"len=1,dive,required"`
	Volumes  []string `json:"file_system_names" validate:"max=1"`
	Quantity *int     `json:"quantity"          validate:"omitempty,gte=1"`
	Name     string   `json:"name"              validate:"omitempty,max=8"`
}

func intPtr(v int) *int { return &v }

func validLaunch() launchInput {
	return launchInput{
		Region:   "us-tx-1",
		Keys:     []string{"macbook-pro"},
		Volumes:  nil,
		Quantity: nil,
		Name:     "",
	}
}

func requireValidationErrors(t *testing.T, err error) lcvalidator.ValidationErrors {
	t.Helper()

	var validationErrs lcvalidator.ValidationErrors

	require.True(t, errors.As(err, &validationErrs))
	require.NotEmpty(t, validationErrs)

	return validationErrs
}

func TestNew(t *testing.T) {
	t.Parallel()

	validatorInstance := lcvalidator.New()
	require.NotNil(t, validatorInstance)
	require.NotNil(t, validatorInstance.Validator)
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	err := lcvalidator.New().Validate(validLaunch())
	require.NoError(t, err)
}

func TestValidate_RequiredFieldMissing(t *testing.T) {
	t.Parallel()

	input := validLaunch()
	input.Region = ""

	validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(input))

	require.Len(t, validationErrs, 1)
	require.Equal(t, "region_name", validationErrs[0].Field)
	require.Equal(t, "required", validationErrs[0].Tag)
	require.Equal(t, "region_name is required", validationErrs[0].Message)
}

func TestValidate_CollectionLengthMessages(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		mutate      func(*launchInput)
		field       string
		expectedMsg string
	}{
		{
			name:        "no keys",
			mutate:      func(in *launchInput) { in.Keys = nil },
			field:       "ssh_key_names",
			expectedMsg: "ssh_key_names must contain exactly 1 item(s)",
		},
		{
			name:        "two keys",
			mutate:      func(in *launchInput) { in.Keys = []string{"a", "b"} },
			field:       "ssh_key_names",
			expectedMsg: "ssh_key_names must contain exactly 1 item(s)",
		},
		{
			name:        "two file systems",
			mutate:      func(in *launchInput) { in.Volumes = []string{"a", "b"} },
			field:       "file_system_names",
			expectedMsg: "file_system_names must contain at most 1 item(s)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			input := validLaunch()
			testCase.mutate(&input)

			validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(input))

			require.Equal(t, testCase.field, validationErrs[0].Field)
			require.Equal(t, testCase.expectedMsg, validationErrs[0].Message)
		})
	}
}

func TestValidate_DiveReportsEmptyElement(t *testing.T) {
	t.Parallel()

	input := validLaunch()
	input.Keys = []string{""}

	validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(input))

	require.Equal(t, "ssh_key_names[0]", validationErrs[0].Field)
	require.Equal(t, "ssh_key_names[0] is required", validationErrs[0].Message)
}

func TestValidate_OptionalPointerChecksValueWhenSet(t *testing.T) {
	t.Parallel()

	validatorInstance := lcvalidator.New()

	input := validLaunch()
	input.Quantity = intPtr(0)

	validationErrs := requireValidationErrors(t, validatorInstance.Validate(input))
	require.Equal(t, "quantity must be greater than or equal to 1", validationErrs[0].Message)

	input.Quantity = intPtr(2)
	require.NoError(t, validatorInstance.Validate(input))
}

func TestValidate_StringMaxMessage(t *testing.T) {
	t.Parallel()

	input := validLaunch()
	input.Name = "much-too-long"

	validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(input))

	require.Equal(t, "name must be at most 8", validationErrs[0].Message)
}

func TestValidate_MultipleErrorsJoined(t *testing.T) {
	t.Parallel()

	input := validLaunch()
	input.Region = ""
	input.Volumes = []string{"a", "b"}

	validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(input))

	require.Equal(t, []string{"region_name", "file_system_names"}, validationErrs.Fields())
	require.Equal(t,
		"region_name is required; file_system_names must contain at most 1 item(s)",
		validationErrs.Error())
}

func TestValidate_MinItemsMessage(t *testing.T) {
	t.Parallel()

	type idsOnly struct {
		IDs []string `json:"instance_ids" validate:"min=1,dive,required"`
	}

	validationErrs := requireValidationErrors(t, lcvalidator.New().Validate(idsOnly{IDs: []string{}}))

	require.Equal(t, "instance_ids must contain at least 1 item(s)", validationErrs[0].Message)
}

func TestVar_ReportsFieldName(t *testing.T) {
	t.Parallel()

	validationErrs := requireValidationErrors(t, lcvalidator.New().Var("instance_id", "", "required"))

	require.Equal(t, "instance_id is required", validationErrs[0].Message)
}

func TestRegisterCustomValidation(t *testing.T) {
	t.Parallel()

	validatorInstance := lcvalidator.New()

	err := validatorInstance.RegisterCustomValidation("lambdaregion", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) > 3
	})
	require.NoError(t, err)

	type regionOnly struct {
		Region string `json:"region" validate:"lambdaregion"`
	}

	validationErrs := requireValidationErrors(t, validatorInstance.Validate(regionOnly{Region: "us"}))
	require.Equal(t, "region failed validation on 'lambdaregion'", validationErrs[0].Message)
}

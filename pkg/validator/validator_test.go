package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone"`
	Type      string `json:"registrationType" validate:"required"`
}

type idList struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,positive"`
}

func TestMissingFieldsReportsEveryField(t *testing.T) {
	missing, err := MissingFields(context.Background(), signup{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"firstName", "lastName", "registrationType"}, missing)
}

func TestMissingFieldsNoneMissing(t *testing.T) {
	missing, err := MissingFields(context.Background(), signup{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Type:      "speaker",
	})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestValidatePositiveIDs(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, Validate(ctx, idList{IDs: []int64{1, 2, 3}}))

	err := Validate(ctx, idList{IDs: []int64{1, 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Value must be positive")

	err = Validate(ctx, idList{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrFieldRequired)
}

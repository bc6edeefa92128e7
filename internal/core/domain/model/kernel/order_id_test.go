package kernel_test

import (
	"strings"
	"testing"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("carries_prefix_and_suffix", func(t *testing.T) {
		id := kernel.NewOrderID()

		require.NoError(t, id.Validate())
		assert.True(t, strings.HasPrefix(id.String(), "FGO"))
		assert.Greater(t, len(id.String()), len("FGO")+13)
	})

	t.Run("generated_ids_are_unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 1000 {
			id := kernel.NewOrderID()
			assert.False(t, seen[id.String()], "duplicate order ID %s", id)
			seen[id.String()] = true
		}
	})
}

func TestOrderIDFromString(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		original := kernel.NewOrderID()

		restored, err := kernel.OrderIDFromString(original.String())
		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
	})

	t.Run("empty_string_fails", func(t *testing.T) {
		_, err := kernel.OrderIDFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing_prefix_fails", func(t *testing.T) {
		_, err := kernel.OrderIDFromString("ORD12345")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var id kernel.OrderID
		require.Error(t, id.Validate())
	})
}

func TestRole_Validate(t *testing.T) {
	for _, role := range []kernel.Role{kernel.RoleCustomer, kernel.RoleDeliveryPartner, kernel.RoleAdmin} {
		require.NoError(t, role.Validate())
	}

	require.ErrorIs(t, kernel.Role("driver").Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, kernel.Role("").Validate(), errs.ErrValueIsInvalid)
}

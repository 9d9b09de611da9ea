package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderByIDQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderByIDQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, id, query.OrderID())
}

func TestNewGetOrderByIDQuery_EmptyID(t *testing.T) {
	var empty kernel.UUID

	_, err := queries.NewGetOrderByIDQuery(empty)
	require.Error(t, err)
}

func TestGetOrderByIDQuery_ZeroValueFailsValidation(t *testing.T) {
	require.ErrorIs(t,
		queries.GetOrderByIDQuery{}.Validate(),
		queries.ErrGetOrderByIDQueryIsNotConstructed)
}

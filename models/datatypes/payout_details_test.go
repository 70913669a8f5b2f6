package datatypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutDetailsScan(t *testing.T) {
	var details PayoutDetails

	require.NoError(t, details.Scan([]byte(`{"method":"transfer","reference":"CR05-0152-0001"}`)))
	assert.Equal(t, "transfer", details.Method)
	assert.Equal(t, "CR05-0152-0001", details.Reference)

	require.NoError(t, details.Scan(`{"method":"cash","reference":""}`))
	assert.Equal(t, "cash", details.Method)

	require.NoError(t, details.Scan(nil))
	assert.True(t, details.IsZero())

	assert.Error(t, details.Scan(42))
}

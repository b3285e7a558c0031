package cmd

import (
	"testing"

	"asset-sync/core/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitsOf(t *testing.T) {
	full, err := notification.Decode([]byte(`{"notification_type":"resource_metadata_changed","resources":{"b":{},"a":{}}}`))
	require.NoError(t, err)
	units, err := unitsOf(full)
	require.NoError(t, err)
	assert.Len(t, units, 2)

	single, err := notification.Decode([]byte(`{"resources":[{"publicId":"a","resource_type":"image"}]}`))
	require.NoError(t, err)
	units, err = unitsOf(single)
	require.NoError(t, err)
	require.Len(t, units, 1)

	broken, err := notification.Decode([]byte(`{"resources":"nope"}`))
	require.NoError(t, err)
	_, err = unitsOf(broken)
	assert.ErrorIs(t, err, notification.ErrMalformed)
}

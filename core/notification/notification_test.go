package notification

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multi = `{
	"notification_type": "resource_metadata_changed",
	"source": "ui",
	"resources": {
		"shoes/img_2": {"resource_type": "image", "type": "upload", "new_metadata": {"sku": "SKU-B"}},
		"img_1": {"resource_type": "video", "type": "upload", "previous_metadata": {"sku": "SKU-A"}}
	}
}`

func TestSplit(t *testing.T) {
	n, err := Decode([]byte(multi))
	require.NoError(t, err)
	assert.Equal(t, TypeMetadataChanged, n.Type())

	units, err := n.Split()
	require.NoError(t, err)
	require.Len(t, units, 2)

	first, err := units[0].Resource()
	require.NoError(t, err)
	assert.Equal(t, "img_1", first.PublicID)
	assert.Equal(t, "video", first.ResourceType)
	assert.JSONEq(t, `{"sku":"SKU-A"}`, string(first.PreviousMetadata))

	second, err := units[1].Resource()
	require.NoError(t, err)
	assert.Equal(t, "shoes/img_2", second.PublicID)
	assert.JSONEq(t, `{"sku":"SKU-B"}`, string(second.NewMetadata))

	for _, u := range units {
		assert.JSONEq(t, `"ui"`, string(u["source"]))
		assert.Equal(t, TypeMetadataChanged, u.Type())
	}

	// The original notification is left untouched.
	var resources map[string]any
	require.NoError(t, json.Unmarshal(n["resources"], &resources))
	assert.Len(t, resources, 2)
}

func TestSplit_NoResources(t *testing.T) {
	for _, body := range []string{
		`{"notification_type":"resource_metadata_changed"}`,
		`{"notification_type":"resource_metadata_changed","resources":null}`,
		`{"notification_type":"resource_metadata_changed","resources":{}}`,
	} {
		n, err := Decode([]byte(body))
		require.NoError(t, err)
		units, err := n.Split()
		require.NoError(t, err)
		assert.Empty(t, units, body)
	}
}

func TestSplit_MalformedResources(t *testing.T) {
	n, err := Decode([]byte(`{"resources":[1,2]}`))
	require.NoError(t, err)
	_, err = n.Split()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode([]byte(`null`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestResource_Errors(t *testing.T) {
	_, err := Notification{}.Resource()
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Notification{"resources": json.RawMessage(`[]`)}.Resource()
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Notification{"resources": json.RawMessage(`[{"resource_type":"image"}]`)}.Resource()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEnvelopeAndPush(t *testing.T) {
	n, err := Decode([]byte(multi))
	require.NoError(t, err)
	units, err := n.Split()
	require.NoError(t, err)

	data, err := Encode(units[0])
	require.NoError(t, err)

	unit, err := DecodeEnvelope(data)
	require.NoError(t, err)
	res, err := unit.Resource()
	require.NoError(t, err)
	assert.Equal(t, "img_1", res.PublicID)

	push := `{"message":{"data":"` + base64.StdEncoding.EncodeToString(data) + `","messageId":"1"},"subscription":"s"}`
	unit, err = DecodePush([]byte(push))
	require.NoError(t, err)
	res, err = unit.Resource()
	require.NoError(t, err)
	assert.Equal(t, "img_1", res.PublicID)

	_, err = DecodePush([]byte(`{"message":{}}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeEnvelope([]byte(`{"other":1}`))
	assert.ErrorIs(t, err, ErrMalformed)
}

package odata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList_BothEnvelopesNormalizeAlike(t *testing.T) {
	v4 := `{"@odata.context":"$metadata#MessageProcessingLogs","value":[{"MessageGuid":"a","Status":"FAILED"},{"MessageGuid":"b","Status":"FAILED"}]}`
	v2 := `{"d":{"__count":"2","results":[{"MessageGuid":"a","Status":"FAILED"},{"MessageGuid":"b","Status":"FAILED"}]}}`

	p4 := DecodeList(v4)
	p2 := DecodeList(v2)

	assert.Equal(t, VersionV4, p4.Version)
	assert.Equal(t, VersionV2, p2.Version)
	assert.Equal(t, p4.Rows, p2.Rows)
	require.Len(t, p4.Rows, 2)
	assert.Equal(t, "b", p4.Rows[1].String("MessageGuid"))
}

func TestDecodeList_PrefersValue(t *testing.T) {
	p := DecodeList(`{"value":[{"Id":"v"}],"d":{"results":[{"Id":"d"}]}}`)
	assert.Equal(t, VersionV4, p.Version)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "v", p.Rows[0].String("Id"))
}

func TestDecodeList_SingleV2Entity(t *testing.T) {
	p := DecodeList(`{"d":{"ErrorText":"Connection refused"}}`)
	assert.Equal(t, VersionV2, p.Version)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Connection refused", p.Rows[0].String("errortext"))
}

func TestDecodeList_UnknownShapesAreEmpty(t *testing.T) {
	inputs := []string{
		``,
		`not json`,
		`[1,2,3]`,
		`{"items":[{"a":1}]}`,
		`{"value":null}`,
		`{"d":null}`,
		`{"d":{"results":"nope"}}`,
		`<feed/>`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p := DecodeList(in)
			assert.Equal(t, VersionUnknown, p.Version)
			assert.Empty(t, p.Rows)
		})
	}
}

func TestRow_Lookups(t *testing.T) {
	r := Row{"messageguid": "g1", "Count": float64(3), "Flag": true, "Gone": nil, "Empty": ""}

	assert.Equal(t, "g1", r.String("MessageGuid"))
	assert.Equal(t, "3", r.String("count"))
	assert.Equal(t, "true", r.String("Flag"))
	assert.Equal(t, "g1", r.String("Empty", "Gone", "MessageGuid"))
	assert.True(t, r.Has("COUNT"))
	assert.False(t, r.Has("Gone"))
	assert.False(t, r.Has("Missing"))
}

func TestRow_NestedRows(t *testing.T) {
	v4 := DecodeList(`{"value":[{"Name":"Orders","EntryPoints":[{"Url":"https://x/http/a"}]}]}`)
	require.Len(t, v4.Rows, 1)
	eps := v4.Rows[0].Rows("EntryPoints")
	require.Len(t, eps, 1)
	assert.Equal(t, "https://x/http/a", eps[0].String("Url"))

	v2 := DecodeList(`{"d":{"results":[{"Name":"Orders","EntryPoints":{"results":[{"Url":"u1"},{"Url":"u2"}]}}]}}`)
	require.Len(t, v2.Rows, 1)
	assert.Len(t, v2.Rows[0].Rows("EntryPoints"), 2)

	assert.Nil(t, Row{}.Rows("EntryPoints"))
}

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name string `json:"name"`
	Sum  uint64 `json:"sum,omitempty"`
	Size int    `json:"size"`
}

func TestMarshalKeepsNamesUnescaped(t *testing.T) {
	raw, err := Marshal(entry{Name: "a<b>&c.bin", Sum: 1<<63 + 7, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a<b>&c.bin","sum":9223372036854775815,"size":3}`, string(raw))

	var out entry
	require.NoError(t, Unmarshal(raw, &out))
	assert.Equal(t, entry{Name: "a<b>&c.bin", Sum: 1<<63 + 7, Size: 3}, out)
}

func TestMarshalSortsMapKeys(t *testing.T) {
	raw, err := Marshal(map[string]int{"b": 2, "c": 3, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(raw))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteReport(&buf, entry{Name: "<x>", Size: 1}))
	assert.Equal(t, "{\n  \"name\": \"<x>\",\n  \"size\": 1\n}\n", buf.String())
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	var out entry
	assert.Error(t, Unmarshal([]byte(`{"name":`), &out))
}

package resources

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/resourcebox-go/apperror"
)

const (
	testMaxCell  = 512
	testMaxArray = 10
)

func TestSanitize_GeneratesID(t *testing.T) {
	res, err := Sanitize(RawResource{Data: []any{"a"}}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestSanitize_KeepsSuppliedID(t *testing.T) {
	res, err := Sanitize(RawResource{ID: "r1", Data: []any{"a"}}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.Equal(t, "r1", res.ID)
}

func TestSanitize_StampsTimestamps(t *testing.T) {
	res, err := Sanitize(RawResource{Data: []any{"a"}}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.NotZero(t, res.Created)
	assert.Equal(t, res.Created, res.Modified)
	assert.Nil(t, res.Deleted)
}

func TestSanitize_MissingData(t *testing.T) {
	for _, raw := range []RawResource{{}, {Data: []any{}}} {
		_, err := Sanitize(raw, testMaxCell, testMaxArray)
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
		assert.Equal(t, "One field required", err.(*apperror.AppError).Message)
	}
}

func TestSanitizeData_CapsArrayLength(t *testing.T) {
	data := make([]any, 20)
	for i := range data {
		data[i] = "cell"
	}

	out, err := SanitizeData(data, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.Len(t, out, testMaxArray)
}

func TestSanitizeData_TruncatesLongCells(t *testing.T) {
	long := strings.Repeat("x", testMaxCell+100)

	out, err := SanitizeData([]any{long}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", testMaxCell), out[0])
}

func TestSanitizeData_NumbersPassThrough(t *testing.T) {
	out, err := SanitizeData([]any{float64(42), "a"}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	assert.Equal(t, float64(42), out[0])
	assert.Equal(t, "a", out[1])
}

func TestSanitizeData_CoercesOtherTypes(t *testing.T) {
	out, err := SanitizeData([]any{true, nil, map[string]any{"k": "v"}, []any{"nested"}}, testMaxCell, testMaxArray)
	require.NoError(t, err)
	for i, cell := range out {
		assert.Equal(t, "", cell, "cell %d should be coerced to empty string", i)
	}
}

func TestSanitizeID_AllowList(t *testing.T) {
	cases := map[string]string{
		"plain-id_01":        "plain-id_01",
		"$where":             "where",
		"{\"$gt\":\"\"}":     "gt",
		"a.b;DROP TABLE c--": "abDROPTABLEc--",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeID(in), "input %q", in)
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPreferenceValueFromBSON(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  PreferenceValue
	}{
		{"string true", "true", PreferenceTrue},
		{"string false", "false", PreferenceFalse},
		{"other string", "sometimes", PreferenceValue("sometimes")},
		{"legacy bool", true, ""},
		{"number", int32(1), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"name": "Remote Work", "value": tc.value})
			require.NoError(t, err)

			var pref WorkPreference
			require.NoError(t, bson.Unmarshal(raw, &pref))
			assert.Equal(t, "Remote Work", pref.Name)
			assert.Equal(t, tc.want, pref.Value)
		})
	}
}

func TestPreferenceValueFromJSON(t *testing.T) {
	var pref WorkPreference
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Remote Work","value":true}`), &pref))
	assert.Equal(t, PreferenceTrue, pref.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Night Shift","value":"false"}`), &pref))
	assert.Equal(t, PreferenceFalse, pref.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"value":1}`), &pref))
}

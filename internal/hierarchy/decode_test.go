package hierarchy

import (
	"testing"

	"github.com/couchcryptid/office-picker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCountries(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr error
	}{
		{
			name: "bare array",
			body: `[{"id":"us","name":"United States","states":[]},{"id":"ca","name":"Canada"}]`,
			want: []string{"us", "ca"},
		},
		{
			name: "wrapped",
			body: `{"countries":[{"id":"de","name":"Germany"}]}`,
			want: []string{"de"},
		},
		{
			name: "wrapped empty",
			body: `{"countries":[]}`,
			want: []string{},
		},
		{
			name:    "object without countries",
			body:    `{"data":[{"id":"de","name":"Germany"}]}`,
			wantErr: domain.ErrUnrecognizedShape,
		},
		{
			name:    "scalar",
			body:    `"countries"`,
			wantErr: domain.ErrUnrecognizedShape,
		},
		{
			name:    "empty body",
			body:    "  ",
			wantErr: domain.ErrUnrecognizedShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCountries([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDecodeCountries_NestedLevels(t *testing.T) {
	body := `[{"id":"us","name":"United States","states":[
		{"id":"tx","name":"Texas","cities":[{"id":"aus","name":"Austin"},{"id":"dal","name":"Dallas"}]}
	]}]`

	got, err := DecodeCountries([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].States, 1)
	assert.Equal(t, "Texas", got[0].States[0].Name)
	assert.Equal(t, []domain.City{{ID: "aus", Name: "Austin"}, {ID: "dal", Name: "Dallas"}}, got[0].States[0].Cities)
}

func TestDecodeCountries_InvalidJSON(t *testing.T) {
	_, err := DecodeCountries([]byte(`[{"id":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnrecognizedShape)
}

func TestDecodeFacilities(t *testing.T) {
	const office = `{"id":"o-1","name":"HQ","type":{"id":"t1","name":"Office"},"status":"open","isActive":true,"cityId":"aus"}`

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "bare array", body: "[" + office + "]", want: 1},
		{name: "data envelope", body: `{"data":[` + office + `,` + office + `]}`, want: 2},
		{name: "offices envelope", body: `{"offices":[` + office + `]}`, want: 1},
		{name: "unknown envelope", body: `{"items":[` + office + `]}`, want: 0},
		{name: "scalar", body: `42`, want: 0},
		{name: "empty body", body: ``, want: 0},
		{name: "invalid json", body: `{"data":[`, wantErr: true},
		{name: "invalid scalar", body: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFacilities([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestDecodeFacilities_Fields(t *testing.T) {
	body := `{"data":[{"id":"o-1","name":"HQ","type":{"id":"t1","name":"Office"},"status":"renovation","isActive":false,"cityId":"aus"}]}`

	got, err := DecodeFacilities([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Facility{
		ID:       "o-1",
		Name:     "HQ",
		Type:     domain.FacilityType{ID: "t1", Name: "Office"},
		Status:   "renovation",
		IsActive: false,
		CityID:   "aus",
	}, got[0])
}

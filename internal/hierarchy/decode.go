package hierarchy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/office-picker/internal/domain"
)

// countriesEnvelope is the wrapped layout: {"countries": [...]}.
type countriesEnvelope struct {
	Countries *[]domain.Country `json:"countries"`
}

// facilitiesEnvelope covers the wrapped layouts the offices endpoint has used.
type facilitiesEnvelope struct {
	Data    *[]domain.Facility `json:"data"`
	Offices *[]domain.Facility `json:"offices"`
}

// DecodeCountries normalizes a location response. It accepts a bare array of
// countries or an object with a "countries" array, and fails closed with
// domain.ErrUnrecognizedShape on anything else.
func DecodeCountries(data []byte) ([]domain.Country, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode countries: empty body: %w", domain.ErrUnrecognizedShape)
	}

	switch data[0] {
	case '[':
		var countries []domain.Country
		if err := json.Unmarshal(data, &countries); err != nil {
			return nil, fmt.Errorf("decode countries: %w", err)
		}
		return countries, nil
	case '{':
		var env countriesEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode countries: %w", err)
		}
		if env.Countries == nil {
			return nil, fmt.Errorf("decode countries: missing \"countries\" key: %w", domain.ErrUnrecognizedShape)
		}
		return *env.Countries, nil
	default:
		return nil, fmt.Errorf("decode countries: %w", domain.ErrUnrecognizedShape)
	}
}

// DecodeFacilities normalizes an offices response. A bare array or an object
// wrapping one in "data" or "offices" is accepted. Valid JSON in any other
// layout yields zero facilities; only unparseable input is an error.
func DecodeFacilities(data []byte) ([]domain.Facility, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.Facility{}, nil
	}

	switch data[0] {
	case '[':
		var facilities []domain.Facility
		if err := json.Unmarshal(data, &facilities); err != nil {
			return nil, fmt.Errorf("decode facilities: %w", err)
		}
		return facilities, nil
	case '{':
		var env facilitiesEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode facilities: %w", err)
		}
		switch {
		case env.Data != nil:
			return *env.Data, nil
		case env.Offices != nil:
			return *env.Offices, nil
		}
		return []domain.Facility{}, nil
	default:
		if !json.Valid(data) {
			return nil, fmt.Errorf("decode facilities: invalid JSON")
		}
		return []domain.Facility{}, nil
	}
}

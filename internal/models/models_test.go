package models_test

import (
	"testing"

	"github.com/glekoz/uvsearch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinuteKey_Valid(t *testing.T) {
	tests := []struct {
		date, hour, minute string
		want               string
	}{
		{"2024-01-01", "09", "30", "2024-01-01 09:30"},
		{"2024-01-01", "00", "00", "2024-01-01 00:00"},
		{"2024-01-01", "23", "59", "2024-01-01 23:59"},
		{"2024-02-29", "12", "05", "2024-02-29 12:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key, err := models.ParseMinuteKey(tt.date, tt.hour, tt.minute)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key.String())
		})
	}
}

func TestParseMinuteKey_Malformed(t *testing.T) {
	tests := []struct {
		name               string
		date, hour, minute string
	}{
		{"all empty", "", "", ""},
		{"missing date", "", "09", "30"},
		{"unpadded hour", "2024-01-01", "9", "30"},
		{"unpadded minute", "2024-01-01", "09", "5"},
		{"hour out of range", "2024-01-01", "24", "00"},
		{"minute out of range", "2024-01-01", "12", "60"},
		{"signed hour", "2024-01-01", "+1", "00"},
		{"day out of range", "2023-02-29", "12", "00"},
		{"slashed date", "2024/01/01", "12", "00"},
		{"date with time", "2024-01-01 09:30", "09", "30"},
		{"injection attempt", "2024-01-01' OR '1'='1", "09", "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.ParseMinuteKey(tt.date, tt.hour, tt.minute)
			assert.ErrorIs(t, err, models.ErrMalformedKey)
		})
	}
}

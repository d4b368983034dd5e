package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/rohits-web03/meshvault/internal/models"
)

func TestBuildCustomData(t *testing.T) {
	fields := []models.CustomField{
		{ID: uuid.New(), FieldName: "rigged", FieldType: models.FieldTypeBoolean, IsRequired: true},
		{ID: uuid.New(), FieldName: "vehicle_type", FieldType: models.FieldTypeSelect, FieldOptions: datatypes.JSON(`["car","truck"]`)},
		{ID: uuid.New(), FieldName: "scale", FieldType: models.FieldTypeNumber},
		{ID: uuid.New(), FieldName: "reference", FieldType: models.FieldTypeURL},
		{ID: uuid.New(), FieldName: "released", FieldType: models.FieldTypeDate},
		{ID: uuid.New(), FieldName: "notes", FieldType: models.FieldTypeText},
	}

	data, err := buildCustomData(fields, map[string]string{
		fields[0].ID.String(): "1",
		"vehicle_type":        "truck",
		"scale":               " 0.5 ",
		"reference":           "https://example.com/ref",
		"released":            "2024-02-29",
		"notes":               "",
	}, true)
	require.NoError(t, err)
	require.Len(t, data, 5)
	assert.Equal(t, fields[0].ID, data[0].FieldID)
	assert.Equal(t, "true", data[0].FieldValue)
	assert.Equal(t, "truck", data[1].FieldValue)
	assert.Equal(t, "0.5", data[2].FieldValue)

	invalid := []map[string]string{
		{"rigged": "maybe"},
		{"rigged": "true", "vehicle_type": "bicycle"},
		{"rigged": "true", "scale": "big"},
		{"rigged": "true", "reference": "ftp://example.com"},
		{"rigged": "true", "reference": "not a url"},
		{"rigged": "true", "released": "29/02/2024"},
		{"rigged": "true", "colour": "red"},
		{"rigged": "true", fields[0].ID.String(): "false"},
		{},
	}
	for _, values := range invalid {
		_, err := buildCustomData(fields, values, true)
		assert.Error(t, err, values)
	}

	data, err = buildCustomData(fields, map[string]string{}, false)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCheckFieldValue(t *testing.T) {
	tests := []struct {
		fieldType string
		value     string
		want      string
		ok        bool
	}{
		{models.FieldTypeNumber, "-2.5", "-2.5", true},
		{models.FieldTypeNumber, "12", "12", true},
		{models.FieldTypeNumber, "1,5", "", false},
		{models.FieldTypeBoolean, "TRUE", "true", true},
		{models.FieldTypeBoolean, "0", "false", true},
		{models.FieldTypeBoolean, "yes", "", false},
		{models.FieldTypeDate, "2024-02-29", "2024-02-29", true},
		{models.FieldTypeDate, "2024-02-29T10:00:00Z", "2024-02-29T10:00:00Z", true},
		{models.FieldTypeDate, "2023-02-29", "", false},
		{models.FieldTypeURL, "http://example.com/a?b=c", "http://example.com/a?b=c", true},
		{models.FieldTypeURL, "https://", "", false},
		{models.FieldTypeURL, "mailto:a@example.com", "", false},
		{models.FieldTypeText, strings.Repeat("a", maxCustomValueLength), strings.Repeat("a", maxCustomValueLength), true},
		{models.FieldTypeText, strings.Repeat("a", maxCustomValueLength+1), "", false},
	}
	for _, tt := range tests {
		field := &models.CustomField{FieldName: "f", FieldType: tt.fieldType}
		got, err := checkFieldValue(field, tt.value)
		if !tt.ok {
			assert.Error(t, err, "%s %q", tt.fieldType, tt.value)
			continue
		}
		require.NoError(t, err, "%s %q", tt.fieldType, tt.value)
		assert.Equal(t, tt.want, got)
	}

	_, err := checkFieldValue(&models.CustomField{FieldName: "f", FieldType: "colour"}, "red")
	assert.Error(t, err)
}

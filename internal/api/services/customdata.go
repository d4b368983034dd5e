package services

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
)

const maxCustomValueLength = 1000

// buildCustomData checks values, keyed by field id or field name, against the
// category's field definitions. With requireAll set, every required field must be present.
func buildCustomData(fields []models.CustomField, values map[string]string, requireAll bool) ([]models.ModelCustomData, error) {
	byKey := make(map[string]*models.CustomField, len(fields)*2)
	for i := range fields {
		byKey[fields[i].ID.String()] = &fields[i]
		byKey[fields[i].FieldName] = &fields[i]
	}

	chosen := make(map[*models.CustomField]string, len(values))
	for key, raw := range values {
		field, ok := byKey[key]
		if !ok {
			return nil, apperrors.InvalidArgument(fmt.Sprintf("Unknown custom field: %s", key))
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if _, dup := chosen[field]; dup {
			return nil, apperrors.InvalidArgument(fmt.Sprintf("Custom field %s supplied twice", field.FieldName))
		}
		normalized, err := checkFieldValue(field, value)
		if err != nil {
			return nil, err
		}
		chosen[field] = normalized
	}

	data := make([]models.ModelCustomData, 0, len(chosen))
	for i := range fields {
		field := &fields[i]
		value, ok := chosen[field]
		if !ok {
			if requireAll && field.IsRequired {
				return nil, apperrors.InvalidArgument(fmt.Sprintf("Custom field %s is required", field.FieldName))
			}
			continue
		}
		data = append(data, models.ModelCustomData{FieldID: field.ID, FieldValue: value})
	}
	return data, nil
}

// fieldRules maps each scalar field type to the validator tag its values must satisfy.
var fieldRules = map[string]struct {
	tag      string
	expected string
}{
	models.FieldTypeText:    {fmt.Sprintf("max=%d", maxCustomValueLength), fmt.Sprintf("at most %d characters", maxCustomValueLength)},
	models.FieldTypeNumber:  {"numeric", "a number"},
	models.FieldTypeBoolean: {"boolean", "true or false"},
	models.FieldTypeDate:    {"datetime=2006-01-02|datetime=2006-01-02T15:04:05Z07:00", "a date (YYYY-MM-DD)"},
	models.FieldTypeURL:     {"http_url", "an http(s) URL"},
}

func checkFieldValue(field *models.CustomField, value string) (string, error) {
	invalid := func(expected string) error {
		return apperrors.InvalidArgument(fmt.Sprintf("Custom field %s must be %s", field.FieldName, expected))
	}

	if field.FieldType == models.FieldTypeSelect {
		var options []string
		if len(field.FieldOptions) > 0 {
			if err := json.Unmarshal(field.FieldOptions, &options); err != nil {
				return "", apperrors.Wrap(apperrors.CodeInternal, "Invalid field options", err)
			}
		}
		if !slices.Contains(options, value) {
			return "", invalid("one of " + strings.Join(options, ", "))
		}
		return value, nil
	}

	rule, ok := fieldRules[field.FieldType]
	if !ok {
		return "", apperrors.New(apperrors.CodeInternal, "Unsupported field type "+field.FieldType)
	}
	if err := validate.Var(value, rule.tag); err != nil {
		return "", invalid(rule.expected)
	}
	if field.FieldType == models.FieldTypeBoolean {
		// Stored canonically; "1" and "TRUE" both become "true".
		b, _ := strconv.ParseBool(value)
		return strconv.FormatBool(b), nil
	}
	return value, nil
}

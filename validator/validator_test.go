package validator

import (
	"strings"
	"testing"

	"note-cache/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Note(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		note      models.Note
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid note",
			note:      models.Note{Key: "4b1e2f", Content: "hello", Tags: []string{"work", "ideas"}},
			wantError: false,
		},
		{
			name:      "Missing key",
			note:      models.Note{Content: "hello"},
			wantError: true,
			errorMsg:  "simperiumKey is required",
		},
		{
			name:      "Key with whitespace",
			note:      models.Note{Key: "bad key"},
			wantError: true,
			errorMsg:  "simperiumKey must be 1 to 256 characters without whitespace",
		},
		{
			name:      "Key too long",
			note:      models.Note{Key: strings.Repeat("k", MaxKeyLength+1)},
			wantError: true,
			errorMsg:  "simperiumKey must be 1 to 256 characters without whitespace",
		},
		{
			name:      "Tag with whitespace",
			note:      models.Note{Key: "abc", Tags: []string{"ok", "not ok"}},
			wantError: true,
			errorMsg:  "tags[1] must be 1 to 256 characters without whitespace",
		},
		{
			name:      "Negative position",
			note:      models.Note{Key: "abc", LastPosition: -1},
			wantError: true,
			errorMsg:  "lastPosition must be greater than or equal to 0",
		},
		{
			name:      "Invalid share URL",
			note:      models.Note{Key: "abc", ShareURL: "not a url"},
			wantError: true,
			errorMsg:  "shareURL must be a valid URL",
		},
		{
			name:      "Valid share URL",
			note:      models.Note{Key: "abc", ShareURL: "https://example.com/p/abc"},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.note)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErrs ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidator_Tag(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		tag       models.Tag
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid tag",
			tag:       models.Tag{Key: "work", Name: "Work", Index: 0},
			wantError: false,
		},
		{
			name:      "Missing name",
			tag:       models.Tag{Key: "work"},
			wantError: true,
			errorMsg:  "name is required",
		},
		{
			name:      "Negative index",
			tag:       models.Tag{Key: "work", Name: "work", Index: -2},
			wantError: true,
			errorMsg:  "tagIndex must be greater than or equal to 0",
		},
		{
			name:      "Name with newline",
			tag:       models.Tag{Key: "work", Name: "wo\nrk"},
			wantError: true,
			errorMsg:  "name must be 1 to 256 characters without whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.tag)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_MultipleErrors(t *testing.T) {
	v := New()

	err := v.Validate(&models.Tag{Index: -1})
	require.Error(t, err)

	validationErrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, validationErrs, 3)

	fields := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"simperiumKey", "name", "tagIndex"}, fields)
}

func TestValidator_NonStruct(t *testing.T) {
	v := New()

	err := v.Validate("not a struct")
	assert.Error(t, err)
	_, ok := err.(ValidationErrors)
	assert.False(t, ok)
}

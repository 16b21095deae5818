package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/store-service/store/internal/errs"
	"github.com/Astemirdum/store-service/store/internal/model"
)

func TestValidName(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name    string
		value   string
		wantErr string
	}{
		{
			name:  "plain letters",
			value: "Test",
		},
		{
			name:  "space at position past one",
			value: "Test gf",
		},
		{
			name:  "digits and space in the checked prefix",
			value: "12 monkeys",
		},
		{
			name:    "punctuation in the checked prefix",
			value:   "0- ",
			wantErr: "Value must contain only letters and",
		},
		{
			name:    "leading dash",
			value:   "-book",
			wantErr: "Value must contain only letters and",
		},
		{
			// only the first two characters are checked, the tail may
			// carry any characters at all.
			name:  "punctuation past the checked prefix",
			value: "Go, the book!",
		},
		{
			name:    "too short",
			value:   "a",
			wantErr: "Ensure this value has at least 2 characters.",
		},
		{
			name:    "too long",
			value:   strings.Repeat("a", 101),
			wantErr: "Ensure this value has at most 100 characters.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := model.ValidName("name", tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *errs.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, "name", vErr.Field)
			require.Equal(t, tt.wantErr, vErr.Message)
		})
	}
}

func TestValidPrice(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name    string
		value   float64
		wantErr string
	}{
		{
			name:  "small positive",
			value: 0.4,
		},
		{
			name:  "upper bound fits numeric(5,2)",
			value: 999.99,
		},
		{
			name:    "zero",
			value:   0,
			wantErr: "Value cannot be less than or equal to 0",
		},
		{
			name:    "negative",
			value:   -1.4,
			wantErr: "Value cannot be less than or equal to 0",
		},
		{
			name:    "too many digits",
			value:   1000,
			wantErr: "Ensure that there are no more than 5 digits in total.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := model.ValidPrice("price", tt.value)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var vErr *errs.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, "price", vErr.Field)
			require.Equal(t, tt.wantErr, vErr.Message)
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindUpstream, Message: "Google API request failed", Status: 500})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &Error{Kind: KindTransport, Message: "HTTP request failed", Err: cause}

	assert.Equal(t, "HTTP request failed: dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "error", KindUnknown.String())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrValidation))
	for _, err := range []error{ErrMissingConfiguration, ErrFixtureNotFound, ErrTransport, ErrUpstream, ErrInvalidPayload} {
		assert.False(t, IsClientError(err), err.Error())
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{"plain", "golang", "golang", ""},
		{"trimmed", "  golang \n", "golang", ""},
		{"empty", "", "", "required"},
		{"blank", " \t ", "", "required"},
		{"max length", strings.Repeat("a", MaxQueryLength), strings.Repeat("a", MaxQueryLength), ""},
		{"over max", strings.Repeat("a", MaxQueryLength+1), "", "greater than 512"},
		{"multibyte at max", strings.Repeat("č", MaxQueryLength), strings.Repeat("č", MaxQueryLength), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuery(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, IsClientError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"live", ModeLive, false},
		{"FIXTURE", ModeFixture, false},
		{" fixture ", ModeFixture, false},
		{"debug", ModeLive, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.in)), got.String())
		})
	}
	assert.Equal(t, ModeFixture, ModeFor(true))
	assert.Equal(t, ModeLive, ModeFor(false))
}

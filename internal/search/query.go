// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength is the longest accepted query, in characters.
const MaxQueryLength = 512

// ValidateQuery trims q and checks it is non-empty and at most
// MaxQueryLength characters. It returns the trimmed query.
func ValidateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", &Error{Kind: KindValidation, Message: "The q field is required."}
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return "", &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("The q field must not be greater than %d characters.", MaxQueryLength),
		}
	}
	return q, nil
}

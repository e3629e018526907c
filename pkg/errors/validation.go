package errors

import (
	"strings"
	"unicode"
)

// ValidateRoomID validates a caller-supplied room identifier.
// IDs are used as lookup keys in constraint parameters, so they must be
// printable and reasonably sized. Uniqueness is not enforced here; it is a
// precondition the planner assumes.
func ValidateRoomID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "room id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "room id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "room id contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It rejects empty paths, control characters, and null bytes. Relative and
// absolute paths are both allowed since the CLI writes wherever the user asks.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateConstraintType validates a constraint type string.
// Unknown types are tolerated by the validator (forward-compatible ignore),
// but the type itself must still be a well-formed token.
func ValidateConstraintType(t string) error {
	if t == "" {
		return New(ErrCodeInvalidConstraint, "constraint type cannot be empty")
	}
	if strings.ContainsAny(t, " \t\n") {
		return New(ErrCodeInvalidConstraint, "constraint type cannot contain whitespace: %q", t)
	}
	return nil
}

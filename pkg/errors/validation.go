package errors

import (
	"math"
	"strings"
	"unicode"
)

// Shade bounds shared by every surface that accepts a shade level.
const (
	MinShade = 1
	MaxShade = 5
)

// ValidateShade rejects shade levels outside 1..5.
func ValidateShade(shade int) error {
	if shade < MinShade || shade > MaxShade {
		return New(ErrCodeInvalidShade, "shade must be between %d and %d, got %d", MinShade, MaxShade, shade)
	}
	return nil
}

// ValidateGridSize checks that size is a positive multiple of unit and lies
// within [min, max]. A zero bound disables that side of the range check.
func ValidateGridSize(size, unit, min, max float64) error {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return New(ErrCodeInvalidSize, "size must be positive, got %v", size)
	}
	if unit > 0 && math.Mod(size, unit) != 0 {
		return New(ErrCodeInvalidSize, "size %v is not a multiple of the %v grid", size, unit)
	}
	if min > 0 && size < min {
		return New(ErrCodeInvalidSize, "size %v below minimum %v", size, min)
	}
	if max > 0 && size > max {
		return New(ErrCodeInvalidSize, "size %v above maximum %v", size, max)
	}
	return nil
}

// ValidateBoard checks board dimensions against the floor band.
//
// Validation rules:
//   - Width and height must be positive
//   - Floor band must be non-negative
//   - Floor band must leave room above it for at least one grid cell
func ValidateBoard(width, height, floor, unit float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidBoard, "board dimensions must be positive, got %vx%v", width, height)
	}
	if floor < 0 {
		return New(ErrCodeInvalidBoard, "floor band cannot be negative, got %v", floor)
	}
	if height-floor < unit {
		return New(ErrCodeInvalidBoard, "floor band %v leaves no room on a board of height %v", floor, height)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

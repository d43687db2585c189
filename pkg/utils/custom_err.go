package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
	ErrNotFound      = errors.New("not found")

	// mission generation
	ErrMissingCredentials  = errors.New("generation credentials not configured")
	ErrGenerationStatus    = errors.New("generation service returned non-success status")
	ErrEmptyGeneration     = errors.New("generation service returned no content")
	ErrNoJSONSpan          = errors.New("no JSON object found in generated text")
	ErrMalformedGeneration = errors.New("generated JSON could not be parsed")

	// routing
	ErrRoutingNotConfigured = errors.New("map provider token not configured")
	ErrAddressNotFound      = errors.New("address not found")
	ErrRouteTooLong         = errors.New("distance too long for a walking route")
	ErrNoRoute              = errors.New("no walking route found")

	// uploads
	ErrMissingFile             = errors.New("file missing")
	ErrNotAnImage              = errors.New("file is not an image")
	ErrFileTooLarge            = errors.New("file too large")
	ErrImageStoreNotConfigured = errors.New("image store not configured")
	ErrUploadFailed            = errors.New("image upload failed")

	// sessions
	ErrSessionNotFound  = errors.New("walk session not found")
	ErrNoLocation       = errors.New("location not available")
	ErrMissionNotFound  = errors.New("mission not found")
	ErrMissionCompleted = errors.New("mission already completed")
	ErrRequestInFlight  = errors.New("request already in flight")
)

// Which side of a route could not be resolved.
const (
	RouteStart = "start"
	RouteEnd   = "end"
)

// AddressNotFoundError names the unresolved endpoint.
type AddressNotFoundError struct {
	Which   string
	Address string
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("%s address %q not found", e.Which, e.Address)
}

func (e *AddressNotFoundError) Is(target error) bool {
	return target == ErrAddressNotFound
}

// UserMessage is the text shown to the walker.
func (e *AddressNotFoundError) UserMessage() string {
	if e.Which == RouteEnd {
		return fmt.Sprintf("ゴール地点「%s」の位置情報を取得できませんでした", e.Address)
	}
	return fmt.Sprintf("スタート地点「%s」の位置情報を取得できませんでした", e.Address)
}

// StatusError carries the HTTP status of a failed upstream call.
type StatusError struct {
	Kind       error
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %d", e.Kind, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.Kind }

// SizeLimitError reports the configured upload limit. It matches
// ErrFileTooLarge.
type SizeLimitError struct {
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%v: limit %d bytes", ErrFileTooLarge, e.Limit)
}

func (e *SizeLimitError) Unwrap() error { return ErrFileTooLarge }

// HumanSize renders a byte count as 10MB, 512KB or 100B.
func HumanSize(n int64) string {
	const (
		kib = 1024
		mib = 1024 * kib
	)
	switch {
	case n >= mib:
		return strconv.FormatFloat(math.Round(float64(n)/mib*10)/10, 'f', -1, 64) + "MB"
	case n >= kib:
		return strconv.FormatFloat(math.Round(float64(n)/kib*10)/10, 'f', -1, 64) + "KB"
	default:
		return strconv.FormatInt(n, 10) + "B"
	}
}

package errors

import (
	"bytes"
	"fmt"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// ErrInvalidOrder is returned for an order that is not well-formed (empty symbol, zero size, negative price).
	ErrInvalidOrder ErrorCode = "invalid_order"
	// ErrUnknownInstrument is returned when the symbol is not a tradable instrument.
	ErrUnknownInstrument ErrorCode = "unknown_instrument"
	// ErrDuplicateOrder is returned when a participant already has an open order for the symbol.
	ErrDuplicateOrder ErrorCode = "duplicate_order"
	// ErrInsufficientFunds is returned when the participant cannot pay for the requested volume.
	ErrInsufficientFunds ErrorCode = "insufficient_funds"
	// ErrUnheldInstrument is returned when selling an instrument the participant does not hold.
	ErrUnheldInstrument ErrorCode = "unheld_instrument"
	// ErrOversell is returned when selling more than the participant holds.
	ErrOversell ErrorCode = "oversell"
	// ErrUnknownParticipant is returned when an order names a participant that is not registered.
	ErrUnknownParticipant ErrorCode = "unknown_participant"

	// ErrNotificationFailed is recorded when a participant fails to apply a fill notification.
	ErrNotificationFailed ErrorCode = "notification_failed"
	// ErrPublishFailed is recorded when a clearing price could not be published.
	ErrPublishFailed ErrorCode = "publish_failed"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisHSetError represents an error when setting fields in a hash in Redis.
	RedisHSetError ErrorCode = "redis_hset_error"
	// RedisHGetError represents an error when getting a field from a hash in Redis.
	RedisHGetError ErrorCode = "redis_hget_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether at least one ErrorDetails was collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		if err.Object != nil {
			buff.WriteString(fmt.Sprintf("; object: %v", err.Object))
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// IsAllCodeEqual check if all ErrorDetails code is equal with given code
func (b *BaseError) IsAllCodeEqual(code ErrorCode) bool {
	if len(b.details) == 0 {
		return false
	}

	for _, d := range b.details {
		if d.Code != string(code) {
			return false
		}
	}
	return true
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code ErrorCode) bool {
	for _, d := range b.details {
		if d.Code == string(code) {
			return true
		}
	}
	return false
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"ursa-server/pkg/api"
)

// ErrInvalidPayload - данные команды не разобраны или не прошли проверку.
// Такие команды не попадают в реплей.
var ErrInvalidPayload = errors.New("invalid payload")

// TypedHandlerFunc работает с уже разобранной и проверенной структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - команда без данных (INIT, RETRY)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload превращает типизированный хендлер в HandlerFunc.
// Разбор строгий: неизвестные поля и пустое тело отклоняются.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := decodePayload[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T

	// 1. Распаковка JSON
	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, fmt.Errorf("%w: payload required", ErrInvalidPayload)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("%w: invalid payload format: %v", ErrInvalidPayload, err)
	}

	// 2. Проверка, если T умеет проверять себя
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: validation failed: %v", ErrInvalidPayload, err)
		}
	}
	return payload, nil
}

// WithEmptyPayload - обертка для команд без данных. Тело игнорируется.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

package usecase

import (
	"errors"
	"fmt"

	"screener/internal/feature/candles/domain/entity"
)

var (
	// ErrFetchFailed is returned when candles could not be obtained from the market data source.
	// Transport errors, upstream rejections and undecodable payloads are all reported as this error.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrEmptyResult is returned when the source answered but had no rows for the requested window.
	ErrEmptyResult = errors.New("no candles for the requested window")

	// ErrNormalization is returned when a row cannot be converted into a candle.
	ErrNormalization = errors.New("malformed candle row")

	// ErrInvalidTicker is returned when the ticker is empty after trimming.
	ErrInvalidTicker = errors.New("ticker is required")
)

// FetchError は1つの時間足の取得失敗を表します。errors.Is(err, ErrFetchFailed) が真になります。
type FetchError struct {
	Resolution entity.Resolution
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFetchFailed, e.Resolution, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// NormalizationError は Row 番目の行を変換できなかったことを表します。
type NormalizationError struct {
	Row int
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", ErrNormalization, e.Row, e.Err)
}

func (e *NormalizationError) Unwrap() []error {
	return []error{ErrNormalization, e.Err}
}

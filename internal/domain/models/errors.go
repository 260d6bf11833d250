package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientData: too few observations for the requested statistic.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrEmptyAlignment: no overlapping dates across the portfolio tickers.
	ErrEmptyAlignment = errors.New("no overlapping dates across tickers")

	// ErrWeightMismatch: weight vector does not line up with the return table.
	ErrWeightMismatch = errors.New("weights do not match portfolio tickers")
)

// TickerNotFoundError reports every symbol in a request that had no
// history. Fetch failures are collected across the whole portfolio
// before this is returned, so Symbols is the complete batch.
type TickerNotFoundError struct {
	Symbols []string
}

func (e *TickerNotFoundError) Error() string {
	return fmt.Sprintf("no data found for tickers: %s", strings.Join(e.Symbols, ", "))
}

// ProviderError wraps a transport or upstream failure from the market
// data provider, distinct from a symbol simply not existing.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failure for %s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

package options

import "go.uber.org/zap"

var DefaultOptions = CorrectorOptions{
	WindowSize:       3,
	FallbackFactor:   50,
	PenaltyLow:       0,
	PenaltyHigh:      500,
	PenaltyTolerance: 0.2,
	TargetBrokenRate: 0.007,
	HoldoutFraction:  0.2,
	HoldoutCap:       5000,
}

type CorrectorOptions struct {
	WindowSize       int     // context tokens on each side of the focus position
	FallbackFactor   float64 // multiplier applied to index-recovered candidates
	PenaltyLow       float64
	PenaltyHigh      float64
	PenaltyTolerance float64
	TargetBrokenRate float64 // share of clean tokens the tuned corrector may change
	HoldoutFraction  float64
	HoldoutCap       int
	Logger           *zap.Logger
}

type Options interface {
	Apply(options *CorrectorOptions)
}

type FuncConfig struct {
	ops func(options *CorrectorOptions)
}

func (w FuncConfig) Apply(conf *CorrectorOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CorrectorOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithWindowSize(windowSize int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.WindowSize = windowSize
	})
}

func WithFallbackFactor(factor float64) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.FallbackFactor = factor
	})
}

func WithPenaltyBounds(low, high float64) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.PenaltyLow = low
		options.PenaltyHigh = high
	})
}

func WithPenaltyTolerance(tolerance float64) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.PenaltyTolerance = tolerance
	})
}

func WithTargetBrokenRate(target float64) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.TargetBrokenRate = target
	})
}

func WithHoldout(fraction float64, limit int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.HoldoutFraction = fraction
		options.HoldoutCap = limit
	})
}

func WithLogger(logger *zap.Logger) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.Logger = logger
	})
}

// WithConservativeTuning tightens the target change rate for corpora where a
// spurious correction is costlier than a missed one.
func WithConservativeTuning() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.TargetBrokenRate = 0.003
	})
}

// WithLenientTuning allows a higher change rate for very noisy input.
func WithLenientTuning() Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		options.TargetBrokenRate = 0.02
	})
}

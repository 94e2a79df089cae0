// SPDX-License-Identifier: EPL-2.0

package msupcm

import "errors"

var (
	// ErrInvalidFadeTime indicates a negative, NaN or infinite fade time
	ErrInvalidFadeTime = errors.New("invalid fade time, must be a finite number of seconds >= 0")

	// ErrFadeTimeTooLong indicates a fade time above MaxFadeTime
	ErrFadeTimeTooLong = errors.New("fade time is ridiculously long")

	// ErrInvalidFadeSamples indicates a negative or oversized fade length in frames
	ErrInvalidFadeSamples = errors.New("fade length in frames is out of range")
)

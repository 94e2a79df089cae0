// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
	ErrNoProgress        = errors.New("source returned no samples repeatedly")
	ErrNoChannels        = errors.New("source reports no channels")
)

// SPDX-License-Identifier: EPL-2.0

package msu

import "errors"

var (
	// ErrShortHeader indicates the input ended before the 8 byte header
	ErrShortHeader = errors.New("MSU-1 header is truncated")

	// ErrNotMSUFile indicates the magic bytes are not "MSU1"
	ErrNotMSUFile = errors.New("not an MSU-1 PCM file")

	// ErrCorruptPayload indicates the payload is not a whole number of frames
	ErrCorruptPayload = errors.New("payload length is not a multiple of 4, file is corrupted or has extra data")

	// ErrLoopOutOfRange indicates the loop point is past the last frame
	ErrLoopOutOfRange = errors.New("loop point is beyond the end of the payload")
)

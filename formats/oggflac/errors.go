// SPDX-License-Identifier: EPL-2.0

package oggflac

import "errors"

var (
	ErrFormatChanged  = errors.New("oggflac: sample rate or channel count changed between links")
	ErrSeekOutOfRange = errors.New("oggflac: seek target beyond end of stream")
	ErrNotSeekable    = errors.New("oggflac: input is not seekable")
)

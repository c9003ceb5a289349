// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrUnsupportedBitDepth = errors.New("wav: unsupported bit depth")
	ErrNoChannels          = errors.New("wav: source has no channels")
)

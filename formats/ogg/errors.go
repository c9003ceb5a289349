// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	ErrNotOgg       = errors.New("ogg: no Ogg page found")
	ErrUnknownCodec = errors.New("ogg: unsupported codec")
)

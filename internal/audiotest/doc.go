// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds Ogg FLAC fixtures and misbehaving transports for
// tests. It deliberately carries its own page and frame checksums so that
// fixtures do not depend on the code under test.
package audiotest

// SPDX-License-Identifier: EPL-2.0

package cmd

const (
	exitFailure = 1
	exitUsage   = 2
)

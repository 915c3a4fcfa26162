//go:build !lirsim_debug

package lirs

const debugAsserts = false

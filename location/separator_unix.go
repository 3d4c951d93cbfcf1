//go:build !windows

package location

const pathSeparator = '/'

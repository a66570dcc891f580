//go:build debug

package crossing

const debugInvariants = true

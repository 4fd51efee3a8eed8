//go:build !linux && !darwin

package capture

// SystemProvider returns the platform camera provider. Platforms without
// a native capture backend fall back to the synthetic test pattern.
func SystemProvider() Provider {
	return NewSyntheticProvider()
}

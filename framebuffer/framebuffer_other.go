//go:build !linux

package framebuffer

// Open is not supported on this operating system.
func Open(_ string, _ Config) (*Mirror, error) {
	return nil, ErrNotSupported
}

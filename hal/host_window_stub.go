//go:build !cgo && !js

package hal

func RunWindow(_ WindowConfig, _ NewApp) error {
	return ErrWindowUnavailable
}

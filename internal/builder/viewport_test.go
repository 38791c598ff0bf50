package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceWidths(t *testing.T) {
	assert.Equal(t, float64(1280), DeviceDesktop.Width())
	assert.Equal(t, float64(768), DeviceTablet.Width())
	assert.Equal(t, float64(390), DeviceMobile.Width())

	// Unknown devices fall back to desktop.
	assert.Equal(t, float64(1280), Device("watch").Width())
	assert.False(t, Device("watch").Valid())
}

func TestFitScaleNeverUpscales(t *testing.T) {
	assert.Equal(t, 1.0, FitScale(DeviceMobile, 800))
	assert.Equal(t, 1.0, FitScale(DeviceDesktop, 0))
	assert.Equal(t, 0.5, FitScale(DeviceDesktop, 640))
	assert.InDelta(t, 0.6, FitScale(DeviceTablet, 460.8), 1e-9)
}

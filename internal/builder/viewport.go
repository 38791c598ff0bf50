package builder

// Device is a responsive-preview breakpoint. The canvas renders inside a
// fixed-width virtual viewport for the chosen device and scales it down to
// fit the panel.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

var deviceWidths = map[Device]float64{
	DeviceDesktop: 1280,
	DeviceTablet:  768,
	DeviceMobile:  390,
}

// Width returns the virtual viewport width in pixels for a device.
// Unknown devices fall back to desktop.
func (d Device) Width() float64 {
	if w, ok := deviceWidths[d]; ok {
		return w
	}
	return deviceWidths[DeviceDesktop]
}

// Valid reports whether d names a known breakpoint.
func (d Device) Valid() bool {
	_, ok := deviceWidths[d]
	return ok
}

// FitScale computes the canvas scale factor for a panel of the given width.
// The viewport is only ever scaled down; content is never upscaled past 1.0.
// Recomputed by the caller on every container resize.
func FitScale(d Device, panelWidth float64) float64 {
	w := d.Width()
	if panelWidth <= 0 || panelWidth >= w {
		return 1.0
	}
	return panelWidth / w
}

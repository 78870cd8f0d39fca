// Package device holds the HID report state of the virtual keyboard and
// mouse that remapped events are sent through.
package device

// ReportBuilder is implemented by input states that encode to a HID report.
type ReportBuilder interface {
	// BuildReport encodes the input state into the device's input report.
	BuildReport() []byte
}

package matcher

import (
	"fmt"
	"strings"
)

// InvalidRequestError reports a malformed ResourceRequest. The caller has to fix
// its input, retrying the same request always fails the same way.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid resource request: " + e.Reason
}

// UnsupportedAcceleratorError is returned when the best-fit machine does not
// offer the requested accelerator type. Supported lists what the machine offers.
type UnsupportedAcceleratorError struct {
	Machine   string
	Requested string
	Supported []string
}

func (e *UnsupportedAcceleratorError) Error() string {
	return fmt.Sprintf("accelerator %s is not available on machine %s, supported: [%s]",
		e.Requested, e.Machine, strings.Join(e.Supported, ", "))
}

type CatalogError struct {
	Reason string
}

func (e *CatalogError) Error() string {
	return "invalid machine catalog: " + e.Reason
}

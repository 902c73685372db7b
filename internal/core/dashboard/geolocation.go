package dashboard

import (
	"weatherdash.app/pkg/errors"
)

// Position error codes as reported by the client's geolocation API.
// GeolocationCodeUnsupported is ours: the client has no geolocation support at all.
const (
	GeolocationCodeUnsupported         = 0
	GeolocationCodePermissionDenied    = 1
	GeolocationCodePositionUnavailable = 2
	GeolocationCodeTimeout             = 3
)

// GeolocationErrorFromCode maps a client-side position error to its user-facing error
func GeolocationErrorFromCode(code int) error {
	switch code {
	case GeolocationCodeUnsupported:
		return errors.NewGeolocationError(errors.ErrorTypeGeolocationUnsupported, errors.MessageGeolocationUnsupported)
	case GeolocationCodePermissionDenied:
		return errors.NewGeolocationError(errors.ErrorTypeGeolocationDenied, errors.MessageGeolocationDenied)
	case GeolocationCodePositionUnavailable:
		return errors.NewGeolocationError(errors.ErrorTypeGeolocationUnavailable, errors.MessageGeolocationUnavailable)
	case GeolocationCodeTimeout:
		return errors.NewGeolocationError(errors.ErrorTypeGeolocationTimeout, errors.MessageGeolocationTimeout)
	default:
		return errors.NewGeolocationError(errors.ErrorTypeGeolocationUnavailable, errors.MessageGeolocationUnknown)
	}
}

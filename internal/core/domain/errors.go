package domain

import "errors"

var (
	// ErrUnsupportedKind is returned when a manifest is neither a Service nor a UDPRoute.
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrProtocolKindMismatch is returned when UDPRoute generation is requested without UDP.
	ErrProtocolKindMismatch = errors.New("protocol does not match kind")

	ErrInvalidProtocol   = errors.New("invalid protocol")
	ErrInvalidPortRange  = errors.New("invalid port range")
	ErrInvalidChunkSize  = errors.New("invalid chunk size")
	ErrEmptyIdentifier   = errors.New("identifier must not be empty")
	ErrMalformedManifest = errors.New("malformed manifest")
)

// Package logfields defines the structured logging field names shared across packages.
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	Path       = "path"
	Kind       = "kind"
	Identifier = "identifier"
	Namespace  = "namespace"

	// PortRange is the inclusive range being filled, formatted as start-end
	PortRange = "portRange"
	Port      = "port"
	Protocol  = "protocol"
	PortName  = "portName"

	Added   = "added"
	Skipped = "skipped"

	ChunkSize = "chunkSize"
	Chunks    = "chunks"
	Gateway   = "gateway"
)

package ports

import "k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

// ManifestCodec converts between YAML bytes and generic Kubernetes objects.
type ManifestCodec interface {
	// Decode parses exactly one YAML document whose top level is a mapping.
	Decode(data []byte) (*unstructured.Unstructured, error)
	// Encode renders the objects as a YAML stream, one document per object.
	Encode(objects ...*unstructured.Unstructured) ([]byte, error)
}

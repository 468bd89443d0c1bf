package testutil

import (
	"github.com/stretchr/testify/mock"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// MockManifestCodec provides a testify mock for ports.ManifestCodec
type MockManifestCodec struct {
	mock.Mock
}

func (m *MockManifestCodec) Decode(data []byte) (*unstructured.Unstructured, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*unstructured.Unstructured), args.Error(1)
}

func (m *MockManifestCodec) Encode(objects ...*unstructured.Unstructured) ([]byte, error) {
	args := m.Called(objects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

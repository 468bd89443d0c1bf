package manifest_codec

import (
	"testing"

	"portranger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestYamlCodec_DecodeKeepsIntegersAsInt64(t *testing.T) {
	sut := ProvideYamlCodec()

	manifest, err := sut.Decode([]byte(`apiVersion: v1
kind: Service
metadata:
  name: api
  namespace: ns1
spec:
  ports:
  - name: http
    port: 80
    protocol: TCP
    targetPort: 8080
`))

	require.NoError(t, err)
	assert.Equal(t, "Service", manifest.GetKind())
	assert.Equal(t, "ns1", manifest.GetNamespace())
	ports, found, err := unstructured.NestedSlice(manifest.Object, "spec", "ports")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, ports, 1)
	port := ports[0].(map[string]interface{})
	assert.Equal(t, int64(80), port["port"])
	assert.Equal(t, int64(8080), port["targetPort"])
}

func TestYamlCodec_DecodeIgnoresEmptyDocuments(t *testing.T) {
	sut := ProvideYamlCodec()

	manifest, err := sut.Decode([]byte("---\n---\nkind: UDPRoute\nmetadata:\n  name: game\n---\n"))

	require.NoError(t, err)
	assert.Equal(t, "UDPRoute", manifest.GetKind())
	assert.Equal(t, "game", manifest.GetName())
}

func TestYamlCodec_DecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"only comments", "# nothing here\n"},
		{"multiple documents", "kind: Service\n---\nkind: Service\n"},
		{"sequence at top level", "- kind: Service\n"},
		{"scalar at top level", "Service\n"},
		{"invalid syntax", "kind: [Service\n"},
	}

	sut := ProvideYamlCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sut.Decode([]byte(tt.input))
			assert.ErrorIs(t, err, domain.ErrMalformedManifest)
		})
	}
}

func TestYamlCodec_EncodeSortsKeysAndSeparatesDocuments(t *testing.T) {
	sut := ProvideYamlCodec()
	first := &unstructured.Unstructured{Object: map[string]interface{}{
		"kind":       "UDPRoute",
		"apiVersion": "gateway.networking.k8s.io/v1alpha2",
		"metadata":   map[string]interface{}{"name": "game-udp-route-1"},
	}}
	second := &unstructured.Unstructured{Object: map[string]interface{}{
		"kind":       "UDPRoute",
		"apiVersion": "gateway.networking.k8s.io/v1alpha2",
		"metadata":   map[string]interface{}{"name": "game-udp-route-2"},
	}}

	out, err := sut.Encode(first, second)

	require.NoError(t, err)
	assert.Equal(t, `apiVersion: gateway.networking.k8s.io/v1alpha2
kind: UDPRoute
metadata:
  name: game-udp-route-1
---
apiVersion: gateway.networking.k8s.io/v1alpha2
kind: UDPRoute
metadata:
  name: game-udp-route-2
`, string(out))
}

func TestYamlCodec_EncodeWithoutObjectsIsEmpty(t *testing.T) {
	out, err := ProvideYamlCodec().Encode()

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestYamlCodec_RoundTripPreservesUnknownFields(t *testing.T) {
	sut := ProvideYamlCodec()
	input := `apiVersion: v1
kind: Service
metadata:
  annotations:
    example.com/owner: games
  name: api
spec:
  selector:
    app: api
  type: LoadBalancer
`

	manifest, err := sut.Decode([]byte(input))
	require.NoError(t, err)
	out, err := sut.Encode(manifest)

	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

package core

import (
	"testing"

	"portranger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

var tcpAndUDP = []corev1.Protocol{corev1.ProtocolTCP, corev1.ProtocolUDP}

func newServiceManifest(servicePorts ...interface{}) *unstructured.Unstructured {
	manifest := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Service",
		"metadata":   map[string]interface{}{"name": "api"},
		"spec": map[string]interface{}{
			"selector": map[string]interface{}{"app": "api"},
		},
	}}
	if servicePorts != nil {
		manifest.Object["spec"].(map[string]interface{})["ports"] = servicePorts
	}
	return manifest
}

func servicePortsOf(t *testing.T, manifest *unstructured.Unstructured) []map[string]interface{} {
	t.Helper()
	servicePorts, found, err := unstructured.NestedSlice(manifest.Object, "spec", "ports")
	require.NoError(t, err)
	require.True(t, found)
	result := make([]map[string]interface{}, 0, len(servicePorts))
	for _, entry := range servicePorts {
		result = append(result, entry.(map[string]interface{}))
	}
	return result
}

func portEntry(protocol string, port int64, name string) map[string]interface{} {
	return map[string]interface{}{
		"protocol":   protocol,
		"port":       port,
		"targetPort": port,
		"name":       name,
	}
}

func TestServicePortExpander_FillsEmptyServiceWithBothProtocols(t *testing.T) {
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(newServiceManifest(), "api", domain.PortRange{Start: 8000, End: 8002}, tcpAndUDP)

	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		portEntry("TCP", 8000, "api-tcp-1"),
		portEntry("UDP", 8000, "api-udp-2"),
		portEntry("TCP", 8001, "api-tcp-3"),
		portEntry("UDP", 8001, "api-udp-4"),
		portEntry("TCP", 8002, "api-tcp-5"),
		portEntry("UDP", 8002, "api-udp-6"),
	}, servicePortsOf(t, result.Manifest))
	assert.Len(t, result.Added, 6)
	assert.Zero(t, result.Skipped)
}

func TestServicePortExpander_KeepsExistingEntriesAndSkipsTheirIndex(t *testing.T) {
	existing := map[string]interface{}{
		"name":       "legacy",
		"port":       int64(8001),
		"protocol":   "UDP",
		"targetPort": "game",
		"nodePort":   int64(30001),
	}
	manifest := newServiceManifest(existing)
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "api", domain.PortRange{Start: 8000, End: 8002}, tcpAndUDP)

	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		existing,
		portEntry("TCP", 8000, "api-tcp-1"),
		portEntry("UDP", 8000, "api-udp-2"),
		portEntry("TCP", 8001, "api-tcp-3"),
		portEntry("TCP", 8002, "api-tcp-4"),
		portEntry("UDP", 8002, "api-udp-5"),
	}, servicePortsOf(t, result.Manifest))
	assert.Equal(t, 1, result.Skipped)
}

func TestServicePortExpander_SecondRunAddsNothing(t *testing.T) {
	sut := ProvideServicePortExpander()
	portRange := domain.PortRange{Start: 49152, End: 49200}

	first, err := sut.Expand(newServiceManifest(), "game", portRange, tcpAndUDP)
	require.NoError(t, err)
	before := servicePortsOf(t, first.Manifest)

	second, err := sut.Expand(first.Manifest, "game", portRange, tcpAndUDP)

	require.NoError(t, err)
	assert.Empty(t, second.Added)
	assert.Equal(t, 2*portRange.Len(), second.Skipped)
	assert.Equal(t, before, servicePortsOf(t, second.Manifest))
}

func TestServicePortExpander_EveryPairAppearsExactlyOnce(t *testing.T) {
	manifest := newServiceManifest(
		portEntry("TCP", 7001, "a"),
		portEntry("UDP", 7003, "b"),
		portEntry("TCP", 9999, "outside"),
	)
	portRange := domain.PortRange{Start: 7000, End: 7010}
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "svc", portRange, tcpAndUDP)
	require.NoError(t, err)

	seen := map[servicePortKey]int{}
	for _, entry := range servicePortsOf(t, result.Manifest) {
		key, err := servicePortKeyOf(entry)
		require.NoError(t, err)
		seen[key]++
	}
	for _, port := range portRange.Ports() {
		for _, protocol := range tcpAndUDP {
			assert.Equal(t, 1, seen[servicePortKey{port: int64(port), protocol: protocol}], "%d/%s", port, protocol)
		}
	}
	assert.Equal(t, 1, seen[servicePortKey{port: 9999, protocol: corev1.ProtocolTCP}])
	for i, entry := range result.Added {
		assert.Equal(t, domain.PortEntryName("svc", entry.Protocol, i+1), entry.Name)
	}
}

func TestServicePortExpander_SingleProtocol(t *testing.T) {
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(newServiceManifest(), "dns", domain.PortRange{Start: 53, End: 54}, []corev1.Protocol{corev1.ProtocolUDP})

	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{
		portEntry("UDP", 53, "dns-udp-1"),
		portEntry("UDP", 54, "dns-udp-2"),
	}, servicePortsOf(t, result.Manifest))
}

func TestServicePortExpander_MissingProtocolCountsAsTCP(t *testing.T) {
	manifest := newServiceManifest(map[string]interface{}{"name": "http", "port": int64(80)})
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "web", domain.PortRange{Start: 80, End: 80}, tcpAndUDP)

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, corev1.ProtocolUDP, result.Added[0].Protocol)
	assert.Equal(t, "web-udp-1", result.Added[0].Name)
}

func TestServicePortExpander_ToleratesMissingSpec(t *testing.T) {
	manifest := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Service",
	}}
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "api", domain.PortRange{Start: 1, End: 1}, []corev1.Protocol{corev1.ProtocolTCP})

	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{portEntry("TCP", 1, "api-tcp-1")}, servicePortsOf(t, result.Manifest))
}

func TestServicePortExpander_ToleratesNullPorts(t *testing.T) {
	manifest := newServiceManifest()
	manifest.Object["spec"].(map[string]interface{})["ports"] = nil
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "api", domain.PortRange{Start: 10, End: 10}, []corev1.Protocol{corev1.ProtocolTCP})

	require.NoError(t, err)
	assert.Len(t, servicePortsOf(t, result.Manifest), 1)
}

func TestServicePortExpander_EmptyRangeLeavesPortsUnchanged(t *testing.T) {
	manifest := newServiceManifest(portEntry("TCP", 80, "http"))
	sut := ProvideServicePortExpander()

	result, err := sut.Expand(manifest, "api", domain.PortRange{Start: 9000, End: 8000}, tcpAndUDP)

	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Equal(t, []map[string]interface{}{portEntry("TCP", 80, "http")}, servicePortsOf(t, result.Manifest))
}

func TestServicePortExpander_RejectsMalformedManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest *unstructured.Unstructured
	}{
		{
			name: "spec is a scalar",
			manifest: &unstructured.Unstructured{Object: map[string]interface{}{
				"kind": "Service",
				"spec": "ports",
			}},
		},
		{
			name: "ports is a mapping",
			manifest: &unstructured.Unstructured{Object: map[string]interface{}{
				"kind": "Service",
				"spec": map[string]interface{}{"ports": map[string]interface{}{"port": int64(80)}},
			}},
		},
		{
			name:     "entry without port",
			manifest: newServiceManifest(map[string]interface{}{"name": "http", "protocol": "TCP"}),
		},
		{
			name:     "port is a string",
			manifest: newServiceManifest(map[string]interface{}{"port": "80", "protocol": "TCP"}),
		},
		{
			name:     "entry is a scalar",
			manifest: newServiceManifest("80/TCP"),
		},
	}

	sut := ProvideServicePortExpander()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sut.Expand(tt.manifest, "api", domain.PortRange{Start: 80, End: 81}, tcpAndUDP)
			assert.ErrorIs(t, err, domain.ErrMalformedManifest)
		})
	}
}

func TestServicePortExpander_RejectsEmptyIdentifierAndProtocols(t *testing.T) {
	sut := ProvideServicePortExpander()
	portRange := domain.PortRange{Start: 80, End: 81}

	_, err := sut.Expand(newServiceManifest(), "", portRange, tcpAndUDP)
	assert.ErrorIs(t, err, domain.ErrEmptyIdentifier)

	_, err = sut.Expand(newServiceManifest(), "api", portRange, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProtocol)
}

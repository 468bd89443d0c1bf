package domain

import (
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

const (
	KindService  = "Service"
	KindUDPRoute = "UDPRoute"

	DefaultNamespace          = "default"
	DefaultGatewayName        = "envoy-gateway"
	DefaultUDPRouteAPIVersion = "gateway.networking.k8s.io/v1alpha2"
)

// PortEntry is one item of a Service's spec.ports.
type PortEntry struct {
	Protocol   corev1.Protocol `json:"protocol"`
	Port       int32           `json:"port"`
	TargetPort int32           `json:"targetPort"`
	Name       string          `json:"name"`
}

// BackendRef points a UDPRoute rule at a Service port.
type BackendRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Port      int32  `json:"port"`
	Kind      string `json:"kind"`
}

// ParentRef identifies the Gateway a UDPRoute attaches to.
type ParentRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// PortEntryName builds "{identifier}-{protocol}-{index}" with the protocol lowercased.
func PortEntryName(identifier string, protocol corev1.Protocol, index int) string {
	return fmt.Sprintf("%s-%s-%d", identifier, strings.ToLower(string(protocol)), index)
}

func UDPRouteName(identifier string, chunkIndex int) string {
	return fmt.Sprintf("%s-udp-route-%d", identifier, chunkIndex)
}

func BackendServiceName(identifier string) string {
	return identifier + "-service"
}

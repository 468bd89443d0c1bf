package core

import (
	"fmt"

	"portranger/internal/core/domain"
	"portranger/internal/logging"
	"portranger/internal/logging/logfields"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

var generatorLog = logging.DefaultLogger.WithField(logfields.LogSubsys, "udp-route-generator")

// UDPRouteOptions controls the parts of a generated UDPRoute that do not
// come from the input manifest.
type UDPRouteOptions struct {
	APIVersion string
	// Gateway is the parent reference of every route. An empty namespace
	// resolves to the namespace of the route.
	Gateway domain.ParentRef
}

// DefaultUDPRouteOptions attaches routes to envoy-gateway in the route's own namespace.
func DefaultUDPRouteOptions() UDPRouteOptions {
	return UDPRouteOptions{
		APIVersion: domain.DefaultUDPRouteAPIVersion,
		Gateway:    domain.ParentRef{Name: domain.DefaultGatewayName},
	}
}

// UDPRouteGenerator builds fresh UDPRoute documents for a port range.
// This is pure business logic with no I/O operations.
type UDPRouteGenerator struct{}

func ProvideUDPRouteGenerator() *UDPRouteGenerator {
	return &UDPRouteGenerator{}
}

// Generate returns one UDPRoute per chunk of at most chunkSize ports, in
// chunk order. A chunkSize of zero puts the whole range into one route. The
// routes live in the namespace of manifest, or "default" when it has none.
func (g *UDPRouteGenerator) Generate(
	manifest *unstructured.Unstructured,
	identifier string,
	portRange domain.PortRange,
	chunkSize int,
	options UDPRouteOptions,
) ([]*unstructured.Unstructured, error) {
	if identifier == "" {
		return nil, domain.ErrEmptyIdentifier
	}

	chunks, err := portRange.Chunks(chunkSize)
	if err != nil {
		return nil, err
	}

	namespace := manifest.GetNamespace()
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}

	apiVersion := options.APIVersion
	if apiVersion == "" {
		apiVersion = domain.DefaultUDPRouteAPIVersion
	}
	parentRef := options.Gateway
	if parentRef.Name == "" {
		parentRef.Name = domain.DefaultGatewayName
	}
	if parentRef.Namespace == "" {
		parentRef.Namespace = namespace
	}
	parent, err := runtime.DefaultUnstructuredConverter.ToUnstructured(&parentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to convert parent reference: %w", err)
	}

	routes := make([]*unstructured.Unstructured, 0, len(chunks))
	for i, chunk := range chunks {
		backendRefs := make([]interface{}, 0, len(chunk))
		for _, port := range chunk {
			backendRef := domain.BackendRef{
				Name:      domain.BackendServiceName(identifier),
				Namespace: namespace,
				Port:      port,
				Kind:      domain.KindService,
			}
			object, err := runtime.DefaultUnstructuredConverter.ToUnstructured(&backendRef)
			if err != nil {
				return nil, fmt.Errorf("failed to convert backend reference for port %d: %w", port, err)
			}
			backendRefs = append(backendRefs, object)
		}

		route := &unstructured.Unstructured{Object: map[string]interface{}{}}
		route.SetAPIVersion(apiVersion)
		route.SetKind(domain.KindUDPRoute)
		route.SetName(domain.UDPRouteName(identifier, i+1))
		route.SetNamespace(namespace)

		if err := unstructured.SetNestedSlice(route.Object, []interface{}{parent}, "spec", "parentRefs"); err != nil {
			return nil, fmt.Errorf("failed to set parentRefs: %w", err)
		}
		rules := []interface{}{
			map[string]interface{}{"backendRefs": backendRefs},
		}
		if err := unstructured.SetNestedSlice(route.Object, rules, "spec", "rules"); err != nil {
			return nil, fmt.Errorf("failed to set rules: %w", err)
		}

		routes = append(routes, route)
	}

	generatorLog.WithFields(logrus.Fields{
		logfields.Identifier: identifier,
		logfields.Namespace:  namespace,
		logfields.PortRange:  portRange.String(),
		logfields.ChunkSize:  chunkSize,
		logfields.Chunks:     len(routes),
		logfields.Gateway:    parentRef.Namespace + "/" + parentRef.Name,
	}).Debug("Generated UDP routes")

	return routes, nil
}

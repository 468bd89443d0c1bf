package core

import (
	"fmt"
	"strings"

	"portranger/internal/core/domain"
	"portranger/internal/logging"
	"portranger/internal/logging/logfields"

	"github.com/sirupsen/logrus"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation"
)

var expanderLog = logging.DefaultLogger.WithField(logfields.LogSubsys, "service-port-expander")

// servicePortKey is the uniqueness key of a Service port entry.
type servicePortKey struct {
	port     int64
	protocol corev1.Protocol
}

// ServicePortExpansion is the outcome of filling a port range into a Service.
type ServicePortExpansion struct {
	Manifest *unstructured.Unstructured
	Added    []domain.PortEntry
	Skipped  int
}

// ServicePortExpander appends missing (port, protocol) pairs to spec.ports.
// This is pure business logic with no I/O operations.
type ServicePortExpander struct{}

func ProvideServicePortExpander() *ServicePortExpander {
	return &ServicePortExpander{}
}

// Expand appends an entry for every (port, protocol) pair of the range that
// spec.ports does not already hold. Existing entries keep their position and
// content. New entries are named {identifier}-{protocol}-{index}, where index
// starts at 1 and only advances when an entry is actually added.
func (e *ServicePortExpander) Expand(
	manifest *unstructured.Unstructured,
	identifier string,
	portRange domain.PortRange,
	protocols []corev1.Protocol,
) (*ServicePortExpansion, error) {
	if identifier == "" {
		return nil, domain.ErrEmptyIdentifier
	}
	if len(protocols) == 0 {
		return nil, fmt.Errorf("%w: no protocol selected", domain.ErrInvalidProtocol)
	}

	servicePorts, err := existingServicePorts(manifest.Object)
	if err != nil {
		return nil, err
	}

	existing := make(map[servicePortKey]struct{}, len(servicePorts))
	for i, entry := range servicePorts {
		key, err := servicePortKeyOf(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: spec.ports[%d]: %v", domain.ErrMalformedManifest, i, err)
		}
		existing[key] = struct{}{}
	}

	result := &ServicePortExpansion{Manifest: manifest}
	index := 1
	for _, port := range portRange.Ports() {
		for _, protocol := range protocols {
			key := servicePortKey{port: int64(port), protocol: protocol}
			if _, ok := existing[key]; ok {
				result.Skipped++
				continue
			}

			entry := domain.PortEntry{
				Protocol:   protocol,
				Port:       port,
				TargetPort: port,
				Name:       domain.PortEntryName(identifier, protocol, index),
			}
			object, err := runtime.DefaultUnstructuredConverter.ToUnstructured(&entry)
			if err != nil {
				return nil, fmt.Errorf("failed to convert port entry %s: %w", entry.Name, err)
			}
			warnOnInvalidPortName(entry)

			servicePorts = append(servicePorts, object)
			existing[key] = struct{}{}
			result.Added = append(result.Added, entry)
			index++
		}
	}

	if err := unstructured.SetNestedSlice(manifest.Object, servicePorts, "spec", "ports"); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedManifest, err)
	}

	expanderLog.WithFields(logrus.Fields{
		logfields.Identifier: identifier,
		logfields.PortRange:  portRange.String(),
		logfields.Protocol:   joinProtocols(protocols),
		logfields.Added:      len(result.Added),
		logfields.Skipped:    result.Skipped,
	}).Debug("Expanded service ports")

	return result, nil
}

// existingServicePorts returns spec.ports, treating an absent or null list as empty.
func existingServicePorts(object map[string]interface{}) ([]interface{}, error) {
	value, found, err := unstructured.NestedFieldNoCopy(object, "spec", "ports")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedManifest, err)
	}
	if !found || value == nil {
		return []interface{}{}, nil
	}
	servicePorts, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: spec.ports is of type %T, expected a sequence", domain.ErrMalformedManifest, value)
	}
	return servicePorts, nil
}

// servicePortKeyOf reads the uniqueness key of an existing entry. A missing
// protocol means TCP, as it does for the API server.
func servicePortKeyOf(entry interface{}) (servicePortKey, error) {
	fields, ok := entry.(map[string]interface{})
	if !ok {
		return servicePortKey{}, fmt.Errorf("entry is of type %T, expected a mapping", entry)
	}

	port, found, err := unstructured.NestedInt64(fields, "port")
	if err != nil {
		return servicePortKey{}, err
	}
	if !found {
		return servicePortKey{}, fmt.Errorf("port is missing")
	}

	protocol, _, err := unstructured.NestedString(fields, "protocol")
	if err != nil {
		return servicePortKey{}, err
	}
	if protocol == "" {
		protocol = string(corev1.ProtocolTCP)
	}

	return servicePortKey{port: port, protocol: corev1.Protocol(protocol)}, nil
}

// warnOnInvalidPortName flags names the API server would reject. The entry
// is still written so the output stays predictable.
func warnOnInvalidPortName(entry domain.PortEntry) {
	if errs := validation.IsDNS1123Label(entry.Name); len(errs) > 0 {
		expanderLog.WithFields(logrus.Fields{
			logfields.PortName: entry.Name,
			logfields.Port:     entry.Port,
			logfields.Protocol: entry.Protocol,
		}).Warn("Generated port name is not a valid DNS-1123 label: " + strings.Join(errs, "; "))
	}
}

func joinProtocols(protocols []corev1.Protocol) string {
	names := make([]string, 0, len(protocols))
	for _, protocol := range protocols {
		names = append(names, string(protocol))
	}
	return strings.Join(names, ",")
}

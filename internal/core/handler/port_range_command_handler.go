package handler

import (
	"fmt"
	"io"
	"strings"

	"portranger/internal/cli/output"
	"portranger/internal/core"
	"portranger/internal/core/domain"
	"portranger/internal/logging"
	"portranger/internal/logging/logfields"
	"portranger/internal/ports"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// PortRangeRequest carries the arguments of a single port-ranger run.
// Empty overrides fall back to the user configuration.
type PortRangeRequest struct {
	InputPath  string
	Identifier string
	StartPort  int
	EndPort    int
	Protocols  domain.ProtocolSelection
	OutputPath string

	ChunkSize        *int
	GatewayName      string
	GatewayNamespace string
	RouteAPIVersion  string
}

type PortRangeCommandHandler struct {
	configRepository    core.ConfigRepository
	fileSystem          ports.FileSystem
	manifestCodec       ports.ManifestCodec
	servicePortExpander *core.ServicePortExpander
	udpRouteGenerator   *core.UDPRouteGenerator
}

func ProvidePortRangeCommandHandler(
	configRepository core.ConfigRepository,
	fileSystem ports.FileSystem,
	manifestCodec ports.ManifestCodec,
	servicePortExpander *core.ServicePortExpander,
	udpRouteGenerator *core.UDPRouteGenerator,
) PortRangeCommandHandler {
	return PortRangeCommandHandler{
		configRepository:    configRepository,
		fileSystem:          fileSystem,
		manifestCodec:       manifestCodec,
		servicePortExpander: servicePortExpander,
		udpRouteGenerator:   udpRouteGenerator,
	}
}

// Handle reads the input manifest, dispatches on its kind and writes the
// result. The output file is only written once the whole transformation
// succeeded.
func (h *PortRangeCommandHandler) Handle(request PortRangeRequest, out io.Writer) error {
	portRange, err := domain.NewPortRange(request.StartPort, request.EndPort)
	if err != nil {
		return err
	}

	data, err := h.fileSystem.ReadFile(request.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", request.InputPath, err)
	}
	manifest, err := h.manifestCodec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", request.InputPath, err)
	}

	logging.DefaultLogger.WithFields(logrus.Fields{
		logfields.Path: request.InputPath,
		logfields.Kind: manifest.GetKind(),
	}).Debug("Loaded manifest")

	var encoded []byte
	var summary string
	switch strings.ToLower(manifest.GetKind()) {
	case strings.ToLower(domain.KindService):
		encoded, summary, err = h.handleService(manifest, request, portRange)
	case strings.ToLower(domain.KindUDPRoute):
		encoded, summary, err = h.handleUDPRoute(manifest, request, portRange)
	default:
		err = fmt.Errorf(
			"%w %q in %s: supported kinds are %s, %s",
			domain.ErrUnsupportedKind,
			manifest.GetKind(),
			request.InputPath,
			domain.KindService,
			domain.KindUDPRoute,
		)
	}
	if err != nil {
		return err
	}

	if err := h.fileSystem.WriteFile(request.OutputPath, encoded, ports.ReadAllWriteOwner); err != nil {
		return fmt.Errorf("failed to write %s: %w", request.OutputPath, err)
	}

	output.FprintSuccess(out, fmt.Sprintf("Modified YAML has been saved to %s", request.OutputPath))
	output.FprintSecondary(out, summary)
	return nil
}

func (h *PortRangeCommandHandler) handleService(
	manifest *unstructured.Unstructured,
	request PortRangeRequest,
	portRange domain.PortRange,
) ([]byte, string, error) {
	result, err := h.servicePortExpander.Expand(manifest, request.Identifier, portRange, request.Protocols.Protocols())
	if err != nil {
		return nil, "", err
	}

	encoded, err := h.manifestCodec.Encode(result.Manifest)
	if err != nil {
		return nil, "", err
	}

	summary := fmt.Sprintf(
		"%d %s added, %d already present",
		len(result.Added),
		output.Plural(len(result.Added), "port", "ports"),
		result.Skipped,
	)
	return encoded, summary, nil
}

func (h *PortRangeCommandHandler) handleUDPRoute(
	manifest *unstructured.Unstructured,
	request PortRangeRequest,
	portRange domain.PortRange,
) ([]byte, string, error) {
	if !request.Protocols.IncludesUDP() {
		return nil, "", fmt.Errorf("%w: UDPRoute only supports UDP protocol, got %s", domain.ErrProtocolKindMismatch, request.Protocols)
	}

	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return nil, "", err
	}

	chunkSize := config.UDPRoute.ChunkSize
	if request.ChunkSize != nil {
		chunkSize = *request.ChunkSize
	}
	options := core.UDPRouteOptions{
		APIVersion: firstNonEmpty(request.RouteAPIVersion, config.UDPRoute.APIVersion),
		Gateway: domain.ParentRef{
			Name:      firstNonEmpty(request.GatewayName, config.Gateway.Name),
			Namespace: firstNonEmpty(request.GatewayNamespace, config.Gateway.Namespace),
		},
	}

	routes, err := h.udpRouteGenerator.Generate(manifest, request.Identifier, portRange, chunkSize, options)
	if err != nil {
		return nil, "", err
	}

	encoded, err := h.manifestCodec.Encode(routes...)
	if err != nil {
		return nil, "", err
	}

	summary := fmt.Sprintf(
		"%d %s covering %d %s",
		len(routes),
		output.Plural(len(routes), "UDPRoute", "UDPRoutes"),
		portRange.Len(),
		output.Plural(portRange.Len(), "port", "ports"),
	)
	return encoded, summary, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

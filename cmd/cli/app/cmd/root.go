package cmd

import (
	"os"
	"strconv"

	"portranger/cmd/cli/app"
	"portranger/internal/cli/output"
	"portranger/internal/core/domain"
	"portranger/internal/core/handler"
	"portranger/internal/logging"

	"github.com/spf13/cobra"
)

var (
	chunkSize        int
	gatewayName      string
	gatewayNamespace string
	routeAPIVersion  string
	verbose          bool
)

var rootCmd = &cobra.Command{
	Use:   "port-ranger <yaml_file> <identifier> <start_port> <end_port> <protocols> <output_yaml>",
	Short: "Fills a port range into a Kubernetes Service or generates UDPRoutes for it",
	Long: `port-ranger reads a single Kubernetes manifest and writes a transformed copy.

For a Service, every (port, protocol) pair of the range that is not yet
exposed is appended to spec.ports. For a UDPRoute, one Gateway API UDPRoute
document is generated per chunk of the range, pointing at <identifier>-service.

Protocols are TCP, UDP or both. UDPRoute manifests require UDP or both.

Defaults for the gateway and the chunk size can be stored in ~/.port-ranger.yaml:

  gateway:
    name: envoy-gateway
    namespace: gateways
  udpRoute:
    apiVersion: gateway.networking.k8s.io/v1alpha2
    chunkSize: 100`,
	Example: `  port-ranger service.yaml game 30000 30010 both service.out.yaml
  port-ranger route.yaml game 49152 51000 UDP routes.yaml --chunk-size 100`,
	Args:              PortRangeArgsValidator,
	ValidArgsFunction: PortRangeArgsCompletion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		commandHandler, err := app.InjectPortRangeCommandHandler()
		if err != nil {
			return err
		}

		request, err := portRangeRequestFromArgs(cmd, args)
		if err != nil {
			return err
		}

		return commandHandler.Handle(request, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Maximum backend refs per UDPRoute, 0 puts the whole range into one route")
	rootCmd.Flags().StringVar(&gatewayName, "gateway-name", "", "Gateway the generated UDPRoutes attach to (default from config, else envoy-gateway)")
	rootCmd.Flags().StringVar(&gatewayNamespace, "gateway-namespace", "", "Namespace of the gateway (default from config, else the route namespace)")
	rootCmd.Flags().StringVar(&routeAPIVersion, "route-api-version", "", "apiVersion of the generated UDPRoutes (default from config, else "+domain.DefaultUDPRouteAPIVersion+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// portRangeRequestFromArgs assumes args already passed PortRangeArgsValidator.
func portRangeRequestFromArgs(cmd *cobra.Command, args []string) (handler.PortRangeRequest, error) {
	startPort, err := strconv.Atoi(args[argStartPort])
	if err != nil {
		return handler.PortRangeRequest{}, err
	}
	endPort, err := strconv.Atoi(args[argEndPort])
	if err != nil {
		return handler.PortRangeRequest{}, err
	}
	protocols, err := domain.ParseProtocolSelection(args[argProtocols])
	if err != nil {
		return handler.PortRangeRequest{}, err
	}

	request := handler.PortRangeRequest{
		InputPath:        args[argYamlFile],
		Identifier:       args[argIdentifier],
		StartPort:        startPort,
		EndPort:          endPort,
		Protocols:        protocols,
		OutputPath:       args[argOutputYaml],
		GatewayName:      gatewayName,
		GatewayNamespace: gatewayNamespace,
		RouteAPIVersion:  routeAPIVersion,
	}
	if cmd.Flags().Changed("chunk-size") {
		request.ChunkSize = &chunkSize
	}
	return request, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError(err.Error())
		os.Exit(1)
	}
}

//go:build wireinject
// +build wireinject

package app

import (
	"portranger/internal/adapters/filesystem"
	"portranger/internal/adapters/manifest_codec"
	"portranger/internal/core"
	"portranger/internal/core/handler"
	"portranger/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	manifest_codec.ProvideYamlCodec,
	wire.Bind(new(ports.ManifestCodec), new(*manifest_codec.YamlCodec)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideServicePortExpander,
	core.ProvideUDPRouteGenerator,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectFileSystem() (ports.FileSystem, error) {
	wire.Build(Adapter)
	return &filesystem.OsFileSystem{}, nil
}

func InjectPortRangeCommandHandler() (handler.PortRangeCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvidePortRangeCommandHandler,
	)
	return handler.PortRangeCommandHandler{}, nil
}

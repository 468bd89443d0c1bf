package core

import (
	"fmt"
	"path/filepath"

	"portranger/internal/core/domain"
	"portranger/internal/logging"
	"portranger/internal/logging/logfields"
	"portranger/internal/ports"

	"gopkg.in/yaml.v3"
)

var configFilePath = filepath.Join("~", ".port-ranger.yaml")

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	ConfigExists() (bool, error)
}

// FileSystemConfigRepository reads the optional user configuration file.
// A missing file is not an error; defaults are returned instead.
type FileSystemConfigRepository struct {
	fileSystem ports.FileSystem
	config     *domain.Config
}

func ProvideFileSystemConfigRepository(fileSystem ports.FileSystem) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{
		fileSystem: fileSystem,
	}
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	return c.fileSystem.FileExists(configFilePath)
}

func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	exists, err := c.ConfigExists()
	if err != nil {
		return nil, err
	}

	config := domain.CreateDefaultConfig()
	if exists {
		data, err := c.fileSystem.ReadFile(configFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFilePath, err)
		}
		logging.DefaultLogger.WithField(logfields.Path, configFilePath).Debug("Loaded configuration")
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configFilePath, err)
	}

	c.config = &config
	return c.config, nil
}

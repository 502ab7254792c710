// Config loading for the Open Images converter command.
package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// loadOpenImagesConfig builds the converter configuration from defaults for
// dataDir, overlaid with the YAML config file when one is given. A missing
// configFile argument (empty string) means defaults only.
func loadOpenImagesConfig(configFile, dataDir string) (types.OpenImagesConfig, error) {
	defaults := types.DefaultOpenImagesConfig(dataDir)

	v := viper.New()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("target_image_count", defaults.TargetImageCount)
	v.SetDefault("dataset_name", defaults.DatasetName)
	v.SetDefault("class_descriptions", defaults.ClassDescriptions)
	v.SetDefault("box_files", defaults.BoxFiles)
	v.SetDefault("image_info_files", defaults.ImageInfoFiles)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return types.OpenImagesConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.OpenImagesConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.OpenImagesConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.OpenImagesConfig{}, err
	}
	return cfg, nil
}

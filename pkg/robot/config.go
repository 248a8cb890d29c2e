package robot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gwillem/armkin/pkg/kinematics"
)

const DefaultConfigFile = "armkin.json"

// EnvPrefix prefixes environment overrides, e.g. ARMKIN_GEOMETRY_D6=120.
const EnvPrefix = "ARMKIN"

// Config holds the arm configuration
type Config struct {
	Geometry kinematics.Dimensions `json:"geometry" mapstructure:"geometry"`
	Limits   kinematics.Limits     `json:"limits" mapstructure:"limits"`
	Selector kinematics.Selector   `json:"selector" mapstructure:"selector"`
	Arm      ArmConfig             `json:"arm" mapstructure:"arm"`
}

// ArmConfig holds the servo connection of the physical arm
type ArmConfig struct {
	Port        string      `json:"port" mapstructure:"port"`
	Calibration Calibration `json:"calibration,omitempty" mapstructure:"calibration"`
}

// IsCalibrated returns true if the arm has calibration data for every joint
func (a *ArmConfig) IsCalibrated() bool {
	return a.Calibration.Complete()
}

// DefaultConfig returns the reference arm with ±180° limits.
func DefaultConfig() *Config {
	return &Config{
		Geometry: kinematics.ReferenceDimensions,
		Limits:   kinematics.UniformLimits(len(AllJoints()), 180),
		Selector: kinematics.DefaultSelector,
	}
}

// Solver builds the kinematics solver described by the configuration.
func (c *Config) Solver() (*kinematics.Solver, error) {
	g, err := kinematics.NewSixAxis(c.Geometry)
	if err != nil {
		return nil, fmt.Errorf("build geometry: %w", err)
	}
	s, err := kinematics.NewSolver(g, c.Limits)
	if err != nil {
		return nil, fmt.Errorf("build solver: %w", err)
	}
	return s, nil
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file. A missing file
// yields DefaultConfig. Environment variables override both.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// setDefaults registers every scalar key so environment overrides apply
// even when the file omits it.
func setDefaults(v *viper.Viper, cfg *Config) {
	g := cfg.Geometry
	for key, val := range map[string]float64{
		"a1": g.A1, "d1": g.D1, "a2": g.A2, "a3": g.A3,
		"d4": g.D4, "d6": g.D6, "tool": g.Tool,
	} {
		v.SetDefault("geometry."+key, val)
	}
	v.SetDefault("selector.arm", cfg.Selector.Arm)
	v.SetDefault("selector.elbow", cfg.Selector.Elbow)
	v.SetDefault("selector.hand", cfg.Selector.Hand)
	v.SetDefault("arm.port", cfg.Arm.Port)

	limits := make([]map[string]any, len(cfg.Limits))
	for i, l := range cfg.Limits {
		limits[i] = map[string]any{"min": l.Min, "max": l.Max}
	}
	v.SetDefault("limits", limits)
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

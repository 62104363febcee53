// Package config loads the launcher, bridge and player settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"catalina/features"
	"catalina/player"

	"gopkg.in/yaml.v3"
)

// Launcher defaults, the fixed invocation of the host engine.
const (
	DefaultCommand = "catanatron-play"
	DefaultCode    = "ai/players/catalina.py"
	DefaultPlayers = "R,R,R,Catalina"
	DefaultNum     = 10
	DefaultAddr    = "127.0.0.1:8765"
)

var ErrUnknownCriterion = errors.New("unknown criterion")

type Config struct {
	Launcher LauncherConfig `yaml:"launcher"`
	Server   ServerConfig   `yaml:"server"`
	Player   PlayerConfig   `yaml:"player"`
	Record   RecordConfig   `yaml:"record"`
}

type LauncherConfig struct {
	Command string   `yaml:"command"`
	Root    string   `yaml:"root"` // Empty runs from the executable's directory
	Code    string   `yaml:"code"`
	Players string   `yaml:"players"`
	Num     int      `yaml:"num"`
	Extra   []string `yaml:"extra"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type PlayerConfig struct {
	Name         string             `yaml:"name"`
	Seed         uint64             `yaml:"seed"`
	Temperature  float64            `yaml:"temperature"`
	PreferActing bool               `yaml:"prefer_acting"`
	Weights      map[string]float64 `yaml:"weights"` // Criterion name to weight, unnamed criteria keep their default
}

type RecordConfig struct {
	Dir string `yaml:"dir"` // Empty disables recording
}

func Default() *Config {
	return &Config{
		Launcher: LauncherConfig{
			Command: DefaultCommand,
			Code:    DefaultCode,
			Players: DefaultPlayers,
			Num:     DefaultNum,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Player: PlayerConfig{Name: player.Default},
	}
}

// Load overlays a YAML file on the defaults. An empty path or a missing file
// yields the defaults. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("CATALINA_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CATALINA_PLAYER"); v != "" {
		c.Player.Name = v
	}
	if v := os.Getenv("CATALINA_RECORD_DIR"); v != "" {
		c.Record.Dir = v
	}
	if v := os.Getenv("CATALINA_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CATALINA_SEED: %w", err)
		}
		c.Player.Seed = seed
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Launcher.Command == "" {
		return errors.New("launcher command is empty")
	}
	if c.Launcher.Num < 0 {
		return fmt.Errorf("launcher num must not be negative, got %d", c.Launcher.Num)
	}
	if c.Player.Temperature < 0 {
		return fmt.Errorf("player temperature must not be negative, got %v", c.Player.Temperature)
	}
	_, err := c.Player.weights()
	return err
}

// Args are the host engine's arguments, after the command itself.
func (l LauncherConfig) Args() []string {
	var args []string
	if l.Code != "" {
		args = append(args, "--code="+l.Code)
	}
	if l.Players != "" {
		args = append(args, "--players="+l.Players)
	}
	if l.Num > 0 {
		args = append(args, "--num="+strconv.Itoa(l.Num))
	}
	return append(args, l.Extra...)
}

// Options turns the player settings into player options.
func (p PlayerConfig) Options() ([]player.Option, error) {
	weights, err := p.weights()
	if err != nil {
		return nil, err
	}
	return []player.Option{
		player.WithWeights(weights),
		player.WithSeed(p.Seed),
		player.WithTemperature(p.Temperature),
		player.WithPreferActing(p.PreferActing),
	}, nil
}

func (p PlayerConfig) weights() (features.Weights, error) {
	weights := features.DefaultWeights
	for name, w := range p.Weights {
		c, ok := features.ParseCriterion(name)
		if !ok {
			return weights, fmt.Errorf("%w: %q", ErrUnknownCriterion, name)
		}
		if w < 0 {
			return weights, fmt.Errorf("weight of %s must not be negative, got %v", name, w)
		}
		weights[c] = w
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return weights, errors.New("player weights must not all be zero")
	}
	return weights, nil
}

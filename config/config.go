// Package config holds the game's tuning values, loaded once at startup
// from the embedded config.yaml. Access them through the package-level C.
package config

import (
	_ "embed"
	"log"

	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var rawConfig []byte

type Ball struct {
	Mass       float64 `yaml:"mass"`
	Radius     float64 `yaml:"radius"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

type Damping struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type Editor struct {
	GridSize      float64 `yaml:"grid_size"`
	ToolbarHeight int     `yaml:"toolbar_height"`
}

type Config struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	BoundaryThickness float64 `yaml:"boundary_thickness"`
	Ball              Ball    `yaml:"ball"`
	GravityForce      float64 `yaml:"gravity_force"`
	Damping           Damping `yaml:"damping"`
	TrailInterval     int     `yaml:"trail_interval"`
	Editor            Editor  `yaml:"editor"`
}

// Timestep is the fixed simulation delta. One ebiten Update call advances
// the physics world by exactly this much.
const Timestep = 1.0 / 60.0

// C is the active configuration.
var C = load()

func load() Config {
	var c Config
	if err := yaml.Unmarshal(rawConfig, &c); err != nil {
		log.Fatalf("config: parse embedded config.yaml: %v", err)
	}
	return c
}

// Command spirvgen-cli drives the backend against a module built
// in-process and reports the resulting word count. It exists to give
// the Options layer (SPIR-V version, declared capabilities, debug
// names) a config file instead of Go literals; a real toolchain would
// wire a front-end's IR module in here in place of the smoke module.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shaderforge/spirvgen/ir"
	"github.com/shaderforge/spirvgen/spirv"
)

// config mirrors spirv.Options in a form BurntSushi/toml can decode
// directly from a file on disk.
type config struct {
	VersionMajor uint8    `toml:"version_major"`
	VersionMinor uint8    `toml:"version_minor"`
	Capabilities []string `toml:"capabilities"`
	Debug        bool     `toml:"debug"`
	Validation   bool     `toml:"validation"`
}

func loadOptions(path string) (spirv.Options, error) {
	var cfg config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return spirv.Options{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	opts := spirv.DefaultOptions()
	if cfg.VersionMajor != 0 {
		opts.Version = spirv.Version{Major: cfg.VersionMajor, Minor: cfg.VersionMinor}
	}
	opts.Debug = cfg.Debug
	opts.Validation = cfg.Validation
	for _, name := range cfg.Capabilities {
		c, ok := spirv.CapabilityByName(name)
		if !ok {
			return spirv.Options{}, fmt.Errorf("unknown capability %q", name)
		}
		opts.Capabilities = append(opts.Capabilities, c)
	}
	return opts, nil
}

func main() {
	configPath := flag.String("config", "", "path to a TOML options file")
	flag.Parse()

	opts := spirv.DefaultOptions()
	if *configPath != "" {
		loaded, err := loadOptions(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		opts = loaded
	}

	backend := spirv.NewBackend(opts)
	words, err := backend.Compile(&ir.Module{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("compiled %d bytes (%d words) targeting SPIR-V %s\n", len(words), len(words)/4, opts.Version)
}

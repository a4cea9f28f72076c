// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package options specifies the options of a compilation.
package options

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// ModuleKind is the kind of module produced by the compiler.
type ModuleKind string

const (
	// Console is an executable module with a main function.
	Console ModuleKind = "console"
	// Library is a module without entry point.
	Library ModuleKind = "library"
)

// TargetRuntime is the runtime against which the module is linked.
type TargetRuntime string

const (
	// NetStandard links the module against the standard library facade.
	NetStandard TargetRuntime = "netstandard"
	// SystemRuntime links the module against the system runtime assemblies.
	SystemRuntime TargetRuntime = "systemruntime"
)

type (
	// Options of a compilation.
	Options struct {
		// AssemblyName is the name of the output module.
		AssemblyName string `toml:"assembly_name"`
		// Version of the output module, for example 1.0.0.
		Version string `toml:"version"`
		// Kind of the output module.
		Kind ModuleKind `toml:"module_kind"`
		// Runtime targeted by the output module.
		Runtime TargetRuntime `toml:"target_runtime"`
		// RuntimeVersion is the version of the targeted runtime.
		RuntimeVersion string `toml:"runtime_version"`
		// Imports are functions implemented by the runtime.
		Imports []*ImportedFunction `toml:"import"`
	}

	// ImportedFunction is a function implemented by the runtime
	// and callable from C code.
	ImportedFunction struct {
		// Name of the function in C code.
		Name string `toml:"name"`
		// Returns is the C spelling of the return type, for example "int".
		Returns string `toml:"returns"`
		// Params are the C spellings of the parameter types.
		Params []string `toml:"params"`
		VarArg bool     `toml:"vararg"`
		// Member is the runtime member implementing the function.
		Member string `toml:"member"`
	}
)

// Default returns the default options to compile a console module.
func Default(name string) *Options {
	return &Options{
		AssemblyName:   name,
		Version:        "1.0.0",
		Kind:           Console,
		Runtime:        NetStandard,
		RuntimeVersion: "2.0.0",
	}
}

// Parse options from a TOML document.
// Fields missing from the document are set to their default values.
func Parse(data []byte) (*Options, error) {
	opts := &Options{}
	if err := toml.Unmarshal(data, opts); err != nil {
		return nil, errors.Errorf("cannot parse options: %v", err)
	}
	opts.setDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (opts *Options) setDefaults() {
	def := Default(opts.AssemblyName)
	if opts.Version == "" {
		opts.Version = def.Version
	}
	if opts.Kind == "" {
		opts.Kind = def.Kind
	}
	if opts.Runtime == "" {
		opts.Runtime = def.Runtime
	}
	if opts.RuntimeVersion == "" {
		opts.RuntimeVersion = def.RuntimeVersion
	}
}

// Load options from a TOML file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("cannot read options: %v", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return opts, nil
}

// SemVer returns a version in its canonical semantic versioning form,
// for example v1.2.0 for 1.2.
func SemVer(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.Canonical(version)
}

// Validate checks that the options are consistent.
func (opts *Options) Validate() error {
	if opts.AssemblyName == "" {
		return errors.Errorf("missing assembly name")
	}
	if SemVer(opts.Version) == "" {
		return errors.Errorf("invalid version %q for assembly %s", opts.Version, opts.AssemblyName)
	}
	switch opts.Kind {
	case Console, Library:
	default:
		return errors.Errorf("invalid module kind %q: want %q or %q", opts.Kind, Console, Library)
	}
	switch opts.Runtime {
	case NetStandard, SystemRuntime:
	default:
		return errors.Errorf("invalid target runtime %q: want %q or %q", opts.Runtime, NetStandard, SystemRuntime)
	}
	if SemVer(opts.RuntimeVersion) == "" {
		return errors.Errorf("invalid runtime version %q", opts.RuntimeVersion)
	}
	seen := make(map[string]bool)
	for _, imp := range opts.Imports {
		if imp.Name == "" {
			return errors.Errorf("imported function without a name")
		}
		if seen[imp.Name] {
			return errors.Errorf("function %s imported more than once", imp.Name)
		}
		seen[imp.Name] = true
		if imp.Member == "" {
			return errors.Errorf("imported function %s has no runtime member", imp.Name)
		}
	}
	return nil
}

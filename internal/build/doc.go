// Package build provides the canonical build execution pipeline for docsite.
//
// A build turns a loaded declaration file into generator output:
//
//	assemble → resolve → emit → generate
//
// assemble merges the selected profile and validates the declaration,
// resolve checks referenced assets and sidebar targets against the project
// tree, emit writes the generator's native configuration file and generate
// runs the generator. Every stage failure is a classified error and aborts
// the build; nothing is retried.
//
// All execution paths (build, emit and watch commands) route through
// BuildService.
package build

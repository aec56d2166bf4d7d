// Package profile provides optional runtime profiling for the tsub command.
//
// Profiling integrates [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag every operation is
// a no-op with zero overhead, and [Modes] reports no supported modes.
//
// With the tag, a profiler is configured as a [Config] and started with
// [Config.Start]:
//
//	stop := profile.Config(func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	}).Start()
//	defer stop.Stop()
//
// Profile files are written to the configured directory with names matching
// the mode (cpu.pprof, mem.pprof, and so on) for analysis with
// "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

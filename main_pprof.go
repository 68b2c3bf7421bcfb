//go:build !no_pprof
// +build !no_pprof

package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"fortio.org/log"
)

var (
	cpuProfile = flag.String("profile-cpu", "", "write a cpu profile of the run to `file`")
	memProfile = flag.String("profile-mem", "", "write a heap profile at exit to `file`")
)

func init() {
	hookBefore = startProfiling
	hookAfter = stopProfiling
}

func startProfiling() int {
	if *cpuProfile == "" {
		return 0
	}
	f, err := os.Create(*cpuProfile)
	if err != nil {
		return log.FErrf("can't create cpu profile file: %v", err)
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		return log.FErrf("can't start cpu profile: %v", err)
	}
	log.Infof("Profiling cpu to %s", *cpuProfile)
	return 0
}

func stopProfiling() int {
	if *cpuProfile != "" {
		pprof.StopCPUProfile()
	}
	if *memProfile == "" {
		return 0
	}
	f, err := os.Create(*memProfile)
	if err != nil {
		return log.FErrf("can't create heap profile file: %v", err)
	}
	defer f.Close()
	if err = pprof.WriteHeapProfile(f); err != nil {
		return log.FErrf("can't write heap profile: %v", err)
	}
	log.Infof("Wrote heap profile to %s", *memProfile)
	return 0
}

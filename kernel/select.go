// elPrep: a high-performance tool for analyzing SAM/BAM files.
// Copyright (c) 2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package kernel

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Level identifies which striped kernel width the selector installed.
type Level int

const (
	LevelScalar Level = iota
	LevelNarrow
	LevelWide
)

func (l Level) String() string {
	switch l {
	case LevelWide:
		return "wide"
	case LevelNarrow:
		return "narrow"
	case LevelScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// Feature mask bits accepted by Init, per spec §6.1.
const (
	FeatureNarrowA uint8 = 1 << 0 // narrow-SIMD-A (e.g. SSE4.1-width, 4 single / 2 double lanes)
	FeatureNarrowB uint8 = 1 << 1 // narrow-SIMD-B (e.g. ARM NEON-width, same lane counts as NarrowA)
	FeatureWide    uint8 = 1 << 2 // wide-SIMD (e.g. AVX2-width, 8 single / 4 double lanes)
	FeatureAll     uint8 = FeatureNarrowA | FeatureNarrowB | FeatureWide
)

// dispatch is the immutable, once-initialized process-wide state S of
// spec §4.7: the quality tables (package qual, initialized by its own
// init()) plus the installed single- and double-precision kernel
// "function pointers". Built once under initGuard and published through
// an atomic.Pointer, generalizing elPrep's build-tag compile-time swap
// (pedantic.go/unpedantic.go) to a runtime one, per DESIGN.md.
type dispatch struct {
	level  Level
	single singleKernelFunc
	double doubleKernelFunc
}

var (
	initGuard   sync.Once
	initErr     error
	activeState atomic.Pointer[dispatch]
)

// Init selects the best available kernel level permitted by featureMask
// and installs it as process-wide dispatch state. It is one-shot: later
// calls are no-ops that return the result of the first call. Init must
// complete successfully before any RunHybrid/RunOne/ComputeBatch call;
// per spec §7, using the dispatcher before a successful Init is a
// programmer error (panic), not a runtime condition.
func Init(featureMask uint8) error {
	initGuard.Do(func() {
		level, single, double, err := selectKernel(featureMask)
		if err != nil {
			initErr = err
			return
		}
		activeState.Store(&dispatch{level: level, single: single, double: double})
		log.Printf("pairhmm/kernel: selected %s kernel level", level)
	})
	return initErr
}

// selectKernel probes CPU capabilities in descending width order (widest
// first) and returns the first level permitted by featureMask, following
// the cpu.X86.HasAVX2/cpu.ARM64.HasASIMD dispatch idiom read from
// CWBudde-MayFlyCircleFit/internal/fit/ssd.go, generalized from a single
// function pointer to the (single,double) pair a hybrid dispatcher needs.
func selectKernel(featureMask uint8) (Level, singleKernelFunc, doubleKernelFunc, error) {
	wideAvailable := cpu.X86.HasAVX2
	narrowAAvailable := cpu.X86.HasSSE41
	narrowBAvailable := cpu.ARM64.HasASIMD

	if featureMask&FeatureWide != 0 && wideAvailable {
		return LevelWide, WideSingleKernel, WideDoubleKernel, nil
	}
	if featureMask&FeatureNarrowA != 0 && narrowAAvailable {
		return LevelNarrow, NarrowSingleKernel, NarrowDoubleKernel, nil
	}
	if featureMask&FeatureNarrowB != 0 && narrowBAvailable {
		return LevelNarrow, NarrowSingleKernel, NarrowDoubleKernel, nil
	}
	// The portable scalar level has no CPU precondition: it is always
	// available, so it is only refused when the caller's mask excludes
	// every level outright (mask == 0).
	if featureMask == 0 {
		return 0, nil, nil, errors.New("pairhmm/kernel: feature mask selects no available kernel level")
	}
	return LevelScalar, ScalarSingleKernel, ForwardScalar, nil
}

// current returns the installed dispatch state, panicking if Init has
// not completed successfully -- per spec §7, a malformed configuration
// is validated at Init, never on the hot path.
func current() *dispatch {
	d := activeState.Load()
	if d == nil {
		panic(fmt.Errorf("pairhmm/kernel: RunHybrid called before a successful Init"))
	}
	return d
}

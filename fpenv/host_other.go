// Copyright 2024 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package fpenv

// HostSupported is true when the Host profile is available.
const HostSupported = false

func hostControl(rm RoundingMode) uint32 { return 0 }

func hostFlags(st uint64) Flags { return 0 }

func noHost() { panic("fpenv: " + ErrNoHost.Error()) }

func hostAdd32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostSub32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostMul32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostDiv32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostMin32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostMax32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostEq32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostLt32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostLe32(a, b, csr uint32) (r, st uint32) { noHost(); return }
func hostSqrt32(a, csr uint32) (r, st uint32) { noHost(); return }
func hostToInt32(a, csr uint32) (r, st uint32) { noHost(); return }
func hostWiden(a, csr uint32) (r, st uint64) { noHost(); return }

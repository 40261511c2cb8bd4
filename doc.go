//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package uvmac implements the core of UVMAC, an unconditionally secure
// message authentication code built from the three-layer VHASH universal
// hash family (NH, a Carter-Wegman polynomial over GF(p127), and an
// inner-product finalizer over GF(p64)) combined with a one-time-pad
// encryption of the hash output.
//
// The forgery probability is bounded information-theoretically, not
// computationally: VHASH is an almost-delta-universal hash family, and the
// tag is produced by adding fresh, never-reused pad-key material to the
// hash output modulo 2^64. Callers own the pad-key stream and must never
// let a (stream, cursor-position) pair authenticate more than one message;
// this package has no way to detect reuse.
//
// A Context is mutable, fixed-size, and single-threaded: concurrent calls
// on the same Context race. Distinct Contexts are fully independent.
package uvmac

//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package padkey supplies and persists the pad-key material uvmac.Context
// consumes through the uvmac.PadKeyStream interface: generators that turn
// a short seed into a long stream of fresh words (ChaChaStream,
// HKDFStream), additive secret sharing of that material between two
// custodians so neither alone can forge a tag, and an on-disk file format
// for a consumed, cursor-tracked stream.
//
// Every generator in this package produces words that are never supposed
// to repeat for a given seed; it is the caller's responsibility, per
// uvmac's security-critical resource policy, to never rewind a stream
// past a cursor position it has already handed out.
package padkey

//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// Package provisioning runs the two-party key-provisioning ceremony that
// produces a uvmac long-lived user key without any single machine ever
// holding the whole key at rest: two Peers run a threshold ECDSA key
// generation (github.com/bnb-chain/tss-lib/v2), and each derives its own
// half of the eventual user key from its own never-shared private share.
// Reconstructing the full key (XORing the two halves together) happens
// later, transiently, wherever both share files are available: a
// two-vault-plus-combiner model applied to uvmac's universal-hashing key
// material.
package provisioning

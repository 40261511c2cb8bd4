//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

// The uvmac command computes and verifies unconditionally secure message
// authentication tags, manages pad-key files, and drives the two-party
// key-provisioning ceremony.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/uvmac"
	"github.com/markkurossi/uvmac/padkey"
	"github.com/markkurossi/uvmac/provisioning"
)

func main() {
	keyFile := flag.String("key", "", "user key file")
	padFile := flag.String("pad", "", "pad-key file")
	tagBits := flag.Int("tagbits", 64, "tag length in bits (64 or 128)")
	blockBytes := flag.Int("block", 128, "NH block size in bytes")
	flag.Parse()

	log.SetFlags(0)

	if len(flag.Args()) == 0 {
		log.Fatalf("usage: uvmac tag/verify/genkey/padgen/provision arg...")
	}

	params, err := uvmac.NewParams(uvmac.Params{
		TagBits:    *tagBits,
		BlockBytes: *blockBytes,
	})
	if err != nil {
		log.Fatalf("invalid parameters: %s", err)
	}

	switch flag.Args()[0] {
	case "tag":
		if err := cmdTag(params, *keyFile, *padFile, flag.Args()[1:]); err != nil {
			log.Fatalf("tag: %s", err)
		}
	case "verify":
		if err := cmdVerify(params, *keyFile, *padFile, flag.Args()[1:]); err != nil {
			log.Fatalf("verify: %s", err)
		}
	case "genkey":
		if err := cmdGenKey(flag.Args()[1:]); err != nil {
			log.Fatalf("genkey: %s", err)
		}
	case "padgen":
		if err := cmdPadGen(flag.Args()[1:]); err != nil {
			log.Fatalf("padgen: %s", err)
		}
	case "provision":
		if err := cmdProvision(flag.Args()[1:]); err != nil {
			log.Fatalf("provision: %s", err)
		}
	default:
		log.Fatalf("invalid command: %s", flag.Args()[0])
	}
}

func cmdTag(params uvmac.Params, keyFile, padFile string, args []string) error {
	if len(keyFile) == 0 {
		log.Fatalf("no -key specified")
	}
	if len(padFile) == 0 {
		log.Fatalf("no -pad specified")
	}
	if len(args) != 1 {
		log.Fatalf("usage: uvmac -key=... -pad=... tag file")
	}

	key, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}
	msg, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	pad, err := padkey.OpenFileStream(padFile)
	if err != nil {
		return err
	}
	defer pad.Close()

	tag, err := uvmac.Tag(params, key, msg, pad)
	if err != nil {
		return err
	}
	fmt.Println(hexTag(tag))
	return nil
}

func cmdVerify(params uvmac.Params, keyFile, padFile string, args []string) error {
	if len(keyFile) == 0 {
		log.Fatalf("no -key specified")
	}
	if len(padFile) == 0 {
		log.Fatalf("no -pad specified")
	}
	if len(args) != 2 {
		log.Fatalf("usage: uvmac -key=... -pad=... verify file tag-hex")
	}

	key, err := os.ReadFile(keyFile)
	if err != nil {
		return err
	}
	msg, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	pad, err := padkey.OpenFileStream(padFile)
	if err != nil {
		return err
	}
	defer pad.Close()

	tag, err := uvmac.Tag(params, key, msg, pad)
	if err != nil {
		return err
	}
	if hexTag(tag) != args[1] {
		return fmt.Errorf("tag mismatch: computed %s, want %s", hexTag(tag), args[1])
	}
	fmt.Println("ok")
	return nil
}

func hexTag(words []uint64) string {
	var buf []byte
	for _, w := range words {
		var b [8]byte
		for i := range b {
			b[i] = byte(w >> (56 - 8*i))
		}
		buf = append(buf, b[:]...)
	}
	return hex.EncodeToString(buf)
}

// cmdGenKey combines two provisioning share files into one usable user
// key, XORing them together the same way cmd/vault's makeKey combines
// two vault key shares.
func cmdGenKey(args []string) error {
	fs := flag.NewFlagSet("genkey", flag.ExitOnError)
	shareA := fs.String("a", "", "first share file")
	shareB := fs.String("b", "", "second share file")
	out := fs.String("o", "", "output key filename")
	fs.Parse(args)

	if len(*shareA) == 0 || len(*shareB) == 0 || len(*out) == 0 {
		log.Fatalf("usage: uvmac genkey -a=... -b=... -o=...")
	}

	a, err := os.ReadFile(*shareA)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(*shareB)
	if err != nil {
		return err
	}
	if len(a) != len(b) {
		return fmt.Errorf("share length mismatch: %d != %d", len(a), len(b))
	}
	key := make([]byte, len(a))
	for i := range key {
		key[i] = a[i] ^ b[i]
	}
	return os.WriteFile(*out, key, 0600)
}

// cmdPadGen generates a pad-key file from a ChaCha20 keystream seeded by
// a caller-supplied 32-byte key and 12-byte nonce.
func cmdPadGen(args []string) error {
	fs := flag.NewFlagSet("padgen", flag.ExitOnError)
	keyFile := fs.String("key", "", "32-byte ChaCha20 key file")
	nonceHex := fs.String("nonce", "", "12-byte nonce, hex; random if empty")
	length := fs.Int("n", 1024, "number of 64-bit words to generate")
	out := fs.String("o", "", "output pad-key filename")
	fs.Parse(args)

	if len(*keyFile) == 0 || len(*out) == 0 {
		log.Fatalf("usage: uvmac padgen -key=... -o=... [-n=words] [-nonce=hex]")
	}

	key, err := os.ReadFile(*keyFile)
	if err != nil {
		return err
	}

	var nonce []byte
	if len(*nonceHex) == 0 {
		nonce = make([]byte, 12)
		if _, err := rand.Read(nonce); err != nil {
			return err
		}
	} else {
		nonce, err = hex.DecodeString(*nonceHex)
		if err != nil {
			return err
		}
	}

	stream, err := padkey.NewChaChaStream(key, nonce, uint64(*length))
	if err != nil {
		return err
	}
	words := make([]uint64, *length)
	for i := range words {
		w, err := stream.Next()
		if err != nil {
			return err
		}
		words[i] = w
	}
	return padkey.CreateFile(*out, words)
}

// cmdProvision runs the two-party key-provisioning ceremony locally (both
// peers in this process, connected by an in-memory pipe) and writes each
// peer's derived key share to its own file. Running the two peers in
// separate processes over a real transport only requires swapping
// provisioning.Pipe() for a network-backed PeerIO.
func cmdProvision(args []string) error {
	fs := flag.NewFlagSet("provision", flag.ExitOnError)
	outA := fs.String("a", "", "peer A share output filename")
	outB := fs.String("b", "", "peer B share output filename")
	length := fs.Int("n", 160, "derived share length in bytes")
	label := fs.String("label", "uvmac-user-key", "HKDF info label")
	fs.Parse(args)

	if len(*outA) == 0 || len(*outB) == 0 {
		log.Fatalf("usage: uvmac provision -a=... -b=...")
	}

	ioA, ioB := provisioning.Pipe()
	peerA, err := provisioning.NewPeer(ioA, true)
	if err != nil {
		return err
	}
	peerB, err := provisioning.NewPeer(ioB, false)
	if err != nil {
		return err
	}

	type result struct {
		share []byte
		err   error
	}
	doneA := make(chan result, 1)
	doneB := make(chan result, 1)

	go func() {
		save, err := peerA.Keygen()
		if err != nil {
			doneA <- result{err: err}
			return
		}
		doneA <- result{share: provisioning.DeriveShare(save, []byte(*label), *length)}
	}()
	go func() {
		save, err := peerB.Keygen()
		if err != nil {
			doneB <- result{err: err}
			return
		}
		doneB <- result{share: provisioning.DeriveShare(save, []byte(*label), *length)}
	}()

	ra := <-doneA
	if ra.err != nil {
		return ra.err
	}
	rb := <-doneB
	if rb.err != nil {
		return rb.err
	}

	if err := os.WriteFile(*outA, ra.share, 0600); err != nil {
		return err
	}
	return os.WriteFile(*outB, rb.share, 0600)
}

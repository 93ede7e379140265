// Package codec serializes a pair of factors to and from an instance
// file: deterministic CBOR (so identical factors always produce
// identical bytes) prefixed with a BLAKE3 fingerprint of the payload,
// grounded on the teacher's lib/codec (deterministic encoding) and
// lib/artifact (keyed-hash fingerprinting) patterns.
package codec

import (
	"fmt"
	"os"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/deftlab/deft/internal/factor"
)

// fingerprintSize is the length in bytes of the BLAKE3 digest prefixed
// to every instance file.
const fingerprintSize = 32

// fingerprintDomainKey is a 32-byte BLAKE3 key used for domain-separated
// keyed hashing, so an instance-file fingerprint can never collide with a
// hash computed for an unrelated purpose elsewhere in the program.
var fingerprintDomainKey = [32]byte{
	'd', 'e', 'f', 't', '.', 'i', 'n', 's', 't', 'a', 'n', 'c', 'e', '.', 'f', 'i',
	'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// factorDoc is the on-disk representation of one factor: argument names
// in order and the complete potential table keyed by factor.Key strings.
// It deliberately mirrors factor.Factor's shape rather than embedding it,
// so the wire format is stable even if the in-memory type grows fields
// that should not round-trip (there are none today, but the seam is
// cheap).
type factorDoc struct {
	Name  string             `cbor:"name"`
	Args  []string           `cbor:"args"`
	Table map[string]float64 `cbor:"table"`
}

// instancePair is the full contents of an instance file: both factors of
// the pair, in save order.
type instancePair struct {
	F1 factorDoc `cbor:"f1"`
	F2 factorDoc `cbor:"f2"`
}

func toDoc(f *factor.Factor) factorDoc {
	args := make([]string, f.Arity())
	for i, a := range f.RVs() {
		args[i] = a.Name
	}
	return factorDoc{Name: f.Name, Args: args, Table: f.Table}
}

func fromDoc(d factorDoc) *factor.Factor {
	args := make([]factor.DRV, len(d.Args))
	for i, name := range d.Args {
		args[i] = factor.DRV{Name: name}
	}
	table := make(map[string]float64, len(d.Table))
	for k, v := range d.Table {
		table[k] = v
	}
	return &factor.Factor{Name: d.Name, Args: args, Table: table}
}

// fingerprint computes the domain-separated BLAKE3 keyed hash of data.
func fingerprint(data []byte) [fingerprintSize]byte {
	hasher, err := blake3.NewKeyed(fingerprintDomainKey[:])
	if err != nil {
		panic("codec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var sum [fingerprintSize]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}

// Save writes f1 and f2 to path as an instance file: a BLAKE3 fingerprint
// of the CBOR payload followed by the payload itself. Argument order and
// potentials are preserved bit-exactly; Load is Save's exact inverse.
func Save(path string, f1, f2 *factor.Factor) error {
	payload, err := encMode.Marshal(instancePair{F1: toDoc(f1), F2: toDoc(f2)})
	if err != nil {
		return fmt.Errorf("codec: marshal instance: %w", err)
	}
	sum := fingerprint(payload)
	out := make([]byte, 0, fingerprintSize+len(payload))
	out = append(out, sum[:]...)
	out = append(out, payload...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	return nil
}

// Load reads an instance file written by Save, verifying its fingerprint
// before decoding. A fingerprint mismatch (including truncation or a
// corrupted byte anywhere in the payload) is reported as an error rather
// than decoded — the loader never returns a partially trusted pair.
func Load(path string) (f1, f2 *factor.Factor, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("codec: read %s: %w", path, err)
	}
	if len(raw) < fingerprintSize {
		return nil, nil, fmt.Errorf("codec: %s is too short to contain a fingerprint", path)
	}
	want := raw[:fingerprintSize]
	payload := raw[fingerprintSize:]
	got := fingerprint(payload)
	for i := 0; i < fingerprintSize; i++ {
		if want[i] != got[i] {
			return nil, nil, fmt.Errorf("codec: %s: fingerprint mismatch, file is corrupt or truncated", path)
		}
	}

	var pair instancePair
	if err := decMode.Unmarshal(payload, &pair); err != nil {
		return nil, nil, fmt.Errorf("codec: unmarshal instance: %w", err)
	}
	return fromDoc(pair.F1), fromDoc(pair.F2), nil
}

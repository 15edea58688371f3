package isomdoc

import (
	"crypto/ecdh"
)

const (
	coseKeyTypeEC2 = 2
	coseCurveP256  = 1

	// P-256 coordinates are always emitted as exactly 32 bytes.
	coordinateSize = 32

	uncompressedPointMarker = 0x04
)

// COSEKey is an RFC 8152 section 13.1 COSE_Key, restricted to EC2/P-256
// public keys. Labels are the small-integer map keys RFC 8152 assigns.
type COSEKey struct {
	Kty int    `cbor:"1,keyasint"`
	Crv int    `cbor:"-1,keyasint"`
	X   []byte `cbor:"-2,keyasint"`
	Y   []byte `cbor:"-3,keyasint"`
}

func EncodeCOSEKey(pub *ecdh.PublicKey) COSEKey {
	return COSEKeyFromPoint(pub.Bytes())
}

// COSEKeyFromPoint builds a COSE_Key from an EC point representation.
// The expected input is the 65-byte uncompressed form (marker byte, 32-byte
// x, 32-byte y). Anything else is split as first-32-bytes x, remainder y,
// with both coordinates padded to the fixed width.
func COSEKeyFromPoint(raw []byte) COSEKey {
	var x, y []byte
	if len(raw) == 1+2*coordinateSize && raw[0] == uncompressedPointMarker {
		x = raw[1 : 1+coordinateSize]
		y = raw[1+coordinateSize:]
	} else if len(raw) > coordinateSize {
		x = raw[:coordinateSize]
		y = raw[coordinateSize:]
	} else {
		x = raw
	}
	return COSEKey{
		Kty: coseKeyTypeEC2,
		Crv: coseCurveP256,
		X:   padCoordinate(x),
		Y:   padCoordinate(y),
	}
}

// padCoordinate left-pads a big-endian unsigned coordinate to 32 bytes;
// oversized input keeps its least significant 32 bytes.
func padCoordinate(b []byte) []byte {
	if len(b) > coordinateSize {
		b = b[len(b)-coordinateSize:]
	}
	out := make([]byte, coordinateSize)
	copy(out[coordinateSize-len(b):], b)
	return out
}

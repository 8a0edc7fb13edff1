package cache

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR returns a compact binary codec for values that are read back often,
// e.g. archived auctions. Struct fields follow their json tags.
func CBOR() (Codec, error) {
	em, err := cbor.EncOptions{
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		return Codec{}, err
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return Codec{}, err
	}
	return Codec{Encode: em.Marshal, Decode: dm.Unmarshal}, nil
}

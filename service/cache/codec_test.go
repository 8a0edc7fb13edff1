package cache

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type priced struct {
	Amount decimal.Decimal `json:"amount"`
	At     time.Time       `json:"at"`
	Note   string          `json:"note,omitempty"`
}

func (ts *testsuite) TestCBORCodec() {
	codec, err := CBOR()
	ts.Require().NoError(err)

	in := priced{
		Amount: decimal.RequireFromString("12.345"),
		At:     time.Date(2022, 6, 1, 12, 0, 0, 500, time.UTC),
	}
	raw, err := codec.Encode(in)
	ts.Require().NoError(err)

	out := priced{}
	ts.Require().NoError(codec.Decode(raw, &out))
	ts.True(in.Amount.Equal(out.Amount))
	ts.True(in.At.Equal(out.At))
	ts.Empty(out.Note)

	ts.Error(codec.Decode([]byte{0xff}, &out))
}

func (ts *testsuite) TestGetByFuncWithCBOR() {
	codec, err := CBOR()
	ts.Require().NoError(err)
	im := New(ServiceConfig{
		Ttl:   time.Second,
		Pfx:   "cbor",
		Cache: ts.cache,
		Codec: codec,
	})

	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &value{"loaded"}, nil
	}
	for i := 0; i < 2; i++ {
		got := &value{}
		ts.Require().NoError(im.GetByFunc(mockCtx, "k", got, getter))
		ts.Equal("loaded", got.Value)
	}
	ts.Equal(1, calls)
}

func (ts *testsuite) TestEmptyCodecFallsBackToJSON() {
	half := Codec{Encode: func(interface{}) ([]byte, error) { return nil, errors.New("unused") }}
	im := New(ServiceConfig{Pfx: "json", Cache: ts.cache, Codec: half}).(*impl)
	raw, err := im.codec.Encode(value{"v"})
	ts.Require().NoError(err)
	ts.JSONEq(`{"value":"v"}`, string(raw))
}

package pb

import "testing"

func TestOrderRecordRoundTrip(t *testing.T) {
	in := &OrderRecord{
		Symbol:   "AAPL",
		Side:     Side_SIDE_SELL,
		Price:    125,
		Quantity: 400,
	}

	out, err := UnmarshalOrderRecord(MarshalOrderRecord(in))
	if err != nil {
		t.Fatal(err)
	}
	if out.Symbol != in.Symbol || out.Side != in.Side || out.Price != in.Price || out.Quantity != in.Quantity {
		t.Fatalf("round trip changed record: %+v -> %+v", in, out)
	}
}

func TestOrderRecordZeroValues(t *testing.T) {
	// Default side and zero numerics are omitted on the wire and must
	// come back as zero values.
	out, err := UnmarshalOrderRecord(MarshalOrderRecord(&OrderRecord{Symbol: "X"}))
	if err != nil {
		t.Fatal(err)
	}
	if out.Side != Side_SIDE_BUY || out.Price != 0 || out.Quantity != 0 {
		t.Fatalf("unexpected defaults: %+v", out)
	}
}

func TestFillEventRoundTrip(t *testing.T) {
	in := &FillEvent{
		Symbol:     "NVDA",
		Quantity:   50,
		BuyPrice:   301,
		SellPrice:  300,
		Sequence:   99,
		ExecutedAt: 1700000000000000000,
	}

	out, err := UnmarshalFillEvent(MarshalFillEvent(in))
	if err != nil {
		t.Fatal(err)
	}
	if *out != *in {
		t.Fatalf("round trip changed event: %+v -> %+v", in, out)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalOrderRecord([]byte{0xFF, 0xFF, 0xFF}); err == nil {
		t.Fatal("garbage decoded as order record")
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	// A future writer may add fields; old readers must skip them.
	buf := MarshalFillEvent(&FillEvent{Symbol: "FB", Quantity: 1})
	buf = append(buf, 0xF8, 0x01, 0x07) // field 31, varint 7

	out, err := UnmarshalFillEvent(buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Symbol != "FB" || out.Quantity != 1 {
		t.Fatalf("known fields lost: %+v", out)
	}
}

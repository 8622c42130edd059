// Package pb holds the wire types for the order gateway API and the
// journal/outbox payloads.
//
// The bindings are maintained by hand against engine.proto (the build
// environment has no protoc); keep field numbers in sync with the
// schema when changing anything here.
package pb

import (
	proto "github.com/golang/protobuf/proto"
)

type Side int32

const (
	Side_SIDE_BUY  Side = 0
	Side_SIDE_SELL Side = 1
)

var Side_name = map[int32]string{
	0: "SIDE_BUY",
	1: "SIDE_SELL",
}

var Side_value = map[string]int32{
	"SIDE_BUY":  0,
	"SIDE_SELL": 1,
}

func (x Side) String() string {
	return proto.EnumName(Side_name, int32(x))
}

type OrderRecord struct {
	Symbol   string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Side     Side   `protobuf:"varint,2,opt,name=side,proto3,enum=onymos.engine.v1.Side" json:"side,omitempty"`
	Price    int64  `protobuf:"varint,3,opt,name=price,proto3" json:"price,omitempty"`
	Quantity int64  `protobuf:"varint,4,opt,name=quantity,proto3" json:"quantity,omitempty"`
}

func (m *OrderRecord) Reset()         { *m = OrderRecord{} }
func (m *OrderRecord) String() string { return proto.CompactTextString(m) }
func (*OrderRecord) ProtoMessage()    {}

func (m *OrderRecord) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *OrderRecord) GetSide() Side {
	if m != nil {
		return m.Side
	}
	return Side_SIDE_BUY
}

func (m *OrderRecord) GetPrice() int64 {
	if m != nil {
		return m.Price
	}
	return 0
}

func (m *OrderRecord) GetQuantity() int64 {
	if m != nil {
		return m.Quantity
	}
	return 0
}

type FillEvent struct {
	Symbol     string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Quantity   int64  `protobuf:"varint,2,opt,name=quantity,proto3" json:"quantity,omitempty"`
	BuyPrice   int64  `protobuf:"varint,3,opt,name=buy_price,json=buyPrice,proto3" json:"buy_price,omitempty"`
	SellPrice  int64  `protobuf:"varint,4,opt,name=sell_price,json=sellPrice,proto3" json:"sell_price,omitempty"`
	Sequence   uint64 `protobuf:"varint,5,opt,name=sequence,proto3" json:"sequence,omitempty"`
	ExecutedAt int64  `protobuf:"varint,6,opt,name=executed_at,json=executedAt,proto3" json:"executed_at,omitempty"`
}

func (m *FillEvent) Reset()         { *m = FillEvent{} }
func (m *FillEvent) String() string { return proto.CompactTextString(m) }
func (*FillEvent) ProtoMessage()    {}

func (m *FillEvent) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *FillEvent) GetQuantity() int64 {
	if m != nil {
		return m.Quantity
	}
	return 0
}

func (m *FillEvent) GetBuyPrice() int64 {
	if m != nil {
		return m.BuyPrice
	}
	return 0
}

func (m *FillEvent) GetSellPrice() int64 {
	if m != nil {
		return m.SellPrice
	}
	return 0
}

func (m *FillEvent) GetSequence() uint64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *FillEvent) GetExecutedAt() int64 {
	if m != nil {
		return m.ExecutedAt
	}
	return 0
}

type SubmitOrderRequest struct {
	Symbol   string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Side     Side   `protobuf:"varint,2,opt,name=side,proto3,enum=onymos.engine.v1.Side" json:"side,omitempty"`
	Quantity int64  `protobuf:"varint,3,opt,name=quantity,proto3" json:"quantity,omitempty"`
	Price    int64  `protobuf:"varint,4,opt,name=price,proto3" json:"price,omitempty"`
}

func (m *SubmitOrderRequest) Reset()         { *m = SubmitOrderRequest{} }
func (m *SubmitOrderRequest) String() string { return proto.CompactTextString(m) }
func (*SubmitOrderRequest) ProtoMessage()    {}

func (m *SubmitOrderRequest) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *SubmitOrderRequest) GetSide() Side {
	if m != nil {
		return m.Side
	}
	return Side_SIDE_BUY
}

func (m *SubmitOrderRequest) GetQuantity() int64 {
	if m != nil {
		return m.Quantity
	}
	return 0
}

func (m *SubmitOrderRequest) GetPrice() int64 {
	if m != nil {
		return m.Price
	}
	return 0
}

type SubmitOrderResponse struct {
	Sequence uint64 `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Status   string `protobuf:"bytes,2,opt,name=status,proto3" json:"status,omitempty"`
}

func (m *SubmitOrderResponse) Reset()         { *m = SubmitOrderResponse{} }
func (m *SubmitOrderResponse) String() string { return proto.CompactTextString(m) }
func (*SubmitOrderResponse) ProtoMessage()    {}

func (m *SubmitOrderResponse) GetSequence() uint64 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

func (m *SubmitOrderResponse) GetStatus() string {
	if m != nil {
		return m.Status
	}
	return ""
}

type TopOfBookRequest struct {
	Symbol string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *TopOfBookRequest) Reset()         { *m = TopOfBookRequest{} }
func (m *TopOfBookRequest) String() string { return proto.CompactTextString(m) }
func (*TopOfBookRequest) ProtoMessage()    {}

func (m *TopOfBookRequest) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

type TopOfBookResponse struct {
	Symbol   string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	BidPrice int64  `protobuf:"varint,2,opt,name=bid_price,json=bidPrice,proto3" json:"bid_price,omitempty"`
	BidQty   int64  `protobuf:"varint,3,opt,name=bid_qty,json=bidQty,proto3" json:"bid_qty,omitempty"`
	AskPrice int64  `protobuf:"varint,4,opt,name=ask_price,json=askPrice,proto3" json:"ask_price,omitempty"`
	AskQty   int64  `protobuf:"varint,5,opt,name=ask_qty,json=askQty,proto3" json:"ask_qty,omitempty"`
}

func (m *TopOfBookResponse) Reset()         { *m = TopOfBookResponse{} }
func (m *TopOfBookResponse) String() string { return proto.CompactTextString(m) }
func (*TopOfBookResponse) ProtoMessage()    {}

func (m *TopOfBookResponse) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *TopOfBookResponse) GetBidPrice() int64 {
	if m != nil {
		return m.BidPrice
	}
	return 0
}

func (m *TopOfBookResponse) GetBidQty() int64 {
	if m != nil {
		return m.BidQty
	}
	return 0
}

func (m *TopOfBookResponse) GetAskPrice() int64 {
	if m != nil {
		return m.AskPrice
	}
	return 0
}

func (m *TopOfBookResponse) GetAskQty() int64 {
	if m != nil {
		return m.AskQty
	}
	return 0
}

type SnapshotRequest struct {
	Symbol string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *SnapshotRequest) Reset()         { *m = SnapshotRequest{} }
func (m *SnapshotRequest) String() string { return proto.CompactTextString(m) }
func (*SnapshotRequest) ProtoMessage()    {}

func (m *SnapshotRequest) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

type OrderEntry struct {
	Id        uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Symbol    string `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Side      Side   `protobuf:"varint,3,opt,name=side,proto3,enum=onymos.engine.v1.Side" json:"side,omitempty"`
	Price     int64  `protobuf:"varint,4,opt,name=price,proto3" json:"price,omitempty"`
	Remaining int64  `protobuf:"varint,5,opt,name=remaining,proto3" json:"remaining,omitempty"`
}

func (m *OrderEntry) Reset()         { *m = OrderEntry{} }
func (m *OrderEntry) String() string { return proto.CompactTextString(m) }
func (*OrderEntry) ProtoMessage()    {}

func (m *OrderEntry) GetId() uint64 {
	if m != nil {
		return m.Id
	}
	return 0
}

func (m *OrderEntry) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *OrderEntry) GetSide() Side {
	if m != nil {
		return m.Side
	}
	return Side_SIDE_BUY
}

func (m *OrderEntry) GetPrice() int64 {
	if m != nil {
		return m.Price
	}
	return 0
}

func (m *OrderEntry) GetRemaining() int64 {
	if m != nil {
		return m.Remaining
	}
	return 0
}

type SnapshotResponse struct {
	Orders []*OrderEntry `protobuf:"bytes,1,rep,name=orders,proto3" json:"orders,omitempty"`
}

func (m *SnapshotResponse) Reset()         { *m = SnapshotResponse{} }
func (m *SnapshotResponse) String() string { return proto.CompactTextString(m) }
func (*SnapshotResponse) ProtoMessage()    {}

func (m *SnapshotResponse) GetOrders() []*OrderEntry {
	if m != nil {
		return m.Orders
	}
	return nil
}

func init() {
	proto.RegisterEnum("onymos.engine.v1.Side", Side_name, Side_value)
	proto.RegisterType((*OrderRecord)(nil), "onymos.engine.v1.OrderRecord")
	proto.RegisterType((*FillEvent)(nil), "onymos.engine.v1.FillEvent")
	proto.RegisterType((*SubmitOrderRequest)(nil), "onymos.engine.v1.SubmitOrderRequest")
	proto.RegisterType((*SubmitOrderResponse)(nil), "onymos.engine.v1.SubmitOrderResponse")
	proto.RegisterType((*TopOfBookRequest)(nil), "onymos.engine.v1.TopOfBookRequest")
	proto.RegisterType((*TopOfBookResponse)(nil), "onymos.engine.v1.TopOfBookResponse")
	proto.RegisterType((*SnapshotRequest)(nil), "onymos.engine.v1.SnapshotRequest")
	proto.RegisterType((*OrderEntry)(nil), "onymos.engine.v1.OrderEntry")
	proto.RegisterType((*SnapshotResponse)(nil), "onymos.engine.v1.SnapshotResponse")
}

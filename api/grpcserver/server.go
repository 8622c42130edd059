// Package grpcserver exposes the order gateway over gRPC.
package grpcserver

import (
	"context"
	"errors"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/pb"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/service"
)

type Server struct {
	pb.UnimplementedOrderGatewayServer

	svc *service.OrderService
	log *zap.Logger

	grpcServer *grpc.Server
}

func New(svc *service.OrderService, log *zap.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Serve blocks until the listener fails or Stop is called.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.grpcServer = grpc.NewServer()
	pb.RegisterOrderGatewayServer(s.grpcServer, s)
	s.log.Info("grpc listening", zap.String("addr", addr))
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

func (s *Server) SubmitOrder(ctx context.Context, req *pb.SubmitOrderRequest) (*pb.SubmitOrderResponse, error) {
	side := orderbook.Buy
	if req.GetSide() == pb.Side_SIDE_SELL {
		side = orderbook.Sell
	}

	seq, err := s.svc.SubmitOrder(ctx, req.GetSymbol(), side, req.GetQuantity(), req.GetPrice())
	switch {
	case err == nil:
		return &pb.SubmitOrderResponse{Sequence: seq, Status: "accepted"}, nil
	case errors.Is(err, orderbook.ErrInvalidOrder):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, orderbook.ErrCapacityExceeded):
		return nil, status.Error(codes.ResourceExhausted, err.Error())
	default:
		s.log.Error("submit failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "submit failed")
	}
}

func (s *Server) GetTopOfBook(ctx context.Context, req *pb.TopOfBookRequest) (*pb.TopOfBookResponse, error) {
	top, ok := s.svc.TopOfBook(req.GetSymbol())
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown symbol %q", req.GetSymbol())
	}
	return &pb.TopOfBookResponse{
		Symbol:   top.Symbol,
		BidPrice: top.BidPrice,
		BidQty:   top.BidQty,
		AskPrice: top.AskPrice,
		AskQty:   top.AskQty,
	}, nil
}

func (s *Server) GetSnapshot(ctx context.Context, req *pb.SnapshotRequest) (*pb.SnapshotResponse, error) {
	resp := &pb.SnapshotResponse{}
	s.svc.OpenOrders(func(symbol string, o *orderbook.Order) {
		if req.GetSymbol() != "" && req.GetSymbol() != symbol {
			return
		}
		side := pb.Side_SIDE_BUY
		if o.Side == orderbook.Sell {
			side = pb.Side_SIDE_SELL
		}
		resp.Orders = append(resp.Orders, &pb.OrderEntry{
			Id:        o.ID,
			Symbol:    symbol,
			Side:      side,
			Price:     o.Price,
			Remaining: o.Remaining(),
		})
	})
	return resp, nil
}

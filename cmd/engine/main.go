package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/grpcserver"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/api/ws"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/orderbook"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/config"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/kafka"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/logging"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/outbox"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/sequence"
	entrywal "github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/wal/entry"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/jobs/broadcaster"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/jobs/feeder"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/jobs/quotes"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/service"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/snapshot"
)

const (
	fillFlushInterval = 200 * time.Millisecond
	epochInterval     = 100 * time.Millisecond
)

// ringRetirer hands fully filled orders to the retire ring so the
// reclaimer can return them to the pool once no reader can see them.
type ringRetirer struct {
	ring *memory.RetireRing
}

func (r ringRetirer) Retire(o *orderbook.Order) {
	// A full ring keeps the order alive; leaking to GC beats reuse
	// while a reference may still be held.
	_ = r.ring.Enqueue(o)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("engine exited", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Memory discipline: one pool of orders, a retire ring between the
	// books and the pool, and an epoch reader for the snapshot walk.
	pool := memory.NewPool(func() *orderbook.Order { return new(orderbook.Order) })
	ring := memory.NewRetireRing(cfg.Engine.RetireRingSize)
	snapReader := memory.NewReaderEpoch()

	reg := market.NewRegistry(cfg.Engine.CapacityPerSide, ringRetirer{ring: ring})
	seq := sequence.New(0)

	wal, err := entrywal.Open(entrywal.Config{
		Dir:             cfg.WAL.Dir,
		SegmentSize:     cfg.WAL.SegmentSize,
		SegmentDuration: cfg.WAL.SegmentDuration,
	})
	if err != nil {
		return err
	}
	defer wal.Close()

	ob, err := outbox.Open(cfg.Outbox.Dir)
	if err != nil {
		return err
	}
	defer ob.Close()

	if err := service.Recover(cfg.WAL.Dir, cfg.Snapshot.Dir, reg, pool, seq, ob, log); err != nil {
		return err
	}

	hub := ws.NewHub(log)
	sink := engine.MultiSink{
		service.NewOutboxSink(ob, log),
		hub,
		service.NewLogSink(log),
	}
	eng := engine.New(sink, seq)
	svc := service.NewOrderService(reg, eng, pool, ring, seq, wal, log, snapReader)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	// Reclamation heartbeat.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(epochInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				svc.AdvanceEpoch()
			}
		}
	}()

	writer, err := snapshot.NewWriter(cfg.Snapshot.Dir)
	if err != nil {
		return err
	}
	snapJob := service.NewSnapshotJob(writer, svc, reg, wal, ob, snapReader, cfg.Snapshot.Interval, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		snapJob.Run(ctx)
	}()

	// Fills go out through Kafka when a broker is reachable; otherwise
	// they accumulate in the outbox until one is.
	bcast, err := broadcaster.New(ob, cfg.Kafka.Brokers, cfg.Kafka.FillsTopic, fillFlushInterval, log)
	if err != nil {
		log.Warn("kafka unavailable, fills retained in outbox", zap.Error(err))
	} else {
		defer bcast.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			bcast.Run(ctx)
		}()

		quotesProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.QuotesTopic)
		defer quotesProducer.Close()
		quotesJob := quotes.NewPublisher(reg, quotesProducer, cfg.Quotes.Interval, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			quotesJob.Run(ctx)
		}()
	}

	grpcSrv := grpcserver.New(svc, log)
	go func() {
		if err := grpcSrv.Serve(cfg.Server.GRPCAddr); err != nil {
			log.Error("grpc server stopped", zap.Error(err))
			stop()
		}
	}()

	httpSrv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: newRouter(svc, hub),
	}
	go func() {
		log.Info("http listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	if cfg.Feeder.Enabled {
		f := feeder.New(svc, feeder.Config{
			Workers:         cfg.Feeder.Workers,
			OrdersPerWorker: cfg.Feeder.OrdersPerWorker,
			Symbols:         cfg.Engine.Symbols,
			MaxQty:          cfg.Feeder.MaxQty,
			MinPrice:        cfg.Feeder.MinPrice,
			MaxPrice:        cfg.Feeder.MaxPrice,
		}, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Run(ctx)
		}()
	}

	log.Info("engine started",
		zap.Strings("symbols", cfg.Engine.Symbols),
		zap.Int("capacity_per_side", cfg.Engine.CapacityPerSide),
	)

	<-ctx.Done()
	log.Info("shutting down")

	grpcSrv.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(shutdownCtx)

	wg.Wait()

	if err := wal.Sync(); err != nil {
		log.Warn("final journal sync failed", zap.Error(err))
	}
	return nil
}

func newRouter(svc *service.OrderService, hub *ws.Hub) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/v1/top/{symbol}", func(w http.ResponseWriter, req *http.Request) {
		symbol := mux.Vars(req)["symbol"]
		top, ok := svc.TopOfBook(symbol)
		if !ok {
			http.Error(w, "unknown symbol", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(top)
	}).Methods(http.MethodGet)

	r.HandleFunc("/ws", hub.ServeWS)

	return r
}

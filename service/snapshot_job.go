package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/market"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/memory"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/outbox"
	entrywal "github.com/DenisPandarakalam/Onymos-StockTradingEngine/infra/wal/entry"
	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/snapshot"
)

const snapshotsToKeep = 3

// SnapshotJob periodically persists book state and trims everything the
// snapshot makes redundant: journal segments below the snapshot seq and
// acknowledged outbox records.
type SnapshotJob struct {
	writer   *snapshot.Writer
	svc      *OrderService
	reg      *market.Registry
	wal      *entrywal.WAL
	outbox   *outbox.Outbox
	reader   *memory.ReaderEpoch
	interval time.Duration
	log      *zap.Logger
}

func NewSnapshotJob(
	writer *snapshot.Writer,
	svc *OrderService,
	reg *market.Registry,
	wal *entrywal.WAL,
	ob *outbox.Outbox,
	reader *memory.ReaderEpoch,
	interval time.Duration,
	log *zap.Logger,
) *SnapshotJob {
	return &SnapshotJob{
		writer:   writer,
		svc:      svc,
		reg:      reg,
		wal:      wal,
		outbox:   ob,
		reader:   reader,
		interval: interval,
		log:      log,
	}
}

func (j *SnapshotJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce()
		}
	}
}

func (j *SnapshotJob) runOnce() {
	// Capture inside the quiesce window so the sequence and the walk
	// agree; only the in-memory collection pauses submitters, the file
	// write happens after. The reader epoch keeps retired orders out
	// of the pool while the walk might still see them.
	j.reader.Enter()
	var snap snapshot.Snapshot
	j.svc.Quiesce(func(seq uint64) {
		snap = snapshot.Capture(seq, j.reg)
	})
	j.reader.Exit()

	path, err := j.writer.Write(snap)
	if err != nil {
		j.log.Error("snapshot failed", zap.Error(err))
		return
	}
	seq := snap.Seq
	j.log.Info("snapshot written", zap.String("path", path), zap.Uint64("seq", seq))

	if err := j.wal.TruncateBefore(seq); err != nil {
		j.log.Warn("journal truncate failed", zap.Error(err))
	}
	if j.outbox != nil {
		if err := j.outbox.TruncateAckedUpTo(seq); err != nil {
			j.log.Warn("outbox truncate failed", zap.Error(err))
		}
	}
	if err := snapshot.Prune(j.writer.Dir(), snapshotsToKeep); err != nil {
		j.log.Warn("snapshot prune failed", zap.Error(err))
	}
}

package perftests

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/medium"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumAuctions     int
	ReadRatio       int // out of 10
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)))]
	p99 = latencies[int(0.99*float64(len(latencies)))]
	return
}

// Benchmark_Load_Marketplace runs multiple scenarios
func Benchmark_Load_Marketplace(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 100, 0, 50, false},
		{"High-Contention-WriteHeavy", 5, 0, 20, false},
		{"Mixed-Workload", 30, 7, 30, false},
		{"ReadHeavy", 30, 9, 20, false},
		{"Edge-Case-SingleAuction", 1, 5, 10, false},
		{"Peak-Burst", 30, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	ctx := context.Background()
	l := newLedger(medium.NewMemory())
	auctions := openAuctions(b, l, s.NumAuctions, 100)

	var totalOps, successfulBids, tooLowBids, failedBids, totalReads int64
	auctionSuccess := make([]int64, s.NumAuctions)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(time.Now().Nanosecond())))

		for pb.Next() {
			auctionIndex := rnd.Intn(s.NumAuctions)
			auctionID := auctions[auctionIndex]
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				_, _ = l.WinningBid(ctx, auctionID)
				atomic.AddInt64(&totalReads, 1)
			} else {
				current, err := l.GetAuction(ctx, auctionID)
				if err != nil {
					b.Errorf("read auction: %v", err)
					return
				}
				bidAmount := current.CurrentPrice + float64(1+rnd.Intn(s.MaxBidIncrement))
				bidderID := fmt.Sprintf("buyer_%d", rnd.Int())
				switch _, err := l.PlaceBid(ctx, auctionID, bidderID, bidAmount); {
				case err == nil:
					atomic.AddInt64(&successfulBids, 1)
					atomic.AddInt64(&auctionSuccess[auctionIndex], 1)
				case errors.Is(err, marketerrors.ErrBidTooLow):
					// outbid between read and write
					atomic.AddInt64(&tooLowBids, 1)
				default:
					b.Logf("bid error: %v", err)
					atomic.AddInt64(&failedBids, 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Auctions: %d | Total Ops: %d | Success Bids: %d | Outbid: %d | Failed Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumAuctions, totalOps, successfulBids, tooLowBids, failedBids, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range auctionSuccess {
		if v > 0 {
			b.Logf("Auction %d successful bids: %d", i, v)
		}
	}

	if failedBids > 0 {
		b.Errorf("%d bids failed with unexpected errors", failedBids)
	}
}

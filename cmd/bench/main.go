// Command bench runs a synthetic workload against one of the eviction
// engines and exposes optional pprof/Prometheus endpoints.
//
// The engines are single-threaded by contract, so the workload follows
// the supported concurrency model: every worker goes through one shared
// mutex around the whole engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/evictcache/cache"
	"github.com/IvanBrykalov/evictcache/internal/util"
	"github.com/IvanBrykalov/evictcache/lfu"
	"github.com/IvanBrykalov/evictcache/lru"
	"github.com/IvanBrykalov/evictcache/lruk"
	pmet "github.com/IvanBrykalov/evictcache/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		policy   = flag.String("policy", "lru", "eviction policy: lru | lruk | lfu")
		provCap  = flag.Int("prov", 25_000, "lruk: provisional counter capacity")
		kThresh  = flag.Int("k", 2, "lruk: promotion threshold")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew); 0 = uniform keys")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", "addr", *pprofAddr)
			logger.Error("pprof server stopped", "err", http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "evictcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("metrics: serving", "addr", *metricsAddr)
		logger.Error("metrics server stopped", "err", http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build the engine ----
	opt := cache.Options[string, string]{Metrics: metrics}
	var (
		c   cache.Cache[string, string]
		err error
	)
	switch *policy {
	case "lru":
		c, err = lru.New[string, string](*capacity, opt)
	case "lruk":
		c, err = lruk.New[string, string](*capacity, *provCap, *kThresh, opt)
	case "lfu":
		c, err = lfu.New[string, string](*capacity, opt)
	default:
		logger.Error("unknown policy (use lru, lruk or lfu)", "policy", *policy)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("engine construction failed", "err", err)
		os.Exit(2)
	}

	// One mutex around the whole engine: the only supported way to drive
	// a single-threaded cache from several goroutines.
	var mu sync.Mutex

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Put("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	keyMask := util.NextPow2(uint64(*keys)) - 1
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workersN; w++ {
		g.Go(func() error {
			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(w)*9973))
			var localZipf *rand.Zipf
			if zipfSVal > 1 {
				localZipf = rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)
			}

			nextKey := func() string {
				if localZipf != nil {
					return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
				}
				return "k:" + strconv.FormatUint(localR.Uint64()&keyMask, 10)
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					k := nextKey()
					mu.Lock()
					_, ok := c.Get(k)
					mu.Unlock()
					if ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					k := nextKey()
					mu.Lock()
					c.Put(k, "v"+strconv.Itoa(localR.Int()))
					mu.Unlock()
				}
			}
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	fmt.Printf("policy=%s cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		*policy, *capacity, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
	st := c.Stats()
	fmt.Printf("Len()=%d  engine hits=%d misses=%d ratio=%.4f\n",
		c.Len(), st.Hits, st.Misses, st.HitRatio())
}

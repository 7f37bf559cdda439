package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-admin/config"
	"github.com/d60-Lab/blog-admin/internal/extension"
	"github.com/d60-Lab/blog-admin/internal/repository"
	"github.com/d60-Lab/blog-admin/internal/service"
	"github.com/d60-Lab/blog-admin/pkg/cache"
	"github.com/d60-Lab/blog-admin/pkg/database"
)

// 压测扩展页状态存储：每个会话随机执行 读取 / 模块切换 / feather 切换 / 选主题
// 用法：STORES=memory,redis,database go run ./cmd/statebench

type opKind int

const (
	opRead opKind = iota
	opModule
	opFeather
	opTheme
)

var opNames = []string{"read", "module", "feather", "theme"}

type scenarioResult struct {
	store     string
	durations []time.Duration
	byOp      map[opKind][]time.Duration
	rejected  int
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())

	const (
		sessionCount  = 200
		opsPerSession = 40
	)

	stores := []string{"memory", "redis", "database"}
	if s := os.Getenv("STORES"); s != "" {
		stores = strings.Split(s, ",")
	}

	fmt.Printf("Extend state store latency (%d sessions × %d ops)\n", sessionCount, opsPerSession)
	for _, name := range stores {
		repo, closeFn, err := openStore(ctx, cfg, strings.TrimSpace(name))
		if err != nil {
			fmt.Printf("%-10s skipped: %v\n", name, err)
			continue
		}
		res := runScenario(ctx, name, service.NewExtendService(repo), sessionCount, opsPerSession)
		closeFn()

		fmt.Printf("%-10s avg=%v p95=%v p99=%v rejected=%d\n",
			res.store, avg(res.durations), pct(res.durations, 0.95), pct(res.durations, 0.99), res.rejected)
		for op := opRead; op <= opTheme; op++ {
			d := res.byOp[op]
			fmt.Printf("  %-8s n=%-5d avg=%v p95=%v\n", opNames[op], len(d), avg(d), pct(d, 0.95))
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config, name string) (repository.ExtendStateRepository, func(), error) {
	switch name {
	case "memory":
		return repository.NewMemoryExtendStateRepository(cfg.Extend.TTL), func() {}, nil
	case "redis":
		client, err := cache.NewRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisExtendStateRepository(client, cfg.Extend.TTL), func() { _ = client.Close() }, nil
	case "database":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.MigrateExtendState(db); err != nil {
			return nil, nil, err
		}
		return repository.NewGormExtendStateRepository(db, cfg.Extend.TTL), func() { _ = database.Close(db) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", name)
	}
}

func runScenario(ctx context.Context, name string, svc service.ExtendService, sessions, ops int) scenarioResult {
	rnd := rand.New(rand.NewSource(42))
	res := scenarioResult{store: name, byOp: map[opKind][]time.Duration{}}

	fmt.Printf("  %s: running...", name)
	for i := 0; i < sessions; i++ {
		sid := uuid.NewString()
		st := extension.DefaultState()
		for j := 0; j < ops; j++ {
			op := opKind(rnd.Intn(4))
			start := time.Now()
			next, err := apply(ctx, svc, sid, st, op, rnd)
			d := time.Since(start)
			if err != nil {
				res.rejected++
			} else {
				st = next
			}
			res.durations = append(res.durations, d)
			res.byOp[op] = append(res.byOp[op], d)
		}
		mustDo(svc.Reset(ctx, sid))
	}
	fmt.Println(" done")
	return res
}

func apply(ctx context.Context, svc service.ExtendService, sid string, st extension.State, op opKind, rnd *rand.Rand) (extension.State, error) {
	switch op {
	case opModule:
		from, list := extension.BucketEnabled, st.Modules.Enabled
		if len(list) == 0 || (len(st.Modules.Disabled) > 0 && rnd.Intn(2) == 0) {
			from, list = extension.BucketDisabled, st.Modules.Disabled
		}
		return svc.ToggleModule(ctx, sid, list[rnd.Intn(len(list))].Name, from)
	case opFeather:
		return svc.ToggleFeather(ctx, sid, st.Feathers[rnd.Intn(len(st.Feathers))].Name)
	case opTheme:
		return svc.SelectTheme(ctx, sid, st.Themes[rnd.Intn(len(st.Themes))].Name)
	default:
		return svc.State(ctx, sid), nil
	}
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

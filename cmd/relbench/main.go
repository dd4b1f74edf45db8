package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/social-schema/config"
	"github.com/d60-Lab/social-schema/internal/model"
	"github.com/d60-Lab/social-schema/internal/repository"
	"github.com/d60-Lab/social-schema/internal/service"
	"github.com/d60-Lab/social-schema/pkg/apperr"
	"github.com/d60-Lab/social-schema/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// pct 返回第 p 分位的耗时
func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// run 用 conc 个 worker 执行 n 次 op，返回每次耗时与总耗时
func run(n, conc int, op func(i int) error) ([]time.Duration, time.Duration, int) {
	if conc > n {
		conc = n
	}
	feed := make(chan int, n)
	for i := 0; i < n; i++ {
		feed <- i
	}
	close(feed)

	out := make(chan time.Duration, n)
	failed := make(chan int, conc)
	t0 := time.Now()
	for w := 0; w < conc; w++ {
		go func() {
			errs := 0
			for i := range feed {
				st := time.Now()
				if err := op(i); err != nil {
					errs++
				}
				out <- time.Since(st)
			}
			failed <- errs
		}()
	}
	errs := 0
	for w := 0; w < conc; w++ {
		errs += <-failed
	}
	close(out)
	total := time.Since(t0)
	recs := make([]time.Duration, 0, n)
	for d := range out {
		recs = append(recs, d)
	}
	return recs, total, errs
}

func report(name string, recs []time.Duration, total time.Duration, errs int) {
	n := len(recs)
	if n == 0 {
		return
	}
	fmt.Printf("%s: total %v, per op %v, p50 %v, p95 %v, p99 %v, errors %d\n",
		name, total, total/time.Duration(n), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99), errs)
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	svc := service.New(db, cfg.JWT)
	ctx := context.Background()

	N := envInt("N", 10000)
	CONC := envInt("CONC", 1)
	PAGE := envInt("PAGE", 50)

	// seed users: 第 0 个为明星用户，其余用户关注并点赞其帖子
	tag := uuid.New().String()[:8]
	users := make([]*model.User, N+1)
	for i := range users {
		users[i] = model.NewUser(fmt.Sprintf("b%s%d", tag, i), "bench", true, time.Now())
	}
	if err := db.CreateInBatches(users, 1000).Error; err != nil {
		panic(err)
	}
	celeb := users[0]
	post := model.NewPost(celeb.ID, "bench post", nil)
	if err := repository.NewPostRepository(db).Create(ctx, post); err != nil {
		panic(err)
	}

	followRecs, followDur, followErrs := run(N, CONC, func(i int) error {
		_, err := svc.Relation.Follow(ctx, users[i+1].ID, celeb.ID)
		return err
	})
	likeRecs, likeDur, likeErrs := run(N, CONC, func(i int) error {
		_, err := svc.Likes.Like(ctx, users[i+1].ID, post.ID)
		return err
	})
	// 重复写入应全部被约束拒绝
	dupRecs, dupDur, _ := run(N/10+1, CONC, func(i int) error {
		_, err := svc.Likes.Like(ctx, users[i+1].ID, post.ID)
		if errors.Is(err, apperr.ErrConstraintViolation) {
			return nil
		}
		return fmt.Errorf("expected constraint violation, got %v", err)
	})

	q0 := time.Now()
	_, _ = svc.Relation.ListFollowers(ctx, celeb.ID, 1, PAGE)
	followersDur := time.Since(q0)

	q1 := time.Now()
	_, _ = svc.Likes.ListByPost(ctx, post.ID, 1, PAGE)
	likesDur := time.Since(q1)

	got := must(svc.Posts.Get(ctx, post.ID))

	fmt.Printf("driver=%s N=%d, CONC=%d, PAGE=%d\n", cfg.Database.Driver, N, CONC, PAGE)
	report("Follow", followRecs, followDur, followErrs)
	report("Like (insert + counter)", likeRecs, likeDur, likeErrs)
	report("Duplicate like", dupRecs, dupDur, 0)
	fmt.Printf("Query followers(%d) latency: %v\n", PAGE, followersDur)
	fmt.Printf("Query likes(%d) latency: %v\n", PAGE, likesDur)
	fmt.Printf("Post likes counter: %d (expected %d)\n", got.Likes, N-likeErrs)

	// 清理：删除明星用户，级联移除帖子、点赞与关注边
	if err := svc.Users.Delete(ctx, celeb.ID); err != nil {
		panic(err)
	}
}

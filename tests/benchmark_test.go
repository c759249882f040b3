package tests

import (
	"context"
	"strconv"
	"testing"

	"github.com/peakline/relcache"
	"github.com/peakline/relcache/internal/source"
	"github.com/peakline/relcache/tests/help"
)

func BenchmarkSet(b *testing.B) {
	c := relcache.New(context.Background(), help.Cfg(), help.Logger(), nil)
	defer c.Close()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Set("user:"+strconv.Itoa(i%256), map[string]any{"id": strconv.Itoa(i), "company_id": "C1"}, 0, "user", "company")
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := relcache.New(context.Background(), help.Cfg(), help.Logger(), nil)
	defer c.Close()
	c.Set("user:42", map[string]any{"id": "42", "company_id": "C1"}, 0)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, ok := c.Get("user:42"); !ok {
			b.Fatal("expected hit")
		}
	}
}

func BenchmarkGetCachedUserWarm(b *testing.B) {
	ctx := context.Background()
	m := source.NewMemory()
	if err := m.Put(ctx, "users", source.Document{"id": "42", "company_id": "C1"}); err != nil {
		b.Fatal(err)
	}

	c := relcache.New(ctx, help.Cfg(), help.Logger(), m)
	defer c.Close()
	c.GetCachedUser(ctx, "42")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if user := c.GetCachedUser(ctx, "42"); user == nil {
			b.Fatal("expected cached user")
		}
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type catalogEntry struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func withTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_FetchesOnMissAndCaches(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	fetches := 0
	var got catalogEntry
	fetch := func() error {
		fetches++
		got = catalogEntry{Name: "Pangong Tso", Slug: "pangong-tso"}
		return nil
	}

	if err := Aside(ctx, DestinationKey("pangong-tso"), &got, time.Minute, fetch); err != nil {
		t.Fatalf("first aside: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetches)
	}

	var cached catalogEntry
	if err := Aside(ctx, DestinationKey("pangong-tso"), &cached, time.Minute, fetch); err != nil {
		t.Fatalf("second aside: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected cache hit, got %d fetches", fetches)
	}
	if cached.Name != "Pangong Tso" {
		t.Fatalf("unexpected cached value: %+v", cached)
	}
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)

	fetches := 0
	var got catalogEntry
	err := Aside(context.Background(), CatalogKey, &got, time.Minute, func() error {
		fetches++
		return nil
	})
	if err != nil {
		t.Fatalf("aside without client: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("expected fetch to run, got %d", fetches)
	}
}

func TestInvalidateDestination(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	if err := SetJSON(ctx, DestinationKey("hanle"), catalogEntry{Name: "Hanle"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetJSON(ctx, CatalogKey, []catalogEntry{{Name: "Hanle"}}, time.Minute); err != nil {
		t.Fatalf("set catalog: %v", err)
	}

	InvalidateDestination(ctx, "hanle")

	var out catalogEntry
	found, err := GetJSON(ctx, DestinationKey("hanle"), &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("destination key should be invalidated")
	}
	var list []catalogEntry
	found, err = GetJSON(ctx, CatalogKey, &list)
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if found {
		t.Fatal("catalog key should be invalidated")
	}
}

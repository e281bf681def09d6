package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	DestinationKeyPrefix = "destination:%s"
	CatalogKey           = "destinations:catalog"
)

const (
	UserTTL        = 5 * time.Minute
	DestinationTTL = 10 * time.Minute
	CatalogTTL     = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DestinationKey(slug string) string {
	return fmt.Sprintf(DestinationKeyPrefix, slug)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDestination(ctx context.Context, slug string) {
	Invalidate(ctx, DestinationKey(slug))
	Invalidate(ctx, CatalogKey)
}

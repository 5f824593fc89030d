package cache

import (
	"context"
	"fmt"
	"time"
)

// Key inventory. Every cached read and its invalidation path goes
// through one of these helpers so the key space stays auditable.
const (
	UserKeyPrefix    = "user:%d"
	ArticleKeyPrefix = "article:%d"
	ProfileKeyPrefix = "profile:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ArticleTTL = 10 * time.Minute
	ProfileTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ArticleKey(articleID uint) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateArticle(ctx context.Context, articleID uint) {
	Invalidate(ctx, ArticleKey(articleID))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}

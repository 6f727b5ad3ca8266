package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	PromptKeyPrefix      = "prompt:%d"
	PromptSlugKeyPrefix  = "prompt:slug:%s"
	PromptListKeyPrefix  = "prompts:%s:%s:%d:%d"
	UnreadCountKeyPrefix = "notifications:unread:%d"
)

const (
	UserTTL        = 5 * time.Minute
	PromptTTL      = 30 * time.Minute
	PromptListTTL  = 1 * time.Minute
	UnreadCountTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PromptKey(promptID uint) string {
	return fmt.Sprintf(PromptKeyPrefix, promptID)
}

func PromptSlugKey(slug string) string {
	return fmt.Sprintf(PromptSlugKeyPrefix, slug)
}

// PromptListKey identifies one page of a public prompt listing. Listings
// scoped to a viewer (liked flags) are never cached, only anonymous pages.
func PromptListKey(category, sort string, page, limit int) string {
	return fmt.Sprintf(PromptListKeyPrefix, category, sort, page, limit)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePrompt(ctx context.Context, promptID uint, slug string) {
	Invalidate(ctx, PromptKey(promptID))
	if slug != "" {
		Invalidate(ctx, PromptSlugKey(slug))
	}
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}

// InvalidatePromptLists drops all cached listing pages. Listing keys are
// parameterized by category/sort/page so a scan is simpler than tracking
// every combination that may hold a stale copy.
func InvalidatePromptLists(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "prompts:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

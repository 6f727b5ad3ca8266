// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"prompthub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPrompts  int
	ShouldClean bool
	// DryRun builds entities and assigns synthetic IDs without touching the DB.
	DryRun bool
	// SkipBcrypt stores the demo password in plain text for fast local seeding.
	SkipBcrypt bool
	// MaxDays controls how far back created_at timestamps are spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

var promptCategories = []models.PromptCategory{
	models.CategoryAI,
	models.CategoryCreative,
	models.CategoryBusiness,
	models.CategoryEducation,
	models.CategoryTechnology,
	models.CategoryOther,
}

var promptTags = []string{
	"chatgpt", "writing", "brainstorm", "summarize", "code-review",
	"marketing", "email", "sql", "roleplay", "translation",
	"study", "interview", "refactor", "seo", "storytelling",
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(10),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Role:        models.RoleUser,
		Status:      models.StatusActive,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPrompt constructs a prompt struct without persisting it. Useful for
// batching. Its created_at is spread over the configured window so listings
// look lived-in.
func (f *Factory) BuildPrompt(user *models.User, overrides ...func(*models.Prompt)) *models.Prompt {
	title := gofakeit.Sentence(5)
	prompt := &models.Prompt{
		Title:       title,
		Slug:        fmt.Sprintf("%s-%s", slug.Make(title), gofakeit.UUID()[:8]),
		Content:     gofakeit.Paragraph(2, 4, 8, "\n"),
		Description: gofakeit.Sentence(12),
		Category:    promptCategories[rand.Intn(len(promptCategories))],
		Tags:        randomTags(),
		Language:    "en",
		IsPublic:    rand.Float32() > 0.1,
		UserID:      user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	prompt.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(prompt)
	}
	return prompt
}

// CreatePrompt constructs and persists a sample `models.Prompt` for the given user.
func (f *Factory) CreatePrompt(user *models.User, overrides ...func(*models.Prompt)) (*models.Prompt, error) {
	prompt := f.BuildPrompt(user, overrides...)

	if f.opts.DryRun {
		f.nextID++
		prompt.ID = f.nextID
		log.Printf("[dry-run] CreatePrompt: user=%d title=%q", prompt.UserID, prompt.Title)
		return prompt, nil
	}

	if err := f.db.Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

// CreatePromptsBatch persists multiple prompts in a single DB call when possible.
func (f *Factory) CreatePromptsBatch(prompts []*models.Prompt) error {
	if f.opts.DryRun {
		for _, p := range prompts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePromptsBatch: %d prompts (no DB write)", len(prompts))
		return nil
	}
	return f.db.Create(&prompts).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided prompt authored by the provided user. Pass a parent to create a reply.
func (f *Factory) CreateComment(user *models.User, prompt *models.Prompt, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(8),
		UserID:   user.ID,
		PromptID: prompt.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `prompt`.
func (f *Factory) CreateLike(user *models.User, prompt *models.Prompt) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{
		UserID:   user.ID,
		PromptID: prompt.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollow persists a follow relationship from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if f.opts.DryRun {
		return nil
	}
	follow := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	return f.db.Create(follow).Error
}

func randomTags() []string {
	n := rand.Intn(4) + 1
	seen := map[string]struct{}{}
	tags := make([]string, 0, n)
	for len(tags) < n {
		t := promptTags[rand.Intn(len(promptTags))]
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

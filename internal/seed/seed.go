package seed

import (
	"fmt"
	"log"
	"math/rand"

	"prompthub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
	}
}

// ClearAll truncates every seeded table so a run starts from a clean slate.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE moderation_items, notifications, follows, likes, comments, prompts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedCommunity creates the user base: a handful of well-known accounts plus
// generated ones, then wires a follow graph between them.
func (s *Seeder) SeedCommunity(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)

	users := make([]*models.User, 0, numUsers)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include a known admin and a demo account for manual testing
	baseUsers := []models.User{
		{
			Username: "admin", Email: "admin@example.com",
			Password: string(hashedPassword),
			Role:     models.RoleAdmin, Status: models.StatusActive,
			DisplayName: "Site Admin", Bio: "Keeping the lights on.",
		},
		{
			Username: "demo", Email: "demo@example.com",
			Password: string(hashedPassword),
			Role:     models.RoleUser, Status: models.StatusActive,
			DisplayName: "Demo User", Bio: "Just here to try things out.",
		},
	}
	for i := range baseUsers {
		if err := s.db.Create(&baseUsers[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create base user %s: %w", baseUsers[i].Username, err)
		}
		users = append(users, &baseUsers[i])
	}

	for i := len(users); i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	if err := s.seedFollowGraph(users); err != nil {
		return nil, err
	}

	return users, nil
}

// seedFollowGraph gives each user a random set of people to follow so feeds
// and follower counts have something to show.
func (s *Seeder) seedFollowGraph(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		n := rand.Intn(min(8, len(users)-1)) + 1
		seen := map[uint]struct{}{follower.ID: {}}
		for j := 0; j < n; j++ {
			followee := users[rand.Intn(len(users))]
			if _, dup := seen[followee.ID]; dup {
				continue
			}
			seen[followee.ID] = struct{}{}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				log.Printf("Failed to create follow %d->%d: %v", follower.ID, followee.ID, err)
			}
		}
	}
	return nil
}

// SeedEngagement creates prompts for the given users along with comments,
// replies and likes.
func (s *Seeder) SeedEngagement(users []*models.User, numPrompts int) ([]*models.Prompt, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed prompts for")
	}
	log.Printf("Seeding %d prompts...", numPrompts)

	prompts := make([]*models.Prompt, 0, numPrompts)
	for i := 0; i < numPrompts; i++ {
		author := users[rand.Intn(len(users))]
		prompt, err := s.factory.CreatePrompt(author)
		if err != nil {
			return nil, fmt.Errorf("failed to create prompt: %w", err)
		}
		prompts = append(prompts, prompt)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d prompts...", i)
		}
	}

	for _, prompt := range prompts {
		// Top-level comments with the occasional reply thread
		numComments := rand.Intn(5)
		for j := 0; j < numComments; j++ {
			commenter := users[rand.Intn(len(users))]
			comment, err := s.factory.CreateComment(commenter, prompt, nil)
			if err != nil {
				log.Printf("Failed to create comment: %v", err)
				continue
			}
			if rand.Float32() < 0.3 {
				replier := users[rand.Intn(len(users))]
				if _, err := s.factory.CreateComment(replier, prompt, comment); err != nil {
					log.Printf("Failed to create reply: %v", err)
				}
			}
		}

		// Likes: each prompt gets a random slice of the user base, one per user
		numLikes := rand.Intn(min(10, len(users)))
		seen := map[uint]struct{}{}
		for j := 0; j < numLikes; j++ {
			liker := users[rand.Intn(len(users))]
			if _, dup := seen[liker.ID]; dup {
				continue
			}
			seen[liker.ID] = struct{}{}
			if err := s.factory.CreateLike(liker, prompt); err != nil {
				log.Printf("Failed to create like: %v", err)
			}
		}
	}

	return prompts, nil
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/farm-helpdesk/internal/auth"
	"github.com/spec-kit/farm-helpdesk/internal/config"
	"github.com/spec-kit/farm-helpdesk/internal/domain"
	"github.com/spec-kit/farm-helpdesk/internal/observability"
	"github.com/spec-kit/farm-helpdesk/internal/persistence"
	"github.com/spec-kit/farm-helpdesk/internal/repository"
)

type seedIssue struct {
	farmerIndex   int
	title         string
	description   string
	category      string
	status        domain.IssueStatus
	priority      domain.IssuePriority
	location      string
	adminResponse string
	summary       string
	createdAt     time.Time
	updatedAt     time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("seeding requires POSTGRES_DSN")
	}

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := clearData(ctx, pool); err != nil {
		logger.Fatal("failed to clear existing data", zap.Error(err))
	}
	logger.Info("cleared existing data")

	userRepo := repository.NewUserRepository(pool)
	issueRepo := repository.NewIssueRepository(pool)

	farmers, err := seedUsers(ctx, userRepo, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to seed users", zap.Error(err))
	}
	logger.Info("seeded users", zap.Int("farmers", len(farmers)))

	count, err := seedIssues(ctx, pool, issueRepo, farmers)
	if err != nil {
		logger.Fatal("failed to seed issues", zap.Error(err))
	}
	logger.Info("seeded issues", zap.Int("count", count))
}

func clearData(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `DELETE FROM issues`); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, `DELETE FROM users`)
	return err
}

func seedUsers(ctx context.Context, users repository.UserRepository, bcryptCost int) ([]domain.User, error) {
	accounts := []struct {
		name     string
		email    string
		password string
		role     domain.UserRole
		phone    string
		district string
	}{
		{"Admin User", "admin@farmhelpdesk.example", "admin123", domain.UserRoleAdmin, "+91 9876543210", "Varanasi"},
		{"Ram Prasad", "ram@farmer.example", "farmer123", domain.UserRoleFarmer, "+91 9876543211", "Varanasi"},
		{"Sita Devi", "sita@farmer.example", "farmer123", domain.UserRoleFarmer, "+91 9876543212", "Gorakhpur"},
		{"Mohan Singh", "mohan@farmer.example", "farmer123", domain.UserRoleFarmer, "+91 9876543213", "Lucknow"},
	}

	var farmers []domain.User
	for _, acct := range accounts {
		hash, err := auth.HashPassword(acct.password, bcryptCost)
		if err != nil {
			return nil, err
		}
		user := &domain.User{
			Name:         acct.name,
			Email:        acct.email,
			PasswordHash: hash,
			Role:         acct.role,
			Phone:        acct.phone,
			District:     acct.district,
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, err
		}
		if user.Role == domain.UserRoleFarmer {
			farmers = append(farmers, *user)
		}
	}
	return farmers, nil
}

func seedIssues(ctx context.Context, pool *pgxpool.Pool, issues repository.IssueRepository, farmers []domain.User) (int, error) {
	now := time.Now()
	month := func(monthsAgo, dayOffset int) time.Time {
		return now.AddDate(0, -monthsAgo, dayOffset)
	}

	records := []seedIssue{
		{
			farmerIndex: 0,
			title:       "Tomato leaves turning yellow and curling",
			description: "My tomato plants are showing yellowing of leaves with curling edges. The problem started 2 weeks ago and is spreading to other plants.",
			category:    "Pest Management",
			status:      domain.IssueStatusPending,
			priority:    domain.IssuePriorityHigh,
			location:    "Biharipur, Varanasi",
			summary:     "Tomato leaf curl virus suspected. Yellowing and curling of leaves spreading across plants. Immediate isolation and neem oil application recommended.",
			createdAt:   month(1, 0),
			updatedAt:   month(1, 0),
		},
		{
			farmerIndex:   1,
			title:         "Wheat crop showing orange rust spots",
			description:   "Rust spots appearing on wheat leaves. The spots are orange in color and spreading rapidly. Need immediate advice.",
			category:      "Disease Management",
			status:        domain.IssueStatusInProgress,
			priority:      domain.IssuePriorityUrgent,
			location:      "Gorakhpur",
			adminResponse: "Apply systemic fungicide immediately. Ensure proper field drainage.",
			summary:       "Wheat rust disease identified. Orange spots spreading rapidly on leaves. Fungicide application and improved drainage are critical.",
			createdAt:     month(1, -4),
			updatedAt:     month(1, -2),
		},
		{
			farmerIndex:   2,
			title:         "Rice plants showing stunted growth",
			description:   "Rice seedlings are not growing properly. They appear stunted and yellowish. Soil test shows normal pH but plants are weak.",
			category:      "Nutrient Management",
			status:        domain.IssueStatusResolved,
			priority:      domain.IssuePriorityMedium,
			location:      "Lucknow",
			adminResponse: "Zinc deficiency detected. Apply zinc sulfate at 25 kg/ha.",
			summary:       "Rice seedling stunting likely due to zinc deficiency despite normal soil pH. Zinc sulfate foliar spray recommended.",
			createdAt:     month(2, 0),
			updatedAt:     month(2, 10),
		},
		{
			farmerIndex:   0,
			title:         "Cotton bollworm infestation",
			description:   "Cotton plants are being damaged by bollworms. Holes in the bolls and larvae feeding on them.",
			category:      "Pest Management",
			status:        domain.IssueStatusResolved,
			priority:      domain.IssuePriorityHigh,
			location:      "Biharipur, Varanasi",
			adminResponse: "Use neem-based bio-pesticide. Set up pheromone traps.",
			summary:       "Cotton bollworm infestation with visible boll damage and larvae. Bio-pesticide and pheromone traps are effective control measures.",
			createdAt:     month(3, 0),
			updatedAt:     month(3, 8),
		},
		{
			farmerIndex: 1,
			title:       "Onion crop affected by fungal infection",
			description: "Onion bulbs are rotting in the field. White fungal growth visible on the bulbs.",
			category:    "Disease Management",
			status:      domain.IssueStatusPending,
			priority:    domain.IssuePriorityHigh,
			location:    "Gorakhpur",
			summary:     "White rot fungal infection on onion bulbs causing field-level rotting. Immediate removal of affected bulbs and fungicide drench needed.",
			createdAt:   month(0, -5),
			updatedAt:   month(0, -5),
		},
		{
			farmerIndex: 2,
			title:       "Irrigation water shortage for sugarcane",
			description: "Canal water supply has been irregular this season. Sugarcane crop needs consistent irrigation at this growth stage.",
			category:    "Irrigation",
			status:      domain.IssueStatusInProgress,
			priority:    domain.IssuePriorityMedium,
			location:    "Lucknow",
			summary:     "Irregular canal supply threatening sugarcane at a water-critical stage. Drip irrigation or scheduled tanker supply advised as stopgap.",
			createdAt:   month(0, -12),
			updatedAt:   month(0, -9),
		},
	}

	for _, rec := range records {
		issue := &domain.Issue{
			FarmerID:    farmers[rec.farmerIndex].ID,
			Title:       rec.title,
			Description: rec.description,
			Category:    rec.category,
			Status:      rec.status,
			Priority:    rec.priority,
		}
		if rec.location != "" {
			issue.Location = &rec.location
		}
		if rec.adminResponse != "" {
			issue.AdminResponse = &rec.adminResponse
		}
		if rec.summary != "" {
			issue.Summary = &rec.summary
		}
		if err := issues.Create(ctx, issue); err != nil {
			return 0, err
		}
		// backdate timestamps so trend charts have history; admin_response
		// is set here too since insert only covers submission fields
		if _, err := pool.Exec(ctx,
			`UPDATE issues SET created_at=$1, updated_at=$2, admin_response=$3 WHERE id=$4`,
			rec.createdAt, rec.updatedAt, issue.AdminResponse, issue.ID,
		); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

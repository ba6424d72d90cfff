package main

import (
	"context"
	"errors"
	"log"
	"os"

	"blog-admin-be/internal/config"
	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/internal/service"
	"blog-admin-be/pkg/database"
)

type samplePost struct {
	Title    string
	Category string
	Status   string
	Tags     []string
	Content  string
}

var samplePosts = []samplePost{
	{
		Title:    "A weekend in Lisbon",
		Category: "Travel",
		Status:   "published",
		Tags:     []string{"portugal", "city"},
		Content:  `[{"type":"heading-one","children":[{"text":"A weekend in Lisbon"}]},{"type":"paragraph","children":[{"text":"Trams, "},{"text":"pasteis de nata","bold":true},{"text":" and a lot of hills."}]},{"type":"bulleted-list","children":[{"type":"list-item","children":[{"text":"Alfama"}]},{"type":"list-item","children":[{"text":"Belem"}]}]}]`,
	},
	{
		Title:    "Five-minute ramen upgrades",
		Category: "Food",
		Status:   "published",
		Tags:     []string{"quick", "noodles"},
		Content:  `[{"type":"paragraph","children":[{"text":"Start with a "},{"text":"soft egg","italic":true},{"text":"."}]},{"type":"numbered-list","children":[{"type":"list-item","children":[{"text":"Boil the noodles"}]},{"type":"list-item","children":[{"text":"Add miso and butter"}]}]}]`,
	},
	{
		Title:    "Draft: notes on running shoes",
		Category: "Health",
		Status:   "draft",
		Tags:     []string{"running"},
		Content:  "<p>Imported from the old CMS, not yet converted.</p>",
	},
}

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	uowFactory := unitofwork.NewRepositoryFactory(db)
	contentService := service.NewContentService(sysLogger, cfg.Content.ExcerptLength)
	userService := service.NewUserService(uowFactory, nil, nil, sysLogger)
	postService := service.NewPostService(uowFactory, contentService, nil, nil, sysLogger)

	log.Println("Seeding admin user...")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	admin, err := userService.Create(ctx, &dto.CreateUserRequest{
		Name:     "Site",
		Surname:  "Admin",
		Email:    getEnv("SEED_ADMIN_EMAIL", "admin@blog.local"),
		Password: password,
		Role:     string(entity.UserRoleAdmin),
	})
	if errors.Is(err, service.ErrEmailExists) {
		log.Println("Admin user already exists, skipping seed")
		return
	}
	if err != nil {
		log.Fatal("Error: Failed to create admin user:", err)
	}
	log.Printf("Created admin: %s", admin.Email)

	actor := entity.Actor{Id: admin.Id, Role: entity.UserRoleAdmin}
	for _, p := range samplePosts {
		post, err := postService.Create(ctx, actor, &dto.CreatePostRequest{
			Title:    p.Title,
			Content:  p.Content,
			Tags:     p.Tags,
			Category: p.Category,
			Status:   p.Status,
		})
		if err != nil {
			log.Printf("Error creating post '%s': %v", p.Title, err)
			continue
		}
		log.Printf("Created post: %s (%s)", post.Title, post.Id)
	}

	log.Println("Seeding completed!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

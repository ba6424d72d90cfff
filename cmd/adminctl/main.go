package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/pkg/client"
	"blog-admin-be/pkg/crudstate"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const usage = `adminctl <command> [flags]

commands:
  posts    list posts      (-q, -category, -status, -page, -size, -sort, -desc)
  post     show a post     (-id, -format html|markdown|text|json)
  users    list users      (-q, -role, -page, -size)
  stats    dashboard counters
  logs     system logs     (-level, -limit)

env: ADMINCTL_URL, ADMINCTL_EMAIL, ADMINCTL_PASSWORD`

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func fail(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(1)
}

func main() {
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(getEnv("ADMINCTL_URL", "http://localhost:3000/api"))
	auth := client.NewAuthStore(c)
	if err := auth.Login(ctx, getEnv("ADMINCTL_EMAIL", "admin@blog.local"), getEnv("ADMINCTL_PASSWORD", "admin123")); err != nil {
		fail("Login failed: %s", auth.State.Get(client.OpLogin).Error)
	}
	color.Cyan("Signed in as %s (%s)", auth.User().Email, auth.User().Role)

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "posts":
		listPosts(ctx, c, args)
	case "post":
		showPost(ctx, c, args)
	case "users":
		listUsers(ctx, c, args)
	case "stats":
		stats, err := c.Stats(ctx)
		if err != nil {
			fail("Failed: %s", crudstate.ErrorMessage(err))
		}
		prettyPrint(stats)
	case "logs":
		showLogs(ctx, c, args)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func listPosts(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	q := fs.String("q", "", "search text")
	category := fs.String("category", "", "category filter")
	status := fs.String("status", "", "published or draft")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", client.DefaultPageSize, "page size")
	sort := fs.String("sort", "", "sort column")
	desc := fs.Bool("desc", false, "sort descending")
	fs.Parse(args)

	table := client.NewTableState()
	table.SetPageIndex(*page - 1)
	table.SetPageSize(*size)
	table.SetGlobalFilter(*q)
	table.SetColumnFilter("category", *category)
	table.SetColumnFilter("status", *status)
	if *sort != "" {
		table.SetSorting([]client.SortRule{{Id: *sort, Desc: *desc}})
	}

	store := client.NewPostStore(c)
	if err := store.FetchPosts(ctx, table.PostQuery()); err != nil {
		fail("Failed: %s", store.State.Get(crudstate.OpFetch).Error)
	}

	color.Green("%d posts (page %d)", store.Total(), table.PageIndex()+1)
	for _, p := range store.Posts() {
		statusColor := color.New(color.FgYellow)
		if p.Status == "published" {
			statusColor = color.New(color.FgGreen)
		}
		fmt.Printf("%s  %-10s %-40s ", p.Id, p.Category, p.Title)
		statusColor.Println(p.Status)
	}
}

func showPost(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	rawId := fs.String("id", "", "post id")
	format := fs.String("format", dto.ContentFormatMarkdown, "content format")
	fs.Parse(args)

	id, err := uuid.Parse(*rawId)
	if err != nil {
		fail("Invalid -id: %v", err)
	}

	store := client.NewPostStore(c)
	if err := store.FetchPost(ctx, id); err != nil {
		fail("Failed: %s", store.State.Get(crudstate.OpItem).Error)
	}
	post := store.Post()
	color.Yellow("%s [%s, %s]", post.Title, post.Category, post.Status)

	content, err := c.PostContent(ctx, id, *format)
	if err != nil {
		fail("Failed to render content: %s", crudstate.ErrorMessage(err))
	}
	if !content.Structured {
		color.Magenta("(legacy content, shown as plain text)")
	}
	if *format == dto.ContentFormatJSON {
		prettyPrint(content.Document)
	} else {
		fmt.Println(content.Body)
	}

	if len(post.Comments) > 0 {
		color.Cyan("\n%d comments", len(post.Comments))
		for _, cm := range post.Comments {
			fmt.Printf("- %s: %s\n", cm.Title, cm.Content)
		}
	}
}

func listUsers(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	q := fs.String("q", "", "search text")
	role := fs.String("role", "", "admin or user")
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", client.DefaultPageSize, "page size")
	fs.Parse(args)

	table := client.NewTableState()
	table.SetPageIndex(*page - 1)
	table.SetPageSize(*size)
	table.SetGlobalFilter(*q)
	table.SetColumnFilter("role", *role)

	store := client.NewUserStore(c)
	if err := store.FetchUsers(ctx, table.UserQuery()); err != nil {
		fail("Failed: %s", store.State.Get(crudstate.OpFetch).Error)
	}

	color.Green("%d users", store.Total())
	for _, u := range store.Users() {
		fmt.Printf("%s  %-6s %s %s <%s>\n", u.Id, u.Role, u.Name, u.Surname, u.Email)
	}
}

func showLogs(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	level := fs.String("level", "", "DEBUG, INFO, WARN or ERROR")
	limit := fs.Int("limit", 20, "number of entries")
	fs.Parse(args)

	logs, err := c.Logs(ctx, dto.LogListQuery{Level: *level, Limit: *limit})
	if err != nil {
		fail("Failed: %s", crudstate.ErrorMessage(err))
	}
	for _, entry := range logs {
		line := fmt.Sprintf("%s %-5s [%s] %s", entry.Timestamp, entry.Level, entry.Module, entry.Message)
		switch entry.Level {
		case "ERROR":
			color.Red("%s", line)
		case "WARN":
			color.Yellow("%s", line)
		default:
			fmt.Println(line)
		}
	}
}

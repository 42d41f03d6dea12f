package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/config"
	"github.com/quillworks/quill/internal/content"
	"github.com/quillworks/quill/internal/gateway"
	"github.com/quillworks/quill/internal/logger"
	"github.com/quillworks/quill/internal/model"
	"github.com/quillworks/quill/internal/render"
	"github.com/quillworks/quill/internal/session"
	"github.com/quillworks/quill/internal/storage"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	l := logger.New("info")
	setLoggers(l)

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if err := config.LoadConfig(configPath); err != nil {
		l.Fatal().Err(err).Msg("Error loading config")
	}

	l = logger.New(config.AppConfig.Logging.Level)
	setLoggers(l)

	client := gateway.NewClient(http.DefaultClient, gateway.Options{
		Endpoint:   config.AppConfig.Backend.Endpoint,
		Project:    config.AppConfig.Backend.Project,
		Database:   config.AppConfig.Backend.Database,
		Collection: config.AppConfig.Backend.Collection,
		Bucket:     config.AppConfig.Backend.Bucket,
	})

	var store storage.Store
	switch config.AppConfig.Storage.Driver {
	case "s3":
		store = storage.NewS3Store(
			config.AppConfig.Storage.S3.AccessKeyID,
			config.AppConfig.Storage.S3.SecretAccessKey,
			config.AppConfig.Storage.S3.Endpoint,
			config.AppConfig.Storage.S3.Bucket,
		)
	default:
		store = storage.NewBucketStore(client)
	}

	sessions := session.NewManager(client)
	posts := content.NewRepository(client, store)

	runShell(sessions, posts)
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(l)
	gateway.SetLogger(l)
	session.SetLogger(l)
	content.SetLogger(l)
	storage.SetLogger(l)
	render.SetLogger(l)
}

func runShell(sessions *session.Manager, posts *content.Repository) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("quill - type 'help' for commands, 'quit' to exit.")

	for {
		fmt.Print(promptStyle.Render("quill> "))
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			fmt.Println("commands: signup, login, whoami, logout, list, read <id>, new, rm <id>, quit")
		case "signup":
			email := prompt(scanner, "email: ")
			password := prompt(scanner, "password: ")
			name := prompt(scanner, "name: ")
			sess, err := sessions.CreateAccount(ctx, email, password, name)
			if reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("signed up as " + string(sess.UserID)))
		case "login":
			email := prompt(scanner, "email: ")
			password := prompt(scanner, "password: ")
			sess, err := sessions.Login(ctx, email, password)
			if reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("logged in as " + string(sess.UserID)))
		case "whoami":
			user, err := sessions.CurrentUser(ctx)
			if reportError(err) {
				continue
			}
			if user == nil {
				fmt.Println(outputStyle.Render("not logged in"))
				continue
			}
			fmt.Println(outputStyle.Render(fmt.Sprintf("%s <%s>", user.Name, user.Email)))
		case "logout":
			if err := sessions.Logout(ctx); reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("logged out"))
		case "list":
			// Only active posts, matching what the reading surface shows.
			list, err := posts.List(ctx, []string{`equal("status","active")`})
			if reportError(err) {
				continue
			}
			if len(list) == 0 {
				fmt.Println(outputStyle.Render("no posts"))
				continue
			}
			for _, p := range list {
				fmt.Println(outputStyle.Render(fmt.Sprintf("%-30s %-10s %s", p.ID, p.Status, p.Title)))
			}
		case "read":
			if len(args) != 1 {
				fmt.Println(errorStyle.Render("usage: read <id>"))
				continue
			}
			post, err := posts.Get(ctx, model.PostID(args[0]))
			if reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("# " + post.Title))
			if post.FeaturedImage != "" {
				fmt.Println(outputStyle.Render("image: " + posts.PreviewURL(post.FeaturedImage)))
			}
			fmt.Println(string(posts.RenderPreview(post, config.AppConfig.Render.SyntaxTheme)))
		case "new":
			title := prompt(scanner, "title: ")
			body := prompt(scanner, "body (markdown): ")
			imagePath := prompt(scanner, "image path: ")
			image, err := os.ReadFile(imagePath)
			if err != nil {
				fmt.Println(errorStyle.Render("cannot read image: " + err.Error()))
				continue
			}
			user, err := sessions.CurrentUser(ctx)
			if reportError(err) {
				continue
			}
			if user == nil {
				fmt.Println(errorStyle.Render("log in first"))
				continue
			}
			post, err := posts.Create(ctx, content.PostFields{
				Title:     title,
				Content:   body,
				Image:     image,
				ImageName: imagePath,
			}, user.ID)
			if reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("created " + string(post.ID)))
		case "rm":
			if len(args) != 1 {
				fmt.Println(errorStyle.Render("usage: rm <id>"))
				continue
			}
			if err := posts.Delete(ctx, model.PostID(args[0])); reportError(err) {
				continue
			}
			fmt.Println(outputStyle.Render("deleted " + args[0]))
		case "quit", "exit":
			return
		default:
			fmt.Println(errorStyle.Render("unknown command: " + cmd))
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(promptStyle.Render(label))
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// reportError prints the failure message verbatim; no retry happens here.
func reportError(err error) bool {
	if err == nil {
		return false
	}
	fmt.Println(errorStyle.Render(err.Error()))
	return true
}

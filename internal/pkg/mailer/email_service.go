package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	minifier  = minify.New()
)

func init() {
	minifier.AddFunc("text/html", html.Minify)
}

type IEmailService interface {
	SendWelcome(toEmail, name string) error
}

type WelcomeData struct {
	SiteName string
	Name     string
	Email    string
	LoginURL string
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		clientURL:   strings.TrimRight(clientURL, "/"),
	}
}

// RenderWelcome executes the welcome template and minifies the result.
func RenderWelcome(data WelcomeData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "welcome.html", data); err != nil {
		return "", err
	}
	out, err := minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *emailService) SendWelcome(toEmail, name string) error {
	body, err := RenderWelcome(WelcomeData{
		SiteName: s.senderName,
		Name:     name,
		Email:    toEmail,
		LoginURL: s.clientURL + "/login",
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Welcome to %s", s.senderName))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send welcome email to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Welcome email sent to %s\n", toEmail)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"slidecraft/internal/uploader"
	"slidecraft/pkg/config"
)

var (
	authInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	authSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	authErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const driveTokenPath = "./drive_token.json"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with external services",
	Long:  `Authenticate with Google Drive using credentials from .env`,
}

var authDriveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Authenticate with Google Drive (OAuth)",
	Long:  `Complete the Google Drive OAuth flow using credentials from the .env file.`,
	RunE:  runAuthDrive,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check authentication status for all services",
	Long:  `Verify which services are configured and authenticated.`,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authDriveCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(authInfoStyle.Render("\nService Authentication Status:\n"))

	switch cfg.LLM.Provider {
	case config.ProviderGroq:
		if cfg.GroqAPIKey != "" {
			fmt.Println(authSuccessStyle.Render("✓ Groq: API key configured"))
		} else {
			fmt.Println(authErrorStyle.Render("✗ Groq: missing GROQ_API_KEY"))
		}
	case config.ProviderDeepSeek:
		if cfg.DeepSeekAPIKey != "" {
			fmt.Println(authSuccessStyle.Render("✓ DeepSeek: API key configured"))
		} else {
			fmt.Println(authErrorStyle.Render("✗ DeepSeek: missing DEEPSEEK_API_KEY"))
		}
	default:
		if cfg.OpenAIAPIKey != "" {
			fmt.Println(authSuccessStyle.Render("✓ OpenAI: API key configured"))
		} else {
			fmt.Println(authErrorStyle.Render("✗ OpenAI: missing OPENAI_API_KEY"))
		}
	}

	if cfg.PexelsAPIKey != "" {
		fmt.Println(authSuccessStyle.Render("✓ Pexels: API key configured"))
	} else {
		fmt.Println(authInfoStyle.Render("○ Pexels: not configured (optional, slides get placeholders)"))
	}

	if cfg.DriveClientID != "" && cfg.DriveClientSecret != "" {
		if _, err := os.Stat(cfg.DriveTokenPath); err == nil {
			fmt.Println(authSuccessStyle.Render("✓ Google Drive: authenticated (token exists)"))
		} else {
			fmt.Println(authErrorStyle.Render("✗ Google Drive: credentials set, but not authenticated"))
			fmt.Println(authInfoStyle.Render("  Run: slidecraft auth drive"))
		}
	} else {
		fmt.Println(authInfoStyle.Render("○ Google Drive: not configured (optional)"))
	}

	if cfg.GCSBucket != "" {
		fmt.Println(authSuccessStyle.Render("✓ Cloud Storage: archive bucket " + cfg.GCSBucket))
	} else {
		fmt.Println(authInfoStyle.Render("○ Cloud Storage: not configured (optional)"))
	}

	if cfg.GCPProject != "" {
		fmt.Println(authSuccessStyle.Render("✓ Secret Manager: project " + cfg.GCPProject))
	} else {
		fmt.Println(authInfoStyle.Render("○ Secret Manager: not configured (optional)"))
	}

	fmt.Println()
	return nil
}

func runAuthDrive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DriveClientID == "" || cfg.DriveClientSecret == "" {
		return fmt.Errorf("DRIVE_CLIENT_ID and DRIVE_CLIENT_SECRET must be set in .env")
	}

	return runDriveAuth(cfg.DriveClientID, cfg.DriveClientSecret, cfg.DriveTokenPath)
}

// runDriveAuth completes the OAuth flow with a temporary callback server
// on port 8080, matching the redirect URL registered for the client.
func runDriveAuth(clientID, clientSecret, tokenPath string) error {
	auth := uploader.NewDriveAuth(clientID, clientSecret, tokenPath)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	listener, err := net.Listen("tcp", ":8080")
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
	}

	server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/callback" {
			http.NotFound(w, r)
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no code in callback")
			_, _ = fmt.Fprintf(w, "<html><body><h1>Error</h1><p>No authorization code received.</p></body></html>")
			return
		}

		codeChan <- code
		_, _ = fmt.Fprintf(w, "<html><body><h1>Success!</h1><p>You can close this window and return to the terminal.</p></body></html>")
	})

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	authURL := auth.GetAuthURL()
	fmt.Println(authInfoStyle.Render("\nOpening browser for Google Drive authentication..."))
	fmt.Println(authInfoStyle.Render("If browser doesn't open, visit:\n" + authURL))

	_ = browser.OpenURL(authURL)

	fmt.Println(authInfoStyle.Render("\nWaiting for authentication..."))

	select {
	case code := <-codeChan:
		if err := auth.Exchange(context.Background(), code); err != nil {
			return err
		}

		fmt.Println(authSuccessStyle.Render("✓ Google Drive authentication complete"))
		fmt.Println(authSuccessStyle.Render("  Token saved to: " + tokenPath))
		return nil

	case err := <-errChan:
		return err

	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authentication timed out")
	}
}

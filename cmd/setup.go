package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"slidecraft/pkg/config"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Slidecraft",
	Long:  `Configure API keys, create directories, and set up the environment for Slidecraft.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🎨 Slidecraft Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func createDirectories() error {
	dirs := []string{"output", ".cache/images"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureProvider(env); err != nil {
		return err
	}

	if err := configurePexels(env); err != nil {
		return err
	}

	if err := configureDrive(env); err != nil {
		return err
	}

	if err := configureGCP(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureProvider(env map[string]string) error {
	var provider string
	if err := huh.NewSelect[string]().
		Title("Text generation provider").
		Options(
			huh.NewOption("OpenAI (default)", config.ProviderOpenAI),
			huh.NewOption("Groq", config.ProviderGroq),
			huh.NewOption("DeepSeek", config.ProviderDeepSeek),
		).
		Value(&provider).
		Run(); err != nil {
		return err
	}

	keyEnv := map[string]struct{ name, url string }{
		config.ProviderOpenAI:   {"OPENAI_API_KEY", "https://platform.openai.com/api-keys"},
		config.ProviderGroq:     {"GROQ_API_KEY", "https://console.groq.com/keys"},
		config.ProviderDeepSeek: {"DEEPSEEK_API_KEY", "https://platform.deepseek.com/api_keys"},
	}[provider]

	var key string
	if err := huh.NewInput().
		Title(keyEnv.name).
		Description(keyEnv.url).
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Validate(required(keyEnv.name)).
		Run(); err != nil {
		return err
	}
	env[keyEnv.name] = strings.TrimSpace(key)

	if provider != config.ProviderOpenAI {
		return writeProviderConfig(provider)
	}
	return nil
}

// writeProviderConfig records a non-default provider choice in
// config.yaml so Load picks it up.
func writeProviderConfig(provider string) error {
	if _, err := os.Stat("config.yaml"); err == nil {
		fmt.Println(infoStyle.Render("config.yaml exists; set llm.provider: " + provider + " there"))
		return nil
	}
	content := fmt.Sprintf("llm:\n  provider: %s\n", provider)
	if err := os.WriteFile("config.yaml", []byte(content), 0644); err != nil {
		return fmt.Errorf("write config.yaml: %w", err)
	}
	fmt.Println(successStyle.Render("✓ Created config.yaml"))
	return nil
}

func configurePexels(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Pexels stock photos?").
		Description("Slides marked for images get a photo instead of a placeholder (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var apiKey string
	if err := huh.NewInput().
		Title("Pexels API Key").
		Description("https://www.pexels.com/api/").
		Value(&apiKey).
		Run(); err != nil {
		return err
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		env["PEXELS_API_KEY"] = apiKey
	}
	return nil
}

func configureDrive(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Google Drive uploads?").
		Description("Finished decks can be uploaded and shared (optional)").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	fmt.Println(infoStyle.Render(`
To create OAuth credentials:
1. Go to https://console.cloud.google.com/apis/credentials
2. Click "Create Credentials" → "OAuth client ID"
3. Choose "Desktop app" as application type
4. Copy the Client ID and Client Secret
`))

	var clientID, clientSecret string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Drive Client ID").
				Value(&clientID),
			huh.NewInput().
				Title("Drive Client Secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)

	if clientID != "" {
		env["DRIVE_CLIENT_ID"] = clientID
	}
	if clientSecret != "" {
		env["DRIVE_CLIENT_SECRET"] = clientSecret
	}

	if clientID != "" && clientSecret != "" {
		var authenticate bool
		if err := huh.NewConfirm().
			Title("Authenticate with Google Drive now?").
			Description("Opens browser to complete OAuth flow").
			Value(&authenticate).
			Run(); err != nil {
			return err
		}

		if authenticate {
			if err := runDriveAuth(clientID, clientSecret, driveTokenPath); err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("OAuth flow failed: %v", err)))
				fmt.Println(infoStyle.Render("You can retry later with: slidecraft auth drive"))
			}
		}
	}

	return nil
}

func configureGCP(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Google Cloud?").
		Description("Enables Secret Manager keys and the Cloud Storage deck archive (optional)").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	if !commandExists("gcloud") {
		fmt.Println(warnStyle.Render("gcloud CLI not found - install from https://cloud.google.com/sdk/docs/install"))
		return nil
	}

	project := getActiveProject()
	if project == "" {
		if err := huh.NewInput().
			Title("Project ID").
			Value(&project).
			Run(); err != nil {
			return err
		}
		project = strings.TrimSpace(project)
	}
	if project == "" {
		fmt.Println(warnStyle.Render("No project configured, skipping Google Cloud"))
		return nil
	}
	env["GOOGLE_CLOUD_PROJECT"] = project

	if err := enableGCPAPIs(project); err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("API enablement failed: %v", err)))
	}

	var bucket string
	if err := huh.NewInput().
		Title("Cloud Storage bucket for the deck archive").
		Description("Leave empty to skip archiving").
		Value(&bucket).
		Run(); err != nil {
		return err
	}
	bucket = strings.TrimSpace(bucket)
	if bucket != "" {
		env["GCS_BUCKET"] = bucket
	}

	return nil
}

func getActiveProject() string {
	out, err := exec.Command("gcloud", "config", "get-value", "project").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func enableGCPAPIs(project string) error {
	apis := []string{
		"secretmanager.googleapis.com",
		"storage.googleapis.com",
		"drive.googleapis.com",
	}

	return runWithSpinner("Enabling APIs", func() error {
		args := append([]string{"services", "enable"}, apis...)
		args = append(args, "--project", project)
		return runSetupCmd("gcloud", args...)
	})
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"GOOGLE_CLOUD_PROJECT",
		"OPENAI_API_KEY",
		"GROQ_API_KEY",
		"DEEPSEEK_API_KEY",
		"PEXELS_API_KEY",
		"DRIVE_CLIENT_ID",
		"DRIVE_CLIENT_SECRET",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Build a deck interactively: slidecraft new -t \"your topic\"")
	fmt.Println("  2. Or in one shot: slidecraft batch -t \"your topic\"")
	fmt.Println("  3. See themes: slidecraft themes")
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runSetupCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %s", err, stderr.String())
	}
	return nil
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}

package config

import (
	"context"
	"fmt"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// resolveSecrets fills API keys still empty after env and yaml loading
// from Google Secret Manager. Secrets are named after their env vars.
// Lookup failures leave the key empty; a missing required key is
// reported when the service starts.
func resolveSecrets(ctx context.Context, cfg *Config) {
	if cfg.GCPProject == "" {
		return
	}

	wanted := map[string]*string{
		"OPENAI_API_KEY":      &cfg.OpenAIAPIKey,
		"GROQ_API_KEY":        &cfg.GroqAPIKey,
		"DEEPSEEK_API_KEY":    &cfg.DeepSeekAPIKey,
		"PEXELS_API_KEY":      &cfg.PexelsAPIKey,
		"DRIVE_CLIENT_ID":     &cfg.DriveClientID,
		"DRIVE_CLIENT_SECRET": &cfg.DriveClientSecret,
	}

	missing := false
	for _, dest := range wanted {
		if *dest == "" {
			missing = true
		}
	}
	if !missing {
		return
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		slog.Warn("Secret Manager unavailable", "error", err)
		return
	}
	defer func() { _ = client.Close() }()

	for name, dest := range wanted {
		if *dest != "" {
			continue
		}
		value, err := accessSecret(ctx, client, cfg.GCPProject, name)
		if err != nil {
			slog.Debug("Secret not found", "secret", name, "error", err)
			continue
		}
		slog.Debug("Loaded secret", "secret", name)
		*dest = value
	}
}

func accessSecret(ctx context.Context, client *secretmanager.Client, project, name string) (string, error) {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return string(resp.GetPayload().GetData()), nil
}

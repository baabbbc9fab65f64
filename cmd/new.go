package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"slidecraft/internal/app"
	"slidecraft/internal/deck"
	"slidecraft/internal/llm"
	"slidecraft/internal/theme"
	"slidecraft/internal/uploader"
	"slidecraft/pkg/config"
)

var (
	newTopic  string
	newSlides int
	newTheme  string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Build a deck slide by slide with review",
	Long: `Build a presentation interactively: generate an outline, then review
each slide, give feedback in plain words, and approve it before the next
one is generated. The deck file is saved after every change.`,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newTopic, "topic", "t", "", "Presentation topic")
	newCmd.Flags().IntVarP(&newSlides, "slides", "n", 0, "Number of slides (3-20)")
	newCmd.Flags().StringVar(&newTheme, "theme", "", "Theme key (empty lets the model pick)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Slidecraft"))
	conversation := app.NewConversation(service)

	for {
		startOver, err := buildDeck(ctx, service, conversation)
		if err != nil {
			return err
		}
		if !startOver {
			return nil
		}
		conversation.StartOver()
	}
}

// buildDeck runs one deck from topic prompt to completion. It reports
// whether the user asked to start over with a fresh deck.
func buildDeck(ctx context.Context, service *app.Service, conversation *app.Conversation) (bool, error) {
	topic, slides, themeKey, err := askDeckParams()
	if err != nil {
		return false, err
	}

	var outline *deck.Outline
	if err := runGeneration("Generating outline", func() error {
		var startErr error
		outline, startErr = conversation.Start(ctx, topic, slides)
		return startErr
	}); err != nil {
		return false, err
	}
	printOutline(outline)

	var th theme.Theme
	if err := runWithSpinner("Choosing a theme", func() error {
		var themeErr error
		th, themeErr = conversation.SelectTheme(ctx, themeKey)
		return themeErr
	}); err != nil {
		return false, err
	}
	fmt.Println(infoStyle.Render(fmt.Sprintf("Theme: %s (%s)", th.Name, th.Key)))

	var start bool
	if err := huh.NewConfirm().
		Title("Generate slide 1?").
		Affirmative("Yes").
		Negative("Quit").
		Value(&start).
		Run(); err != nil {
		return false, err
	}
	if !start {
		return false, nil
	}

	begun := false
	if err := runGeneration(fmt.Sprintf("Generating slide 1 of %d", conversation.SlideCount()), func() error {
		if begun {
			return conversation.Retry(ctx)
		}
		begun = true
		return conversation.Begin(ctx)
	}); err != nil {
		return false, err
	}

	for conversation.Step() == app.StepBuilding {
		printSlide(conversation.CurrentSlide(), conversation.SlideCount())

		var choice string
		if err := huh.NewSelect[string]().
			Title("What next?").
			Options(
				huh.NewOption("Approve and continue", "approve"),
				huh.NewOption("Revise this slide", "revise"),
				huh.NewOption("Regenerate this slide", "regenerate"),
				huh.NewOption("Start over", "restart"),
				huh.NewOption("Quit", "quit"),
			).
			Value(&choice).
			Run(); err != nil {
			return false, err
		}

		switch choice {
		case "approve":
			if err := approveSlide(ctx, conversation); err != nil {
				return false, err
			}
		case "revise":
			if err := reviseSlide(ctx, conversation); err != nil {
				return false, err
			}
		case "regenerate":
			if err := runGeneration("Regenerating slide", func() error {
				return conversation.Retry(ctx)
			}); err != nil {
				return false, err
			}
		case "restart":
			var confirm bool
			if err := huh.NewConfirm().
				Title("Discard this deck and start over?").
				Description("Files already written stay in the output directory.").
				Value(&confirm).
				Run(); err != nil {
				return false, err
			}
			if confirm {
				return true, nil
			}
		case "quit":
			fmt.Println(infoStyle.Render("Progress so far is saved at: " + conversation.Path()))
			return false, nil
		}
	}

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Deck complete"))
	fmt.Println(infoStyle.Render("  Saved to: " + conversation.Path()))

	if err := offerReview(ctx, conversation); err != nil {
		return false, err
	}
	if err := offerDistribution(ctx, service, conversation.Path(), conversation.Title()); err != nil {
		return false, err
	}

	var again bool
	if err := huh.NewConfirm().
		Title("Build another deck?").
		Value(&again).
		Run(); err != nil {
		return false, err
	}
	return again, nil
}

// askDeckParams collects topic, slide count and theme, preferring flag
// values on the first pass. Flags are consumed so a restarted build
// asks again.
func askDeckParams() (string, int, string, error) {
	topic, slides, themeKey := newTopic, newSlides, newTheme
	newTopic, newSlides, newTheme = "", 0, ""

	if topic == "" {
		if err := huh.NewInput().
			Title("What is your presentation about?").
			Placeholder("The future of renewable energy").
			Value(&topic).
			Validate(required("Topic")).
			Run(); err != nil {
			return "", 0, "", err
		}
	}

	if slides == 0 {
		count := strconv.Itoa(10)
		if err := huh.NewInput().
			Title("How many slides?").
			Description("Between 3 and 20").
			Value(&count).
			Validate(validSlideCount).
			Run(); err != nil {
			return "", 0, "", err
		}
		slides, _ = strconv.Atoi(strings.TrimSpace(count))
	}

	if themeKey == "" {
		options := []huh.Option[string]{huh.NewOption("Let the model pick", "")}
		for _, th := range theme.All() {
			options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", th.Name, th.Key), th.Key))
		}
		if err := huh.NewSelect[string]().
			Title("Theme").
			Options(options...).
			Value(&themeKey).
			Run(); err != nil {
			return "", 0, "", err
		}
	}

	return topic, slides, themeKey, nil
}

func validSlideCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n < 3 || n > 20 {
		return fmt.Errorf("between 3 and 20")
	}
	return nil
}

func approveSlide(ctx context.Context, conversation *app.Conversation) error {
	title := "Finishing deck"
	if next := conversation.Current() + 2; next <= conversation.SlideCount() {
		title = fmt.Sprintf("Generating slide %d of %d", next, conversation.SlideCount())
	}

	approved := false
	return runGeneration(title, func() error {
		if approved {
			return conversation.Retry(ctx)
		}
		approved = true
		return conversation.Approve(ctx)
	})
}

func reviseSlide(ctx context.Context, conversation *app.Conversation) error {
	var feedback string
	if err := huh.NewInput().
		Title("What should change?").
		Placeholder("Make the bullets shorter and bold the key terms").
		Value(&feedback).
		Validate(required("Feedback")).
		Run(); err != nil {
		return err
	}

	var fields []string
	err := runGeneration("Revising slide", func() error {
		var reviseErr error
		fields, reviseErr = conversation.Feedback(ctx, feedback)
		return reviseErr
	})
	if err != nil {
		if retryableModelError(err) {
			fmt.Println(warnStyle.Render("Slide unchanged."))
			return nil
		}
		return err
	}

	if len(fields) == 0 {
		fmt.Println(infoStyle.Render("No changes were needed."))
		return nil
	}
	fmt.Println(successStyle.Render("✓ Updated: " + strings.Join(fields, ", ")))
	return nil
}

func offerReview(ctx context.Context, conversation *app.Conversation) error {
	var review bool
	if err := huh.NewConfirm().
		Title("Run a quality review?").
		Description("The model scores the finished deck and suggests improvements.").
		Value(&review).
		Run(); err != nil {
		return err
	}
	if !review {
		return nil
	}

	var result *llm.Review
	if err := runWithSpinner("Reviewing deck", func() error {
		var reviewErr error
		result, reviewErr = conversation.Review(ctx)
		return reviewErr
	}); err != nil {
		fmt.Println(warnStyle.Render("Review failed: " + err.Error()))
		return nil
	}

	printReview(result)
	return nil
}

func offerDistribution(ctx context.Context, service *app.Service, path, title string) error {
	pipeline := app.NewPipeline(service)

	if service.Uploader() != nil {
		var upload bool
		if err := huh.NewConfirm().
			Title("Upload to Google Drive?").
			Value(&upload).
			Run(); err != nil {
			return err
		}
		if upload {
			if err := uploadDeck(ctx, service, pipeline, path, title); err != nil {
				fmt.Println(warnStyle.Render("Upload failed: " + err.Error()))
			}
		}
	}

	if service.Archive() != nil {
		var archive bool
		if err := huh.NewConfirm().
			Title("Archive to Cloud Storage?").
			Value(&archive).
			Run(); err != nil {
			return err
		}
		if archive {
			if err := runWithSpinner("Archiving deck", func() error {
				_, archiveErr := pipeline.Archive(ctx, path)
				return archiveErr
			}); err != nil {
				fmt.Println(warnStyle.Render("Archive failed: " + err.Error()))
			}
		}
	}

	return nil
}

func uploadDeck(ctx context.Context, service *app.Service, pipeline *app.Pipeline, path, title string) error {
	var response *uploader.UploadResponse
	if err := runWithSpinner("Uploading to Google Drive", func() error {
		var uploadErr error
		response, uploadErr = pipeline.Publish(ctx, app.PublishRequest{
			FilePath:    path,
			Name:        filepath.Base(path),
			Description: title,
		})
		return uploadErr
	}); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ Uploaded: " + response.URL))

	var share bool
	if err := huh.NewConfirm().
		Title("Share with anyone who has the link?").
		Value(&share).
		Run(); err != nil {
		return err
	}
	if share {
		link, err := service.Uploader().Share(ctx, response.ID)
		if err != nil {
			return fmt.Errorf("share deck: %w", err)
		}
		fmt.Println(successStyle.Render("✓ Link: " + link))
	}
	return nil
}

func printOutline(outline *deck.Outline) {
	fmt.Println()
	fmt.Println(titleStyle.Render(outline.Title))
	for _, entry := range outline.Slides {
		fmt.Printf("  %2d. [%s] %s\n", entry.Number, entry.Type, entry.Topic)
		if entry.Description != "" {
			fmt.Println(infoStyle.Render("      " + entry.Description))
		}
	}
}

func printSlide(slide *deck.Slide, total int) {
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Slide %d of %d (%s)", slide.Number, total, slide.Type)))

	c := slide.Content
	if c.Title != "" {
		fmt.Println("  " + c.Title)
	}
	if c.Subtitle != "" {
		fmt.Println(infoStyle.Render("  " + c.Subtitle))
	}
	if c.Stat != "" {
		fmt.Println("  " + c.Stat)
	}
	for _, b := range c.Bullets {
		fmt.Println("  • " + b)
	}
	if c.Text != "" {
		fmt.Println("  " + c.Text)
	}
	if c.Description != "" {
		fmt.Println(infoStyle.Render("  " + c.Description))
	}
	if c.Context != "" {
		fmt.Println(infoStyle.Render("  " + c.Context))
	}
	if c.Notes != "" {
		fmt.Println(infoStyle.Render("  Notes: " + c.Notes))
	}
	if c.HasImage {
		fmt.Println(infoStyle.Render("  [includes an image]"))
	}
}

func printReview(review *llm.Review) {
	if review == nil {
		return
	}
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Deck review: %d/10 (%s)", review.Score, review.OverallQuality)))
	for _, s := range review.Strengths {
		fmt.Println(successStyle.Render("  + " + s))
	}
	for _, s := range review.Suggestions {
		fmt.Println(infoStyle.Render("  > " + s))
	}
	for _, s := range review.MissingTopics {
		fmt.Println(warnStyle.Render("  ? missing: " + s))
	}
}

func retryableModelError(err error) bool {
	if errors.Is(err, llm.ErrUpstreamUnavailable) {
		return true
	}
	var malformed *llm.MalformedResponseError
	return errors.As(err, &malformed)
}

// runGeneration runs one model-backed step with a spinner. Failed model
// calls are never retried on their own; the user is asked first.
func runGeneration(title string, fn func() error) error {
	for {
		err := runWithSpinner(title, fn)
		if err == nil {
			return nil
		}
		if !retryableModelError(err) {
			return err
		}

		fmt.Println(warnStyle.Render(err.Error()))
		var retry bool
		if promptErr := huh.NewConfirm().
			Title("The model call failed. Try again?").
			Value(&retry).
			Run(); promptErr != nil {
			return promptErr
		}
		if !retry {
			return err
		}
	}
}

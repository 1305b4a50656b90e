package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/agile-ai-hub/intake-api/config"
	"github.com/agile-ai-hub/intake-api/internal/contact"
	"github.com/agile-ai-hub/intake-api/pkg/httpclient"
	"github.com/agile-ai-hub/intake-api/pkg/logger"
)

const usage = `Usage:
  contact send --name NAME --email EMAIL [--message TEXT] [--endpoint URL] [--no-open]
  contact endpoint [URL]
`

// discardNavigator leaves the fallback link to the printed output
type discardNavigator struct{}

func (discardNavigator) Navigate(string) error { return nil }

func main() {
	if err := logger.Initialize(logger.Config{
		Level:       "error",
		Environment: "development",
		ServiceName: "contact",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one subcommand and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "send":
		err = runSend(ctx, args[1:], stdout, stderr)
	case "endpoint":
		err = runEndpoint(args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runSend(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("send", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email address")
	message := fs.String("message", "", "message text")
	endpoint := fs.String("endpoint", "", "intake endpoint override for this run")
	noOpen := fs.Bool("no-open", false, "print the email fallback instead of opening it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadClient(*endpoint)
	if err != nil {
		return err
	}
	logger.Debug("Resolved intake endpoint",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("source", string(cfg.EndpointSource)),
	)

	var navigator contact.Navigator = contact.BrowserNavigator{}
	if *noOpen {
		navigator = discardNavigator{}
	}

	client := contact.NewClient(cfg, httpclient.NewStandardClient())
	form := contact.NewForm(client, navigator, cfg.FallbackEmail)
	form.SetFields(contact.Submission{Name: *name, Email: *email, Message: *message})

	fmt.Fprintf(stdout, "Sending to %s...\n", client.Endpoint())
	outcome, err := form.Submit(ctx)
	if err != nil {
		return err
	}

	if outcome.Status == contact.StatusSuccess {
		fmt.Fprintln(stdout, "Thanks! Your message was sent.")
		return nil
	}

	fmt.Fprintf(stdout, "Could not send your message (%v).\n", outcome.Result.Err)
	fmt.Fprintf(stdout, "Email instead: %s\n", outcome.FallbackURL)
	if outcome.NavigateErr != nil {
		fmt.Fprintf(stderr, "Could not open your mail client: %v\n", outcome.NavigateErr)
	}
	return errors.New("submission failed")
}

func runEndpoint(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("endpoint", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one URL, got %d", fs.NArg())
	}

	// the saved value is read raw so a broken one can still be replaced
	prefs, err := config.OpenPreferences(config.ClientPreferencesPath())
	if err != nil {
		return err
	}
	override := config.EndpointOverride()
	current, _ := config.ResolveEndpoint(override, prefs.Endpoint())

	endpoint := fs.Arg(0)
	if endpoint == "" {
		// runtime override first, then the saved value
		shown := override
		if shown == "" {
			shown = prefs.Endpoint()
		}
		endpoint, err = contact.PromptEndpoint(stdin, stdout, shown)
		if err != nil {
			return err
		}
	}
	if endpoint == "" {
		fmt.Fprintf(stdout, "Endpoint unchanged: %s\n", current)
		return nil
	}

	if err := prefs.SetEndpoint(endpoint); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved endpoint %s to %s\n", endpoint, prefs.Path())
	return nil
}

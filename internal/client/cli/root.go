package cli

import (
	"fmt"
	"os"

	"github.com/ezeqja22/sciencepioneers-cli/internal/api"
	"github.com/ezeqja22/sciencepioneers-cli/internal/client/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spctl",
	Short: "Moderation console for the Science Pioneers platform",
	Long: `spctl is a terminal client for the Science Pioneers forum platform.
It drives the report-moderation workflow (take, investigate, resolve,
dismiss, notify) against the platform's REST backend, plus forum
browsing with local pins.`,
}

// ServerAddr should be injected via ldflags. Default for dev.
var ServerAddr = "http://localhost:8000"

// Version is set at build time.
var Version = "dev"

func Init(serverAddr, version string) {
	if serverAddr != "" {
		ServerAddr = serverAddr
	}
	if version != "" {
		Version = version
	}

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(forumsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(updateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// serverURL resolves the backend address: env override, then the saved
// config, then the build-time default.
func serverURL(cfg *config.Config) string {
	if env := os.Getenv("SPCTL_SERVER"); env != "" {
		return env
	}
	if cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return ServerAddr
}

// newClient builds the API client from saved config and environment.
// With requireAuth set, a missing token fails before any request.
func newClient(requireAuth bool) (*api.Client, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var session api.Session
	if token := os.Getenv("SPCTL_TOKEN"); token != "" {
		session = api.NewStaticSession(token)
	} else {
		session = config.NewSession(cfg)
	}

	if requireAuth && session.Token() == "" {
		return nil, nil, fmt.Errorf("not logged in. Run 'spctl auth login' first")
	}

	return api.NewClient(serverURL(cfg), session), cfg, nil
}

// fail prints an error and exits. Mutating commands route their
// failures here so the server-provided detail is what the user sees.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", api.Detail(err))
	os.Exit(1)
}

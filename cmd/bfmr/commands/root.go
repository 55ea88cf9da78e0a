package commands

import (
	"cmp"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bfmr_bot/internal/domain/entity"
	"bfmr_bot/internal/infrastructure/bfmr"
	"bfmr_bot/pkg/contextx"
	"bfmr_bot/pkg/httpx"
	"bfmr_bot/pkg/logx"
)

const (
	envAPIKey    = "BFMR_API_KEY"
	envAPISecret = "BFMR_API_SECRET"
	envBaseURL   = "BFMR_BASE_URL"
)

var errNoCredentials = errors.New("API key and secret are required: use --api-key/--api-secret or " +
	envAPIKey + "/" + envAPISecret)

type globalFlags struct {
	apiKey    string
	apiSecret string
	baseURL   string
	timeout   time.Duration
	verbose   bool
}

func (f *globalFlags) credentials() (entity.Credentials, error) {
	creds := entity.Credentials{
		APIKey:    cmp.Or(f.apiKey, os.Getenv(envAPIKey)),
		APISecret: cmp.Or(f.apiSecret, os.Getenv(envAPISecret)),
	}

	if creds.APIKey == "" || creds.APISecret == "" {
		return entity.Credentials{}, errNoCredentials
	}

	return creds, nil
}

// client логирует запросы в stderr; без --verbose только ошибки.
func (f *globalFlags) client(cmd *cobra.Command) *bfmr.Client {
	level := "error"
	if f.verbose {
		level = "debug"
	}

	log := logx.NewLogger(cmd.ErrOrStderr(), level, logx.FormatText)
	cmd.SetContext(contextx.WithLogger(cmd.Context(), log))

	baseURL := cmp.Or(f.baseURL, os.Getenv(envBaseURL), bfmr.DefaultBaseURL)

	return bfmr.NewClient(baseURL, f.timeout, httpx.NewLoggingRoundTripper(nil))
}

// NewRootCmd — консольный клиент BFMR: просмотр сделок и резервирование.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "bfmr",
		Short:         "bfmr is a command line client for BFMR deals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.apiKey, "api-key", "", "BFMR API key (env "+envAPIKey+")")
	root.PersistentFlags().StringVar(&flags.apiSecret, "api-secret", "", "BFMR API secret (env "+envAPISecret+")")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "BFMR API base URL (env "+envBaseURL+")")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", bfmr.DefaultTimeout, "request timeout")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log HTTP requests to stderr")

	root.AddCommand(newDealsCmd(flags), newReserveCmd(flags))

	return root
}

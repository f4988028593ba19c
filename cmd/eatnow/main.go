// eatnow is the command line client of the EatNow service.
//
// Usage:
//
//	eatnow login <id>
//	eatnow profile [id]
//	eatnow profile update --username=<name> --availability
//	eatnow invitations <sent|received|accepted>
//	eatnow timeslot set --day=tomorrow --hour=13:30
//	eatnow serve
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kdudkov/eatnow/internal/app"
	"github.com/kdudkov/eatnow/internal/config"
	"github.com/kdudkov/eatnow/internal/toast"
	"github.com/kdudkov/eatnow/pkg/log"
)

var errNotLoggedIn = errors.New("not logged in, run eatnow login <id>")

type options struct {
	config string
	debug  bool
	yaml   bool
}

func newRootCmd() *cobra.Command {
	opts := new(options)

	cmd := &cobra.Command{
		Use:           "eatnow",
		Short:         "Find someone to eat with",
		Version:       getVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.config, "config", "eatnow.yml", "name of config file")
	f.BoolVar(&opts.debug, "debug", false, "debug logging")
	f.BoolVar(&opts.yaml, "yaml", false, "print results as yaml")

	cmd.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newProfileCmd(opts),
		newLocationCmd(opts),
		newInvitationsCmd(opts),
		newTimeSlotCmd(opts),
		newAvatarCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}

func (o *options) loadConfig(cmd *cobra.Command) *config.AppConfig {
	_ = godotenv.Load()

	cfg := config.NewAppConfig()
	cfg.Load(o.config)
	cfg.LoadEnv(config.EnvPrefix)

	level := log.ParseLevel(cfg.LogLevel())
	if o.debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(log.NewHandlerTo(cmd.ErrOrStderr(), cfg.LogFormat(), &slog.HandlerOptions{Level: level})))

	return cfg
}

func (o *options) newApp(cmd *cobra.Command) (*app.App, *config.AppConfig, error) {
	cfg := o.loadConfig(cmd)

	a, err := app.New(cfg, toast.NewConsole(cmd.ErrOrStderr()))
	if err != nil {
		return nil, nil, err
	}

	return a, cfg, nil
}

// session builds the app and requires a stored login.
func (o *options) session(cmd *cobra.Command) (*app.App, error) {
	a, _, err := o.newApp(cmd)
	if err != nil {
		return nil, err
	}

	ok, err := a.Restore(cmd.Context())
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if !ok {
		_ = a.Close()
		return nil, errNotLoggedIn
	}

	return a, nil
}

// render prints v as yaml with --yaml, otherwise with text.
func (o *options) render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()

	if !o.yaml {
		text(out)
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !toast.IsPresented(err) {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}

		os.Exit(1)
	}
}

package serve

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fulldump/box"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dasen603/typeset/internal/api"
	"github.com/Dasen603/typeset/internal/state"
)

// Version is stamped by the build.
var Version = "dev"

var addrFlag string

func NewCmdServe(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API.",
		Long: heredoc.Doc(`
			This command starts the HTTP API used by the web editor. The
			listen address comes from http_addr in the config file and can be
			overridden with --addr.

			Example:
			  typeset serve
			  typeset serve --addr :8080
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := viper.GetString("http_addr")
			if addrFlag != "" {
				addr = addrFlag
			}

			logger := log.New(os.Stdout, "", log.LstdFlags)

			b := api.Build(s.Store, s.Config.UploadsDir, Version)
			b.WithInterceptors(api.AccessLog(logger))

			server := &http.Server{
				Addr:    addr,
				Handler: box.Box2Http(b),
			}

			signalChan := make(chan os.Signal, 1)
			signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
			go func() {
				sig := <-signalChan
				logger.Println("Signal received", sig.String())
				server.Shutdown(context.Background())
			}()

			logger.Println("listening on", addr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&addrFlag, "addr", "a", "", "Listen address, e.g. :3001.")

	return cmd
}

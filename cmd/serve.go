package cmd

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"vizctl/internal/logger"
	"vizctl/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the TV over a local HTTP command API",
	Long: `Run a small HTTP API that forwards commands to the paired TV,
so home-automation tools can drive it without speaking the vendor
protocol themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(true)
		if err != nil {
			return err
		}

		logger.SetSilentMode(false)

		srv := server.New(client)

		done := make(chan error, 1)
		go func() {
			done <- srv.Start(serveListen)
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-done:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-sig:
			return srv.Stop()
		}
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "127.0.0.1:8130", "address for the command API to listen on")
	rootCmd.AddCommand(serveCmd)
}

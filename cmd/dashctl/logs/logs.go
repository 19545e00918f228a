// Package logscmder provides the logs command that follows the dashboard's
// live log stream.
package logscmder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/config"
	"github.com/weelink/dashctl/pkg/credentials"
	"github.com/weelink/dashctl/pkg/logbuffer"
	"github.com/weelink/dashctl/pkg/logger"
	"github.com/weelink/dashctl/pkg/logstream"
	"github.com/weelink/dashctl/pkg/sse"
)

type logsCommander struct {
	server         string
	streamPath     string
	reconnectDelay string
	maxLogs        uint
	logFormat      string
	logFile        string
	reconnect      bool
	followLogin    bool
	jsonOut        bool
	debug          bool
	configDir      string

	cfg    *config.Config
	logger *slog.Logger
}

var logsFlags = []string{
	config.FlagServer,
	config.FlagStreamPath,
	config.FlagReconnectDelay,
	config.FlagMaxLogs,
	config.FlagLogFormat,
	config.FlagLogFile,
}

const logsLongDesc string = `Follow the dashboard's live log stream.

Connects to the server's SSE endpoint with the token stored by
"dashctl login" and prints every log record as it arrives. Errors the
server reports on the stream are printed as notifications. Press Ctrl-C
to disconnect.

With --reconnect, a stream that fails or is closed by the server is opened
again after --reconnect-delay. With --follow-login, a new "dashctl login"
in another terminal switches the stream to the new token, and "dashctl
logout" pauses it until the next login.

Examples:
  dashctl logs
  dashctl logs --reconnect --reconnect-delay 5s
  dashctl logs --follow-login --max-logs 1000
  dashctl logs --log-file dashctl.jsonl
  dashctl logs --json | jq .message`

const logsShortDesc string = "Follow the live log stream"

func NewLogsCmd() *cobra.Command {
	cmder := &logsCommander{}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: logsShortDesc,
		Long:  logsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, logsFlags)

			cmder.cfg, err = config.FromViper(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cmder.run(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagServer, &cmder.server)
	config.AddStringFlag(cmd, config.Flags, config.FlagStreamPath, &cmder.streamPath)
	config.AddStringFlag(cmd, config.Flags, config.FlagReconnectDelay, &cmder.reconnectDelay)
	config.AddUintFlag(cmd, config.Flags, config.FlagMaxLogs, &cmder.maxLogs)
	config.AddStringFlag(cmd, config.Flags, config.FlagLogFormat, &cmder.logFormat)
	config.AddStringFlag(cmd, config.Flags, config.FlagLogFile, &cmder.logFile)
	cmd.Flags().BoolVarP(&cmder.reconnect, "reconnect", "r", false, "Reconnect after the stream fails or is closed by the server")
	cmd.Flags().BoolVarP(&cmder.followLogin, "follow-login", "f", false, "Switch to a new token when the stored login changes")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print each log entry as one line of JSON as received")

	return cmd
}

func (c *logsCommander) run(ctx context.Context, out, errOut io.Writer) error {
	closeLog, err := c.setupLogger(errOut)
	if err != nil {
		return err
	}
	defer closeLog()

	endpoint, err := c.cfg.StreamURL()
	if err != nil {
		return err
	}
	delay, err := c.cfg.Stream.Delay()
	if err != nil {
		return err
	}

	mgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	session, err := mgr.Session()
	if err != nil {
		return err
	}
	if session.Empty() && !c.followLogin {
		return credentials.ErrNotLoggedIn
	}
	if session.Server != "" && session.Server != c.cfg.Server.URL {
		c.logger.Warn("stored login was issued by a different server",
			"login_server", session.Server,
			"server", c.cfg.Server.URL,
		)
	}

	p := newPrinter(out, errOut, c.jsonOut)
	client := logstream.New(
		logstream.WithLogger(c.logger),
		logstream.WithNotifier(p),
		logstream.WithLogSink(p),
		logstream.WithReconnectDelay(delay),
		logstream.WithMaxLogs(int(c.cfg.Stream.MaxLogs)),
	)

	var tokens <-chan string
	if c.followLogin {
		tokens = c.watchLogin(ctx, mgr)
	}

	err = c.stream(ctx, client, endpoint, session.Token, tokens)

	c.logger.Debug("log stream finished",
		"printed", p.count(),
		"buffered", client.LogCount(),
	)
	return err
}

// setupLogger builds the diagnostics logger: log.format on errOut, plus JSON
// records appended to log.file when set.
func (c *logsCommander) setupLogger(errOut io.Writer) (func(), error) {
	base := logger.New(
		logger.WithDebug(c.debug),
		logger.WithFormat(logger.Format(c.cfg.Log.Format)),
		logger.WithWriter(errOut),
	)

	if c.cfg.Log.File == "" {
		c.logger = base
		return func() {}, nil
	}

	f, err := os.OpenFile(c.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	fileLogger := logger.New(
		logger.WithDebug(c.debug),
		logger.WithFormat(logger.FormatJSON),
		logger.WithSource(c.debug),
		logger.WithWriter(f),
	)
	c.logger = logger.Multi(base, fileLogger)

	return func() { _ = f.Close() }, nil
}

// watchLogin reports each new stored token. An empty token means logged out.
func (c *logsCommander) watchLogin(ctx context.Context, mgr *credentials.Manager) <-chan string {
	tokens := make(chan string, 1)

	go func() {
		err := mgr.Watch(ctx, c.logger, func(s credentials.Session) {
			select {
			case tokens <- s.Token:
			case <-ctx.Done():
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("watching credentials", "error", err)
		}
	}()

	return tokens
}

// stream keeps client connected until ctx is done. Without --reconnect it
// returns when the first connection ends. A token received on tokens
// replaces the connection immediately; an empty token closes it and waits
// for the next login.
func (c *logsCommander) stream(ctx context.Context, client *logstream.Client, endpoint, token string, tokens <-chan string) error {
	var attempt func(context.Context) error
	if token != "" {
		attempt = connectWith(client, endpoint, token)
	} else {
		c.logger.Info("not logged in, waiting for 'dashctl login'")
	}

	for {
		if attempt == nil {
			select {
			case <-ctx.Done():
				return nil
			case tok := <-tokens:
				if tok != "" {
					c.logger.Info("login detected, connecting")
					attempt = connectWith(client, endpoint, tok)
				}
			}
			continue
		}

		// Each attempt gets its own context so a login change can also
		// abort a Reconnect that is still waiting out its delay.
		attemptCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func(fn func(context.Context) error) {
			done <- fn(attemptCtx)
		}(attempt)

		select {
		case err := <-done:
			cancel()
			if ctx.Err() != nil {
				return nil
			}
			if !c.reconnect {
				return err
			}

			if err != nil {
				c.logger.Warn("log stream failed, reconnecting", "error", err, "delay", c.cfg.Stream.ReconnectDelay)
			} else {
				c.logger.Info("log stream ended, reconnecting", "delay", c.cfg.Stream.ReconnectDelay)
			}
			attempt = client.Reconnect

		case tok := <-tokens:
			cancel()
			client.Disconnect()
			<-done
			if ctx.Err() != nil {
				return nil
			}

			if tok == "" {
				c.logger.Info("logged out, waiting for 'dashctl login'")
				client.ClearLogs()
				attempt = nil
				continue
			}
			c.logger.Info("login changed, reconnecting")
			attempt = connectWith(client, endpoint, tok)
		}
	}
}

func connectWith(client *logstream.Client, endpoint, token string) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Connect(ctx, endpoint, token)
	}
}

// printer writes log records to out and stream errors to errOut. It serves
// as both the client's log sink and notifier. In JSON mode each entry is
// written as received, one per line.
type printer struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	jsonOut bool
	printed int
}

func newPrinter(out, errOut io.Writer, jsonOut bool) *printer {
	return &printer{out: out, errOut: errOut, jsonOut: jsonOut}
}

func (p *printer) AppendLog(entry sse.Payload) {
	var line string
	if p.jsonOut {
		data, err := json.Marshal(entry)
		if err != nil {
			data, _ = json.Marshal(entry.Raw())
		}
		line = string(data)
	} else {
		line = cliui.RenderLogRecord(logbuffer.RecordFromPayload(entry))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
	p.printed++
}

func (p *printer) NotifyError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.errOut, "%s %s\n", cliui.FailMark, cliui.ErrorStyle.Render(message))
}

func (p *printer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printed
}

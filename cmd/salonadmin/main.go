package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/internal/config"
	"github.com/naveenspark/salonadmin/internal/logging"
	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/internal/tui"
	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli is one invocation: resolved config, wired collaborators and the
// terminal it talks to.
type cli struct {
	cfg   *config.Config
	env   admin.Env
	rawIn io.Reader
	in    *bufio.Reader
	out   io.Writer
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Fprintln(stdout, "salonadmin "+version)
			return nil
		case "help", "--help", "-h":
			printHelp(stdout)
			return nil
		}
	}

	c, err := setup(stdin, stdout)
	if err != nil {
		return err
	}
	defer c.env.Log.Sync() //nolint:errcheck // best-effort flush

	if len(args) == 0 {
		return c.runTUI()
	}
	switch args[0] {
	case "login":
		return c.runLogin(args[1:])
	case "logout":
		return c.runLogout()
	case "whoami":
		return c.runWhoami()
	}
	return fmt.Errorf("unknown command %q (see salonadmin help)", args[0])
}

func setup(stdin io.Reader, stdout io.Writer) (*cli, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded",
		zap.String("api_url", cfg.APIURL),
		zap.String("config_file", cfg.ConfigFile),
		zap.Duration("timeout", cfg.Timeout))

	store := session.NewFile(cfg.SessionFile, session.WithLogger(log))
	api := client.New(cfg.APIURL, store, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	return &cli{
		cfg:   cfg,
		env:   admin.Env{Client: api, Session: store, Log: log},
		rawIn: stdin,
		in:    bufio.NewReader(stdin),
		out:   stdout,
	}, nil
}

func (c *cli) runTUI() error {
	p := tea.NewProgram(tui.NewApp(c.env, version), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin signs in from the command line: salonadmin login [email].
func (c *cli) runLogin(args []string) error {
	var creds domain.Credentials
	if len(args) > 0 {
		creds.Email = args[0]
	} else {
		email, err := c.line("Email: ")
		if err != nil {
			return err
		}
		creds.Email = email
	}
	pw, err := c.secret("Password: ")
	if err != nil {
		return err
	}
	creds.Password = pw

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()
	user, err := admin.Authenticate(ctx, c.env, creds)
	if err != nil {
		return loginError(err)
	}
	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", orUnknown(user.Email, creds.Email), user.Role)
	if user.Role != domain.RoleSuperAdmin {
		fmt.Fprintln(c.out, "This account is not a super admin; the console will deny access.")
	}
	return nil
}

func loginError(err error) error {
	var verr *admin.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, verr.Fields[k])
		}
		return errors.New(strings.Join(msgs, " "))
	}
	return err
}

func (c *cli) runLogout() error {
	if !c.env.Session.Get().IsAuthed() {
		fmt.Fprintln(c.out, "Already logged out.")
		return nil
	}
	if err := admin.Logout(c.env); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *cli) runWhoami() error {
	sess := c.env.Session.Get()
	if !sess.IsAuthed() {
		fmt.Fprintln(c.out, "Not logged in. Run: salonadmin login")
		return nil
	}
	fmt.Fprintf(c.out, "role:    %s\n", sess.Role)
	fmt.Fprintf(c.out, "api:     %s\n", c.cfg.APIURL)
	claims, err := session.InspectToken(sess.Token)
	if err != nil {
		fmt.Fprintln(c.out, "token:   opaque")
		return nil
	}
	if claims.Email != "" {
		fmt.Fprintf(c.out, "email:   %s\n", claims.Email)
	}
	if claims.Subject != "" {
		fmt.Fprintf(c.out, "subject: %s\n", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		note := ""
		if claims.Expired(time.Now()) {
			note = " (expired)"
		}
		fmt.Fprintf(c.out, "expires: %s%s\n", claims.ExpiresAt.Local().Format(time.RFC1123), note)
	}
	return nil
}

func (c *cli) line(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	s, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads without echo from a terminal, or a plain line otherwise.
func (c *cli) secret(prompt string) (string, error) {
	f, ok := c.rawIn.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.line(prompt)
	}
	fmt.Fprint(c.out, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func orUnknown(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

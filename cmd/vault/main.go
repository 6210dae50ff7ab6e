// Package main implements the icvault client CLI: one-shot canister and
// session commands plus an interactive shell over the vault view model.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icfoundry/icvault/internal/client/agent"
	"github.com/icfoundry/icvault/internal/client/catalog"
	"github.com/icfoundry/icvault/internal/client/disclosure"
	"github.com/icfoundry/icvault/internal/client/identity"
	"github.com/icfoundry/icvault/internal/client/notify"
	"github.com/icfoundry/icvault/internal/client/session"
	"github.com/icfoundry/icvault/internal/client/view"
	"github.com/icfoundry/icvault/internal/config"
	"github.com/icfoundry/icvault/internal/logger"
	"github.com/icfoundry/icvault/internal/models"
)

var (
	version   string
	buildDate string
)

// cli carries the composition root across cobra's flag parsing. The app is
// built in PersistentPreRun, after the persistent flags have written into
// opts, so --network/--host/--canister-id/--identity-provider actually steer
// where the clients connect.
type cli struct {
	opts *config.Options
	log  *zap.Logger
	app  *app
}

// app wires the client components together. Everything is constructed here
// and passed by reference; there is no ambient global state.
type app struct {
	opts     *config.Options
	log      *zap.Logger
	idc      *identity.Client
	sess     *session.Session
	canister *agent.Agent
	catalog  *catalog.Catalog
	views    *view.Controller
	toasts   *notify.Notifier
	bridge   *disclosure.Bridge
}

func newApp(opts *config.Options, log *zap.Logger) *app {
	idc := identity.NewClient(opts.IdentityProviderURL(), opts.Delegation, log)
	cat := catalog.Fixture()
	toasts := notify.New()
	return &app{
		opts:     opts,
		log:      log,
		idc:      idc,
		sess:     session.New(idc, session.LoginConfig{IdentityProvider: opts.IdentityProviderURL()}, log),
		canister: agent.New(opts.CanisterHost(), opts.CanisterID, log),
		catalog:  cat,
		views:    view.NewController(cat),
		toasts:   toasts,
		bridge:   disclosure.NewBridge(disclosure.SystemClipboard{}, disclosure.SystemOpener{}, toasts, log),
	}
}

// authedAgent returns the canister agent in the session's calling context:
// authenticated when a delegation is live, anonymous otherwise.
func (a *app) authedAgent() *agent.Agent {
	if handle := a.sess.Handle(); handle != "" {
		return a.canister.WithIdentity(handle)
	}
	return a.canister
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	opts, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(opts.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	root, _ := newRootCmd(opts, log.Log)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(opts *config.Options, log *zap.Logger) (*cobra.Command, *cli) {
	c := &cli{opts: opts, log: log}

	root := &cobra.Command{
		Use:           "vault",
		Short:         "icvault client for the identity platform vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Flags are parsed by now; compose the clients from the final opts.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.app = newApp(c.opts, c.log)
		},
	}
	root.PersistentFlags().StringVar(&opts.Network, "network", opts.Network, "target network: local or ic")
	root.PersistentFlags().StringVar(&opts.Host, "host", opts.Host, "network endpoint override")
	root.PersistentFlags().StringVar(&opts.CanisterID, "canister-id", opts.CanisterID, "backend canister id")
	root.PersistentFlags().StringVar(&opts.IdentityProvider, "identity-provider", opts.IdentityProvider, "identity provider URL override")

	root.AddCommand(
		versionCmd(),
		greetCmd(c),
		whoamiCmd(c),
		loginCmd(c),
		logoutCmd(c),
		shellCmd(c),
	)
	return root, c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
			fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))
		},
	}
}

func greetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "greet <name>",
		Short: "Call the backend greet operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.sess.Initialize(cmd.Context())
			greeting, err := a.authedAgent().Greet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(greeting)
			return nil
		},
	}
}

func whoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Ask the backend which principal it sees",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.sess.Initialize(cmd.Context())
			principal, err := a.authedAgent().Whoami(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(principal)
			return nil
		},
	}
}

func loginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.sess.Initialize(cmd.Context())
			if a.sess.Authenticated() {
				fmt.Println("Already signed in as", a.sess.Principal())
				return nil
			}
			if err := a.sess.Login(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Signed in as", a.sess.Principal())
			fmt.Println("Delegation (export as ICVAULT_DELEGATION to reuse):")
			fmt.Println(a.sess.Handle())
			return nil
		},
	}
}

func logoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Terminate the identity provider session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.sess.Initialize(cmd.Context())
			if !a.sess.Authenticated() {
				fmt.Println("Not signed in")
				return nil
			}
			err := a.sess.Logout(cmd.Context())
			fmt.Println("Signed out")
			return err
		},
	}
}

func shellCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive vault shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.sess.Initialize(cmd.Context())
			repl(cmd.Context(), c.app)
			return nil
		},
	}
}

// repl runs the interactive shell loop over the vault view model.
func repl(ctx context.Context, a *app) {
	if a.sess.Authenticated() {
		fmt.Println("Signed in as", a.sess.Principal())
	} else {
		fmt.Println("Not signed in. Vault commands require 'login'.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("icvault> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Println("Bye")
			return
		}
		runShellCommand(ctx, a, args)
	}
}

// vaultCommands are gated behind an authenticated session, mirroring the
// login wall in front of the vault.
var vaultCommands = map[string]bool{
	"views": true, "view": true, "list": true, "select": true,
	"show": true, "reveal": true, "copy": true, "open": true,
}

func runShellCommand(ctx context.Context, a *app, args []string) {
	if vaultCommands[args[0]] && !a.sess.Authenticated() {
		fmt.Println("Sign in first: login")
		return
	}

	switch args[0] {
	case "help":
		fmt.Println("Available commands: help, login, logout, whoami, greet <name>,")
		fmt.Println("  views, view <all|favorites|recent|space-id>, list, select <id>,")
		fmt.Println("  show, reveal <field>, copy <field>, open, exit")
	case "login":
		if a.sess.Authenticated() {
			fmt.Println("Already signed in as", a.sess.Principal())
			return
		}
		if err := a.sess.Login(ctx); err != nil {
			fmt.Println("Login failed:", err)
			return
		}
		fmt.Println("Signed in as", a.sess.Principal())
	case "logout":
		if !a.sess.Authenticated() {
			fmt.Println("Not signed in")
			return
		}
		if err := a.sess.Logout(ctx); err != nil {
			fmt.Println("Logout error:", err)
		}
		fmt.Println("Signed out")
	case "whoami":
		principal, err := a.authedAgent().Whoami(ctx)
		if err != nil {
			fmt.Println("whoami failed:", err)
			return
		}
		fmt.Println(principal)
	case "greet":
		if len(args) < 2 {
			fmt.Println("Usage: greet <name>")
			return
		}
		greeting, err := a.authedAgent().Greet(ctx, strings.Join(args[1:], " "))
		if err != nil {
			fmt.Println("greet failed:", err)
			return
		}
		fmt.Println(greeting)
	case "views":
		fmt.Println("Built-in views: all, favorites, recent")
		for _, s := range a.catalog.Spaces() {
			fmt.Printf("Space %s: %s (%d items)\n", s.ID, s.Name, s.ItemCount)
		}
	case "view":
		if len(args) < 2 {
			fmt.Println("Current view:", a.views.Current())
			return
		}
		a.views.SetView(args[1])
		fmt.Println("Current view:", a.views.Current())
	case "list":
		for _, it := range a.views.Displayed() {
			marker := " "
			if sel := a.views.Selected(); sel != nil && sel.ID == it.ID {
				marker = "*"
			}
			fav := ""
			if it.IsFavorite {
				fav = " ★"
			}
			fmt.Printf("%s %-3s %-10s %s%s\n", marker, it.ID, it.Type, it.Title, fav)
		}
	case "select":
		if len(args) < 2 {
			fmt.Println("Usage: select <id>")
			return
		}
		if !a.views.Select(args[1]) {
			fmt.Println("No such item:", args[1])
			return
		}
		// A different open item starts with everything hidden again.
		a.bridge.Reset()
		fmt.Println("Selected", args[1])
	case "show":
		it := a.views.Selected()
		if it == nil {
			fmt.Println("Nothing selected")
			return
		}
		printItem(a, *it)
	case "reveal":
		if len(args) < 2 {
			fmt.Println("Usage: reveal <field>")
			return
		}
		if a.views.Selected() == nil {
			fmt.Println("Nothing selected")
			return
		}
		if a.bridge.ToggleReveal(args[1]) {
			fmt.Println("Revealed", args[1])
		} else {
			fmt.Println("Hidden", args[1])
		}
	case "copy":
		if len(args) < 2 {
			fmt.Println("Usage: copy <field>")
			return
		}
		it := a.views.Selected()
		if it == nil {
			fmt.Println("Nothing selected")
			return
		}
		label, value, ok := fieldValue(*it, args[1])
		if !ok {
			fmt.Println("No such field:", args[1])
			return
		}
		a.bridge.CopyField(ctx, value, label)
		fmt.Println(a.toasts.Message())
	case "open":
		it := a.views.Selected()
		if it == nil {
			fmt.Println("Nothing selected")
			return
		}
		login, ok := it.Data.(models.LoginData)
		if !ok {
			fmt.Println("Selected item has no website")
			return
		}
		a.bridge.OpenURL(login.URL)
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

// printItem renders the selected item, masking password-like fields that
// have not been revealed.
func printItem(a *app, it models.VaultItem) {
	fmt.Printf("%s (%s)\nSpace: %s\nLast used: %s\n", it.Title, it.Type, it.SpaceID, it.LastUsed.Format("2006-01-02 15:04"))

	switch data := it.Data.(type) {
	case models.LoginData:
		fmt.Println("Username:", data.Username)
		fmt.Println("Password:", a.bridge.Display("password", data.Password))
		fmt.Println("Website:", data.URL)
		if data.Notes != "" {
			fmt.Println("Notes:", data.Notes)
		}
		for _, cf := range data.CustomFields {
			value := cf.Value
			if cf.Type == models.FieldPassword {
				value = a.bridge.Display("custom:"+cf.ID, cf.Value)
			}
			fmt.Printf("%s: %s\n", cf.Label, value)
		}
	case models.CardData:
		fmt.Println("Cardholder:", data.CardholderName)
		fmt.Println("Number:", data.Number)
		fmt.Printf("Expires: %s/%s\n", data.ExpiryMonth, data.ExpiryYear)
		fmt.Println("CVV:", a.bridge.Display("cvv", data.CVV))
		if data.Notes != "" {
			fmt.Println("Notes:", data.Notes)
		}
	case models.NoteData:
		fmt.Println(data.Content)
	case models.IdentityData:
		fmt.Println("Name:", data.Name)
		fmt.Println("Email:", data.Email)
		if data.Phone != "" {
			fmt.Println("Phone:", data.Phone)
		}
		if data.Address != "" {
			fmt.Println("Address:", data.Address)
		}
		if data.Notes != "" {
			fmt.Println("Notes:", data.Notes)
		}
	default:
		fmt.Println("Unsupported item payload")
	}
}

// fieldValue resolves a copyable field of an item to its display label and
// raw value.
func fieldValue(it models.VaultItem, field string) (label, value string, ok bool) {
	switch data := it.Data.(type) {
	case models.LoginData:
		switch field {
		case "username":
			return "Username", data.Username, true
		case "password":
			return "Password", data.Password, true
		case "url":
			return "Website", data.URL, true
		case "notes":
			return "Notes", data.Notes, true
		}
		for _, cf := range data.CustomFields {
			if field == cf.ID || strings.EqualFold(field, cf.Label) {
				return cf.Label, cf.Value, true
			}
		}
	case models.CardData:
		switch field {
		case "cardholder":
			return "Cardholder name", data.CardholderName, true
		case "number":
			return "Card number", data.Number, true
		case "cvv":
			return "CVV", data.CVV, true
		case "notes":
			return "Notes", data.Notes, true
		}
	case models.NoteData:
		if field == "content" {
			return "Note", data.Content, true
		}
	case models.IdentityData:
		switch field {
		case "name":
			return "Name", data.Name, true
		case "email":
			return "Email", data.Email, true
		case "phone":
			return "Phone", data.Phone, true
		case "address":
			return "Address", data.Address, true
		case "notes":
			return "Notes", data.Notes, true
		}
	}
	return "", "", false
}

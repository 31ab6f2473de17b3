package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/dialogue"
	"github.com/dmitrijs2005/volt/internal/logging"
	"github.com/dmitrijs2005/volt/internal/minigame"
	"github.com/dmitrijs2005/volt/internal/reports"
	"github.com/dmitrijs2005/volt/internal/users"
)

// ErrNotAuthenticated is returned when a feature is requested without a
// logged-in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// CredentialStore registers and authenticates users.
type CredentialStore interface {
	Register(ctx context.Context, name, email string, password []byte) (*users.User, error)
	Login(ctx context.Context, name string, password []byte) (*users.User, error)
}

// ReportLog stores and lists issue reports.
type ReportLog interface {
	Append(ctx context.Context, userName, issue string) error
	All(ctx context.Context) iter.Seq2[reports.Report, error]
}

// Console is the line-based terminal the controller talks through.
// ReadLine and ReadSecret return io.EOF when input is exhausted.
type Console interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) ([]byte, error)
	Println(a ...any)
	// PrintText prints assistant output, wrapped for the terminal.
	PrintText(text string)
}

// Deps are the collaborators of a Controller. NewEngine is called once per
// login so conversation history never crosses accounts.
type Deps struct {
	Users     CredentialStore
	Reports   ReportLog
	NewEngine func() dialogue.Engine
	Timer     minigame.Timer
	Console   Console
	Log       logging.Logger
}

type handler func(ctx context.Context) error

// Controller runs one console session at a time.
type Controller struct {
	deps     Deps
	log      logging.Logger
	handlers map[Command]handler

	phase  Phase
	state  State
	engine dialogue.Engine
}

// New validates deps and builds a Controller in the Unauthenticated phase.
func New(deps Deps) (*Controller, error) {
	if deps.Users == nil || deps.Reports == nil || deps.NewEngine == nil || deps.Timer == nil || deps.Console == nil {
		return nil, errors.New("session: missing dependency")
	}
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}

	c := &Controller{deps: deps}
	c.handlers = map[Command]handler{
		CmdDialogue:      c.runDialogue,
		CmdMinigame:      c.runMinigame,
		CmdReports:       c.runReports,
		CmdSwitchAccount: c.switchAccount,
		CmdExit:          c.exit,
	}
	for _, cmd := range commands {
		if _, ok := c.handlers[cmd]; !ok {
			return nil, fmt.Errorf("session: no handler for %s", cmd)
		}
	}

	c.reset()
	return c, nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// State returns a copy of the session state.
func (c *Controller) State() State { return c.state }

// Run loops over authentication and the menu until the user exits or input
// ends. Recoverable failures are reported on the console; storage failures
// and context cancellation end the loop and are returned.
func (c *Controller) Run(ctx context.Context) error {
	c.deps.Console.Println(banner("FORMULA E CHATBOT", "="))

	for c.phase != Terminated {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if c.state.Authenticated {
			err = c.menu(ctx)
		} else {
			err = c.authenticate(ctx)
		}

		if errors.Is(err, io.EOF) {
			c.log.Info(ctx, "input closed, ending session")
			c.phase = Terminated
			return nil
		}
		if err != nil {
			c.log.Error(ctx, "session aborted", "phase", c.phase, "error", err)
			return err
		}
	}
	return nil
}

// Dispatch executes cmd for the current user.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	if !c.state.Authenticated {
		return ErrNotAuthenticated
	}
	h, ok := c.handlers[cmd]
	if !ok {
		return fmt.Errorf("session: unknown command %s", cmd)
	}
	c.log.Debug(ctx, "dispatch", "command", cmd)
	return h(ctx)
}

// enter moves to phase p, refusing feature phases without a logged-in user.
func (c *Controller) enter(p Phase) error {
	if p.feature() && !c.state.Authenticated {
		return ErrNotAuthenticated
	}
	c.phase = p
	return nil
}

// leave returns to the menu after a feature finishes.
func (c *Controller) leave() {
	if c.phase.feature() {
		c.phase = MenuIdle
	}
}

func (c *Controller) reset() {
	c.state = newState()
	c.engine = nil
	c.phase = Unauthenticated
	c.log = c.deps.Log.With("session", c.state.ID.String())
}

func (c *Controller) bind(ctx context.Context, userName string) {
	c.state.Authenticated = true
	c.state.CurrentUser = userName
	c.engine = c.deps.NewEngine()
	c.phase = MenuIdle
	c.log = c.log.With("user", userName)
	c.log.Info(ctx, "session authenticated")
}

func (c *Controller) authenticate(ctx context.Context) error {
	choice, err := c.deps.Console.ReadLine(authPrompt)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "r":
		return c.register(ctx)
	case "l":
		return c.login(ctx)
	default:
		c.deps.Console.Println(msgInvalidOption)
		return nil
	}
}

func (c *Controller) register(ctx context.Context) error {
	con := c.deps.Console
	con.Println(banner("REGISTER", "-"))

	name, err := con.ReadLine("Name: ")
	if err != nil {
		return err
	}
	email, err := con.ReadLine("E-mail: ")
	if err != nil {
		return err
	}
	password, err := con.ReadSecret("Password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := c.deps.Users.Register(ctx, name, email, password)
	switch {
	case errors.Is(err, common.ErrUsernameTaken):
		con.Println(msgUsernameTaken)
		return nil
	case errors.Is(err, common.ErrInvalidInput):
		con.Println(err.Error())
		return nil
	case err != nil:
		return err
	}

	con.Println(msgRegistered)
	c.bind(ctx, user.UserName)
	return nil
}

func (c *Controller) login(ctx context.Context) error {
	con := c.deps.Console
	con.Println(banner("LOGIN", "-"))

	name, err := con.ReadLine("Name: ")
	if err != nil {
		return err
	}
	password, err := con.ReadSecret("Password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := c.deps.Users.Login(ctx, name, password)
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		con.Println(msgUserNotFound)
		return nil
	case errors.Is(err, common.ErrInvalidCredentials):
		con.Println(msgWrongPassword)
		return nil
	case err != nil:
		return err
	}

	con.Println(fmt.Sprintf("Hello %s, you have logged in successfully!", capitalize(user.UserName)))
	c.bind(ctx, user.UserName)
	return nil
}

func (c *Controller) menu(ctx context.Context) error {
	input, err := c.deps.Console.ReadLine(menuPrompt)
	if err != nil {
		return err
	}
	cmd, ok := ParseCommand(input)
	if !ok {
		c.deps.Console.Println(msgInvalidOption + " Try again.")
		return nil
	}
	return c.Dispatch(ctx, cmd)
}

func (c *Controller) runDialogue(ctx context.Context) error {
	if err := c.enter(InDialogue); err != nil {
		return err
	}
	defer c.leave()

	if !c.chat(ctx, dialogue.GreetingPrompt) {
		return ctx.Err()
	}
	for {
		line, err := c.deps.Console.ReadLine(chatPrompt)
		if err != nil {
			return err
		}
		if line == dialogue.ExitSentinel {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !c.chat(ctx, line) {
			return ctx.Err()
		}
	}
}

// chat sends one turn and prints the reply. It reports false when the
// engine failed and the dialogue must end.
func (c *Controller) chat(ctx context.Context, prompt string) bool {
	reply, err := c.engine.Send(ctx, prompt)
	if err != nil {
		c.log.Error(ctx, "dialogue engine failed", "error", err)
		c.deps.Console.Println("The assistant is unavailable right now: " + err.Error())
		return false
	}
	c.deps.Console.PrintText(dialogue.FormatReply(reply))
	return true
}

func (c *Controller) runMinigame(ctx context.Context) error {
	if err := c.enter(InMinigame); err != nil {
		return err
	}
	defer c.leave()

	elapsed, err := c.deps.Timer.Measure(ctx)
	if errors.Is(err, io.EOF) || ctx.Err() != nil {
		return err
	}
	if err != nil {
		c.log.Error(ctx, "reaction measurement failed", "error", err)
		c.deps.Console.Println("The minigame could not measure your time: " + err.Error())
		return nil
	}
	rating := minigame.Classify(elapsed)
	c.log.Info(ctx, "reaction measured", "elapsed", elapsed, "rating", rating)
	c.deps.Console.Println(fmt.Sprintf("Time: %d ms | Status: %s",
		elapsed.Round(time.Millisecond).Milliseconds(), strings.ToUpper(rating.String())))
	return nil
}

func (c *Controller) runReports(ctx context.Context) error {
	if err := c.enter(InReports); err != nil {
		return err
	}
	defer c.leave()

	con := c.deps.Console
	choice, err := con.ReadLine(reportsPrompt)
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		issue, err := con.ReadLine("Issue to report: ")
		if err != nil {
			return err
		}
		if err := c.deps.Reports.Append(ctx, c.state.CurrentUser, issue); err != nil {
			return err
		}
		con.Println(msgReported)
	case "2":
		n := 0
		for r, err := range c.deps.Reports.All(ctx) {
			if err != nil {
				return err
			}
			con.Println(fmt.Sprintf("%-10s| %s", r.UserName, r.Issue))
			n++
		}
		if n == 0 {
			con.Println(msgNoReports)
		}
	default:
		con.Println(msgInvalidOption)
	}
	return nil
}

func (c *Controller) switchAccount(ctx context.Context) error {
	c.log.Info(ctx, "switching account")
	c.reset()
	c.deps.Console.Println(banner("FORMULA E CHATBOT", "="))
	return nil
}

func (c *Controller) exit(ctx context.Context) error {
	answer, err := c.deps.Console.ReadLine(confirmPrompt)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		c.log.Info(ctx, "session finished")
		c.deps.Console.Println(banner("CHAT FINISHED", "="))
		c.phase = Terminated
	}
	return nil
}

package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/olegiv/gov-portal/internal/model"
)

// Command names accepted by App.Dispatch.
const (
	CmdLogin             = "login"
	CmdAdminLogin        = "adminLogin"
	CmdSignup            = "signup"
	CmdLogout            = "logout"
	CmdForgotPassword    = "forgotPassword"
	CmdNavigate          = "navigate"
	CmdBack              = "back"
	CmdShow              = "show"
	CmdSection           = "section"
	CmdAdminSection      = "adminSection"
	CmdSubmitContact     = "submitContact"
	CmdSubmitGrievance   = "submitGrievance"
	CmdApproveFeedback   = "approveFeedback"
	CmdRejectFeedback    = "rejectFeedback"
	CmdCreateContent     = "createContent"
	CmdUpdateContent     = "updateContent"
	CmdDeleteContent     = "deleteContent"
	CmdUpdateUser        = "updateUser"
	CmdDeleteUser        = "deleteUser"
	CmdFilterActivity    = "filterActivity"
	CmdFilterFeedback    = "filterFeedback"
	CmdFilterSchemes     = "filterSchemes"
	CmdApplyScheme       = "applyScheme"
	CmdDownloadForm      = "downloadForm"
	CmdServiceClick      = "serviceClick"
	CmdSearch            = "search"
	CmdTrackApplications = "trackApplications"
	CmdChangeLanguage    = "changeLanguage"
)

// Client describes the browser that issued a command.
type Client struct {
	UserAgent string
	IP        string
}

// Command is a user-initiated event from the presentation layer.
// Args holds the JSON-encoded arguments of the command, if any.
type Command struct {
	Name   string          `json:"name"`
	Args   json.RawMessage `json:"args,omitempty"`
	Client Client          `json:"-"`
}

// NewCommand builds a command with args encoded as JSON.
func NewCommand(name string, args any) (Command, error) {
	if args == nil {
		return Command{Name: name}, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return Command{}, fmt.Errorf("encoding %s args: %w", name, err)
	}
	return Command{Name: name, Args: raw}, nil
}

// CommandHandler handles one command. It only fails for commands the portal
// cannot interpret; service failures become notifications in the view.
type CommandHandler func(ctx context.Context, cmd Command) error

// Presenter is the presentation port. Render receives a fresh view after
// every command and every deferred notification; OnCommand registers the
// handler the presentation layer calls for user events.
type Presenter interface {
	Render(vm ViewModel)
	OnCommand(h CommandHandler)
}

// decodeArgs unmarshals the command arguments into dst. Missing args leave
// dst untouched.
func decodeArgs(cmd Command, dst any) error {
	raw := bytes.TrimSpace(cmd.Args)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrInvalidArguments, cmd.Name, err)
	}
	return nil
}

type loginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginArgs struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupArgs struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeTerms      bool   `json:"agreeTerms"`
}

type navigateArgs struct {
	Page    string `json:"page"`
	Section string `json:"section"`
}

// showArgs selects a page directly or through its Alt+n shortcut.
type showArgs struct {
	Page     string `json:"page"`
	Shortcut int    `json:"shortcut"`
}

type sectionArgs struct {
	Section string `json:"section"`
}

type idArgs struct {
	ID int64 `json:"id"`
}

type userArgs struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// activityFilterArgs leaves UserID nil to list every user.
type activityFilterArgs struct {
	UserID *int64 `json:"userId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type feedbackFilterArgs struct {
	Status string `json:"status"`
	Type   string `json:"type"`
}

type schemeArgs struct {
	Scheme string `json:"scheme"`
}

type formArgs struct {
	Form string `json:"form"`
}

type serviceArgs struct {
	Service string `json:"service"`
}

type searchArgs struct {
	Term string `json:"term"`
}

type languageArgs struct {
	Language string `json:"language"`
}

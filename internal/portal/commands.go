package portal

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/olegiv/gov-portal/internal/model"
	"github.com/olegiv/gov-portal/internal/navigation"
	"github.com/olegiv/gov-portal/internal/service"
)

type commandFunc func(a *App, ctx context.Context, cmd Command) error

var commandHandlers = map[string]commandFunc{
	CmdLogin:             (*App).login,
	CmdAdminLogin:        (*App).adminLogin,
	CmdSignup:            (*App).signup,
	CmdLogout:            (*App).logout,
	CmdForgotPassword:    (*App).forgotPassword,
	CmdNavigate:          (*App).navigateCmd,
	CmdBack:              (*App).back,
	CmdShow:              (*App).showCmd,
	CmdSection:           (*App).section,
	CmdAdminSection:      (*App).adminSectionCmd,
	CmdSubmitContact:     (*App).submitContact,
	CmdSubmitGrievance:   (*App).submitGrievance,
	CmdApproveFeedback:   (*App).approveFeedback,
	CmdRejectFeedback:    (*App).rejectFeedback,
	CmdCreateContent:     (*App).createContent,
	CmdUpdateContent:     (*App).updateContent,
	CmdDeleteContent:     (*App).deleteContent,
	CmdUpdateUser:        (*App).updateUser,
	CmdDeleteUser:        (*App).deleteUser,
	CmdFilterActivity:    (*App).filterActivity,
	CmdFilterFeedback:    (*App).filterFeedback,
	CmdFilterSchemes:     (*App).filterSchemes,
	CmdApplyScheme:       (*App).applyScheme,
	CmdDownloadForm:      (*App).downloadForm,
	CmdServiceClick:      (*App).serviceClick,
	CmdSearch:            (*App).searchCmd,
	CmdTrackApplications: (*App).trackApplications,
	CmdChangeLanguage:    (*App).changeLanguage,
}

// Commands returns the sorted names of every supported command.
func Commands() []string {
	return slices.Sorted(maps.Keys(commandHandlers))
}

// IsLoginCommand reports whether the command checks credentials.
func IsLoginCommand(name string) bool {
	return name == CmdLogin || name == CmdAdminLogin || name == CmdSignup
}

func (a *App) login(ctx context.Context, cmd Command) error {
	var args loginArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	if _, err := a.auth.LoginUser(ctx, args.Email, args.Password, cmd.Client.UserAgent); err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, "Login successful! Welcome back.")
	a.navigate(ctx, navigation.PageDashboard, "")
	return nil
}

func (a *App) adminLogin(ctx context.Context, cmd Command) error {
	var args adminLoginArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	if _, err := a.auth.LoginAdmin(ctx, args.Username, args.Password, cmd.Client.UserAgent); err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, "Admin login successful! Welcome to Admin Panel.")
	a.navigate(ctx, navigation.PageAdmin, "")
	return nil
}

func (a *App) signup(ctx context.Context, cmd Command) error {
	var args signupArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	_, err := a.auth.Signup(ctx, service.SignupInput{
		Name:            args.Name,
		Email:           args.Email,
		Phone:           args.Phone,
		Password:        args.Password,
		ConfirmPassword: args.ConfirmPassword,
		AgreeTerms:      args.AgreeTerms,
	}, cmd.Client.UserAgent)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, "Account created successfully! Welcome to Government of India Portal.")
	a.navigate(ctx, navigation.PageDashboard, "")
	return nil
}

func (a *App) logout(ctx context.Context, cmd Command) error {
	a.auth.Logout(ctx, cmd.Client.UserAgent)
	a.notify(NotifyInfo, "You have been logged out successfully.")
	a.show(ctx, navigation.PageHome)
	return nil
}

func (a *App) forgotPassword(context.Context, Command) error {
	a.notify(NotifyInfo, "Password reset link has been sent to your email address.")
	return nil
}

func (a *App) navigateCmd(ctx context.Context, cmd Command) error {
	var args navigateArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}
	if args.Page == "" {
		return fmt.Errorf("%w: %s: page is required", model.ErrInvalidArguments, cmd.Name)
	}
	a.navigate(ctx, args.Page, args.Section)
	return nil
}

func (a *App) back(ctx context.Context, _ Command) error {
	top := a.nav.GoBack()
	if a.nav.Current() != top.Page {
		return nil
	}
	a.onPageShown(ctx, top.Page)
	if top.Section != "" {
		a.logSection(ctx, top.Section)
	}
	return nil
}

func (a *App) showCmd(ctx context.Context, cmd Command) error {
	var args showArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	page := args.Page
	if args.Shortcut != 0 {
		p, ok := navigation.ShortcutPage(args.Shortcut)
		if !ok {
			return fmt.Errorf("%w: %s: no page on shortcut %d", model.ErrInvalidArguments, cmd.Name, args.Shortcut)
		}
		page = p
	}
	if page == "" {
		return fmt.Errorf("%w: %s: page or shortcut is required", model.ErrInvalidArguments, cmd.Name)
	}
	a.show(ctx, page)
	return nil
}

func (a *App) section(ctx context.Context, cmd Command) error {
	var args sectionArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}
	a.nav.SetSection(args.Section)
	a.logSection(ctx, args.Section)
	return nil
}

func (a *App) adminSectionCmd(ctx context.Context, cmd Command) error {
	var args sectionArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}
	if err := a.auth.RequireAdmin(); err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	if !slices.Contains(adminSections, args.Section) {
		return fmt.Errorf("%w: %s: unknown section %q", model.ErrInvalidArguments, cmd.Name, args.Section)
	}
	a.adminSection = args.Section
	return nil
}

func (a *App) submitContact(ctx context.Context, cmd Command) error {
	var in service.ContactInput
	if err := decodeArgs(cmd, &in); err != nil {
		return err
	}

	if _, err := a.feedback.SubmitContact(ctx, in); err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, "Your message has been sent successfully. We will get back to you soon.")
	return nil
}

func (a *App) submitGrievance(ctx context.Context, cmd Command) error {
	var in service.GrievanceInput
	if err := decodeArgs(cmd, &in); err != nil {
		return err
	}

	f, err := a.feedback.SubmitGrievance(ctx, in)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("Grievance submitted successfully! Your reference number is %s.", f.ReferenceNumber))
	return nil
}

func (a *App) approveFeedback(ctx context.Context, cmd Command) error {
	return a.reviewFeedback(ctx, cmd, a.feedback.Approve, "approved")
}

func (a *App) rejectFeedback(ctx context.Context, cmd Command) error {
	return a.reviewFeedback(ctx, cmd, a.feedback.Reject, "rejected")
}

func (a *App) reviewFeedback(ctx context.Context, cmd Command, review func(context.Context, int64) (model.Feedback, error), outcome string) error {
	var args idArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	f, err := review(ctx, args.ID)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("Feedback from %s has been %s", f.Name, outcome))
	return nil
}

type contentArgs struct {
	ID int64 `json:"id"`
	service.ContentInput
}

func (a *App) createContent(ctx context.Context, cmd Command) error {
	var args contentArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	c, err := a.content.Create(ctx, args.ContentInput)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("Content %q has been added", c.Title))
	return nil
}

func (a *App) updateContent(ctx context.Context, cmd Command) error {
	var args contentArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	c, err := a.content.Update(ctx, args.ID, args.ContentInput)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("Content %q has been updated", c.Title))
	return nil
}

func (a *App) deleteContent(ctx context.Context, cmd Command) error {
	var args idArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	c, err := a.content.Delete(ctx, args.ID)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("Content %q has been deleted", c.Title))
	return nil
}

func (a *App) updateUser(ctx context.Context, cmd Command) error {
	var args userArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	u, err := a.users.Update(ctx, args.ID, service.UserUpdate{
		Name:   args.Name,
		Email:  args.Email,
		Role:   args.Role,
		Status: args.Status,
	})
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("User %s has been updated", u.Name))
	return nil
}

func (a *App) deleteUser(ctx context.Context, cmd Command) error {
	var args idArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	u, err := a.users.Delete(ctx, args.ID)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifySuccess, fmt.Sprintf("User %s has been deleted", u.Name))
	if !a.auth.IsLoggedIn() {
		a.show(ctx, navigation.PageHome)
	}
	return nil
}

func (a *App) filterActivity(_ context.Context, cmd Command) error {
	var args activityFilterArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}
	a.activityFilter = service.ActivityFilter{UserID: args.UserID, From: args.From, To: args.To}
	return nil
}

func (a *App) filterFeedback(_ context.Context, cmd Command) error {
	args := feedbackFilterArgs{Status: "all", Type: "all"}
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}
	a.feedbackStatus, a.feedbackType = args.Status, args.Type
	return nil
}

func (a *App) filterSchemes(_ context.Context, cmd Command) error {
	var f service.SchemeFilter
	if err := decodeArgs(cmd, &f); err != nil {
		return err
	}
	a.schemeFilter = f
	return nil
}

func (a *App) applyScheme(ctx context.Context, cmd Command) error {
	var args schemeArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	if err := a.schemes.Apply(ctx, args.Scheme); err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.notify(NotifyInfo, fmt.Sprintf("Opening application form for %s...", args.Scheme))
	a.notifyLater(a.opts.ResultDelay, NotifySuccess, fmt.Sprintf("Redirected to %s application form", args.Scheme))
	return nil
}

func (a *App) downloadForm(ctx context.Context, cmd Command) error {
	var args formArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	a.notify(NotifyInfo, fmt.Sprintf("Downloading %s form...", args.Form))
	a.citizen.DownloadForm(ctx, args.Form)
	a.notifyLater(a.opts.DownloadDelay, NotifySuccess, fmt.Sprintf("%s form downloaded successfully!", args.Form))
	return nil
}

// serviceClick opens the schemes page filtered by the clicked service.
func (a *App) serviceClick(ctx context.Context, cmd Command) error {
	var args serviceArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	a.navigate(ctx, navigation.PageSchemes, "")
	a.schemeFilter = service.SchemeFilter{Category: args.Service}
	a.citizen.ServiceClick(ctx, args.Service)
	return nil
}

func (a *App) searchCmd(ctx context.Context, cmd Command) error {
	var args searchArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	res, err := a.citizen.Search(ctx, args.Term)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.search = &res
	a.notify(NotifyInfo, "Searching for: "+res.Term)
	a.notifyLater(a.opts.ResultDelay, NotifySuccess, fmt.Sprintf("Found %d results for %q", res.Count(), res.Term))
	return nil
}

func (a *App) trackApplications(_ context.Context, cmd Command) error {
	apps, err := a.schemes.TrackApplications()
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	if len(apps) == 0 {
		a.notify(NotifyInfo, "You have not submitted any applications yet")
		return nil
	}

	var b strings.Builder
	b.WriteString("Your Applications:\n\n")
	for i, app := range apps {
		fmt.Fprintf(&b, "%d. %s\nDate: %s\n\n", i+1, app.Details, app.Timestamp)
	}
	a.notify(NotifyInfo, b.String())
	return nil
}

func (a *App) changeLanguage(ctx context.Context, cmd Command) error {
	var args languageArgs
	if err := decodeArgs(cmd, &args); err != nil {
		return err
	}

	lang, err := a.citizen.ChangeLanguage(ctx, args.Language)
	if err != nil {
		a.report(cmd.Name, err)
		return nil
	}
	a.language = lang
	a.notify(NotifyInfo, "Language changed to "+lang.Name)
	return nil
}

// errorMessages overrides the generic notification of an error kind for
// one command.
var errorMessages = map[string]map[model.Error]Notification{
	CmdLogin: {
		model.ErrInvalidCredentials: {NotifyError, "Invalid email or password"},
	},
	CmdAdminLogin: {
		model.ErrInvalidCredentials: {NotifyError, "Invalid admin credentials"},
	},
	CmdSignup: {
		model.ErrPasswordMismatch: {NotifyError, "Passwords do not match"},
		model.ErrTermsNotAccepted: {NotifyError, "You must agree to terms and conditions"},
	},
	CmdSubmitContact: {
		model.ErrValidationFailed: {NotifyError, "Please correct errors in form and try again."},
	},
	CmdSubmitGrievance: {
		model.ErrValidationFailed: {NotifyError, "Please fill in all required fields"},
	},
	CmdApplyScheme: {
		model.ErrLoginRequired: {NotifyWarning, "Please login to apply for schemes"},
	},
	CmdTrackApplications: {
		model.ErrLoginRequired: {NotifyWarning, "Please login to track your applications"},
	},
}

// defaultErrorMessages are used when a command has no override.
var defaultErrorMessages = map[model.Error]Notification{
	model.ErrInvalidCredentials: {NotifyError, "Invalid credentials"},
	model.ErrDuplicateEmail:     {NotifyError, "User with this email already exists"},
	model.ErrNotFound:           {NotifyError, "The requested item no longer exists"},
	model.ErrLoginRequired:      {NotifyWarning, "Please login to continue"},
	model.ErrAdminRequired:      {NotifyError, "Admin access required"},
}

var errorKinds = []model.Error{
	model.ErrInvalidCredentials,
	model.ErrPasswordMismatch,
	model.ErrTermsNotAccepted,
	model.ErrDuplicateEmail,
	model.ErrNotFound,
	model.ErrValidationFailed,
	model.ErrLoginRequired,
	model.ErrAdminRequired,
}

// report turns a service error into a notification. Validation errors also
// expose their field errors; errors of unknown kinds are logged.
func (a *App) report(cmdName string, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		a.fieldErrors = verr.Fields
	}

	for _, kind := range errorKinds {
		if !errors.Is(err, kind) {
			continue
		}
		if n, ok := errorMessages[cmdName][kind]; ok {
			a.notifications = append(a.notifications, n)
			return
		}
		if n, ok := defaultErrorMessages[kind]; ok {
			a.notifications = append(a.notifications, n)
			return
		}
		if verr != nil && len(verr.Fields) > 0 {
			a.notify(validationNotice(cmdName), verr.Fields[0].Message)
			return
		}
		a.notify(NotifyError, "Please check the form and try again.")
		return
	}

	a.logger.Error("command failed", "command", cmdName, "error", err)
	a.notify(NotifyError, "Something went wrong. Please try again.")
}

// validationNotice is the notification type of a validation failure.
func validationNotice(cmdName string) NotificationType {
	if cmdName == CmdSearch {
		return NotifyWarning
	}
	return NotifyError
}

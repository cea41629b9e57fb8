package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcmarket/mcmarket-client/internal/app"
	"github.com/mcmarket/mcmarket-client/internal/guard"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/service"
	"github.com/mcmarket/mcmarket-client/internal/store"
	"github.com/mcmarket/mcmarket-client/models"
)

type screen int

const (
	screenLoading screen = iota
	screenWelcome
	screenLegal
	screenLogin
	screenRegister
	screenEmailVerify
	screenRoleWelcome
	screenBuyerDashboard
	screenSellerDashboard
	screenAdminDashboard
	screenDeals
	screenCreateListing
	screenMakeOffer
	screenVerifyPrompt
	screenAuthRequired
	screenSupport
)

// appModel is the single Bubble Tea model of the client. Every screen change
// goes through navigate, which asks the route guards what may render; the
// model itself never re-implements an authorization rule.
type appModel struct {
	ctx         context.Context
	services    *service.ClientServices
	onboardings store.OnboardingRepository
	logger      *logger.Logger

	currentScreen screen
	currentPath   string

	// pendingPath is a navigation the guard parked behind the loading
	// placeholder; it is retried once the bootstrap resolves.
	pendingPath string

	// afterAuthPath is where a fresh login or registration lands once the
	// onboarding routing (terms, welcome animation) is done.
	afterAuthPath string

	onboarding models.OnboardingState

	loading      loadingModel
	welcome      welcomeModel
	legal        legalModel
	login        loginModel
	register     registerModel
	emailVerify  emailVerifyModel
	roleWelcome  roleWelcomeModel
	dashboard    dashboardModel
	verify       verifyPromptModel
	authRequired authRequiredModel
	support      supportModel

	showError    bool
	errorOverlay errorOverlayModel
}

func newAppModel(ctx context.Context, services *service.ClientServices, onboardings store.OnboardingRepository, log *logger.Logger) appModel {
	return appModel{
		ctx:           ctx,
		services:      services,
		onboardings:   onboardings,
		logger:        log,
		currentScreen: screenLoading,
		loading:       newLoadingModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loading.spinner.Tick, m.cmdBootstrap())
}

// navigate resolves path against the route table, runs the gates against the
// live session snapshot, and executes the resulting decision. Redirect
// chains (wrong role to own home, anonymous to login) settle here.
func (m appModel) navigate(path string) (appModel, tea.Cmd) {
	route := guard.Resolve(pathOnly(path))
	snapshot := m.services.Session.Snapshot()
	decision := guard.Decide(snapshot, route.Requirement, path)

	switch decision.Kind {
	case guard.DecisionLoading:
		m.pendingPath = path
		m.currentScreen = screenLoading
		return m, m.loading.spinner.Tick
	case guard.DecisionRedirect:
		return m.navigate(decision.RedirectTo)
	case guard.DecisionAuthRequired:
		m.authRequired = authRequiredModel{returnTo: decision.ReturnTo}
		m.currentScreen = screenAuthRequired
		m.currentPath = route.Path
		return m, nil
	case guard.DecisionVerifyPrompt:
		m.verify = verifyPromptModel{prompt: decision.Prompt, returnTo: pathOnly(path)}
		m.currentScreen = screenVerifyPrompt
		m.currentPath = route.Path
		return m, nil
	}

	return m.enter(route, path, snapshot)
}

// enter materialises the screen of an allowed route.
func (m appModel) enter(route guard.Route, path string, snapshot models.SessionSnapshot) (appModel, tea.Cmd) {
	m.currentPath = route.Path

	switch route.Screen {
	case guard.ScreenWelcome:
		m.welcome = newWelcomeModel(snapshot)
		m.currentScreen = screenWelcome
	case guard.ScreenLegal:
		m.legal = legalModel{}
		m.currentScreen = screenLegal
	case guard.ScreenLogin:
		m.login = newLoginModel()
		if target, ok := guard.RedirectTarget(path); ok {
			m.login.redirect = target
		}
		m.currentScreen = screenLogin
		return m, textinput.Blink
	case guard.ScreenRegister:
		m.register = newRegisterModel()
		m.currentScreen = screenRegister
		return m, textinput.Blink
	case guard.ScreenBuyerDashboard:
		m.dashboard = dashboardModel{}
		m.currentScreen = screenBuyerDashboard
	case guard.ScreenSellerDashboard:
		m.dashboard = dashboardModel{}
		m.currentScreen = screenSellerDashboard
	case guard.ScreenAdminDashboard:
		m.dashboard = dashboardModel{}
		m.currentScreen = screenAdminDashboard
	case guard.ScreenDealRoom:
		m.currentScreen = screenDeals
	case guard.ScreenCreateListing:
		m.currentScreen = screenCreateListing
	case guard.ScreenMakeOffer:
		m.currentScreen = screenMakeOffer
	case guard.ScreenSupport:
		m.support = newSupportModel()
		m.currentScreen = screenSupport
		return m, textinput.Blink
	}

	return m, nil
}

// home is the canonical landing path for the current session state.
func (m appModel) home() string {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return guard.PathRoot
	}
	return guard.HomeFor(snapshot.Identity.Role)
}

// afterAuth routes a freshly authenticated identity through the onboarding
// steps (terms acceptance, role welcome) before landing on target.
func (m appModel) afterAuth(target string) (appModel, tea.Cmd) {
	snapshot := m.services.Session.Snapshot()
	if snapshot.Identity == nil {
		return m.navigate(guard.PathRoot)
	}

	if target == "" {
		target = guard.HomeFor(snapshot.Identity.Role)
	}
	m.afterAuthPath = target

	return m, m.cmdLoadOnboarding(snapshot.Identity.ID)
}

// continueOnboarding advances past whichever onboarding step just finished:
// terms still unaccepted shows the legal screen, an unseen welcome plays the
// animation, otherwise the parked target navigation resumes.
func (m appModel) continueOnboarding() (appModel, tea.Cmd) {
	snapshot := m.services.Session.Snapshot()
	identity := snapshot.Identity
	if identity == nil {
		return m.navigate(guard.PathRoot)
	}

	if !identity.IsAdmin() && m.onboarding.AcceptedTermsAt == nil {
		m.legal = legalModel{required: true}
		m.currentScreen = screenLegal
		m.currentPath = guard.PathLegal
		return m, nil
	}

	if !m.onboarding.SeenWelcomeFor(identity.Role) {
		m.roleWelcome = newRoleWelcomeModel(identity.Role)
		m.currentScreen = screenRoleWelcome
		return m, cmdWelcomeTick()
	}

	target := m.afterAuthPath
	m.afterAuthPath = ""
	if target == "" {
		target = guard.HomeFor(identity.Role)
	}
	return m.navigate(target)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if key.Matches(msg, keys.logout) && m.services.Session.IsAuthenticated() {
			return m, m.cmdLogout()
		}
		if key.Matches(msg, keys.support) && m.services.Session.IsAuthenticated() && m.currentScreen != screenSupport {
			return m.navigate(guard.PathSupport)
		}

	case bootstrapDoneMsg:
		if m.pendingPath != "" {
			path := m.pendingPath
			m.pendingPath = ""
			return m.navigate(path)
		}
		if m.services.Session.IsAuthenticated() {
			return m.afterAuth("")
		}
		return m.navigate(guard.PathRoot)

	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrSuperseded) {
				return m.navigate(guard.PathRoot)
			}
			if errors.Is(msg.err, service.ErrServerUnavailable) {
				m.showErrorf(msg.err.Error())
				return m, nil
			}
			m.login.errMsg = msg.err.Error()
			return m, nil
		}
		return m.afterAuth(m.login.redirect)

	case registerDoneMsg:
		m.register.submitting = false
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrSuperseded) {
				return m.navigate(guard.PathRoot)
			}
			if errors.Is(msg.err, service.ErrServerUnavailable) {
				m.showErrorf(msg.err.Error())
				return m, nil
			}
			m.register.errMsg = msg.err.Error()
			return m, nil
		}
		m.emailVerify = newEmailVerifyModel()
		m.currentScreen = screenEmailVerify
		return m, textinput.Blink

	case emailVerifiedMsg:
		m.emailVerify.submitting = false
		if msg.err != nil {
			m.emailVerify.errMsg = msg.err.Error()
			return m, nil
		}
		return m.afterAuth("")

	case emailResentMsg:
		if msg.err != nil {
			m.emailVerify.errMsg = msg.err.Error()
			return m, nil
		}
		m.emailVerify.errMsg = ""
		m.emailVerify.status = "Verification email sent"
		return m, nil

	case logoutDoneMsg:
		m.afterAuthPath = ""
		m.onboarding = models.OnboardingState{}
		return m.navigate(guard.PathRoot)

	case onboardingLoadedMsg:
		identity := m.services.Session.Snapshot().Identity
		if identity == nil {
			return m.navigate(guard.PathRoot)
		}
		state := msg.state
		if msg.err != nil {
			if !errors.Is(msg.err, store.ErrOnboardingNotFound) {
				m.logger.Err(msg.err).Str("func", "appModel.Update").Msg("failed to load onboarding state")
			}
			state = models.OnboardingState{IdentityID: identity.ID}
		}
		m.onboarding = state
		return m.continueOnboarding()

	case onboardingSavedMsg:
		if msg.err != nil {
			// secondary data, the flow continues and the flag is retried
			// next time around
			m.logger.Err(msg.err).Str("func", "appModel.Update").Msg("failed to save onboarding state")
		}
		return m.continueOnboarding()

	case completionCheckedMsg:
		m.dashboard.status = fmt.Sprintf("Profile is %d%% complete", msg.percent)
		return m, cmdClearStatus()

	case verificationStartedMsg:
		m.verify.starting = false
		if msg.err != nil {
			m.verify.errMsg = msg.err.Error()
			return m, nil
		}
		m.verify.url = msg.url
		m.verify.status = "Open the link in your browser to continue"
		return m, nil

	case identityRefreshedMsg:
		if m.currentScreen != screenVerifyPrompt {
			return m, nil
		}
		if msg.err != nil {
			m.verify.errMsg = app.MsgServerUnavailable
			return m, nil
		}
		// re-run the gate against the refreshed identity; a completed flow
		// falls through to the requested content
		return m.navigate(m.verify.returnTo)

	case threadCreatedMsg:
		if msg.err != nil {
			m.support.sending = false
			m.support.errMsg = msg.err.Error()
			return m, nil
		}
		thread := msg.thread
		m.support.thread = &thread
		if m.support.pending != "" {
			return m, m.cmdSendSupport(thread.ID, m.support.pending)
		}
		m.support.sending = false
		return m, nil

	case supportSentMsg:
		m.support.sending = false
		if msg.err != nil {
			m.support.errMsg = msg.err.Error()
			return m, nil
		}
		m.support.pending = ""
		m.support.messages = append(m.support.messages, msg.message)
		return m, nil

	case copiedMsg:
		if m.currentScreen != screenVerifyPrompt {
			return m, nil
		}
		if msg.err != nil {
			m.verify.errMsg = "could not copy the link to the clipboard"
			return m, nil
		}
		m.verify.status = "Link copied!"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.dashboard.status = ""
		if m.verify.status == "Link copied!" {
			m.verify.status = ""
		}
		return m, nil

	case welcomeTickMsg:
		return m.updateRoleWelcomeTick()

	case spinner.TickMsg:
		if m.currentScreen == screenLoading {
			var cmd tea.Cmd
			m.loading.spinner, cmd = m.loading.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenWelcome:
		return m.updateWelcome(msg)
	case screenLegal:
		return m.updateLegal(msg)
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenEmailVerify:
		return m.updateEmailVerify(msg)
	case screenRoleWelcome:
		return m.updateRoleWelcome(msg)
	case screenBuyerDashboard, screenSellerDashboard, screenAdminDashboard:
		return m.updateDashboard(msg)
	case screenDeals, screenCreateListing, screenMakeOffer:
		return m.updateGated(msg)
	case screenVerifyPrompt:
		return m.updateVerifyPrompt(msg)
	case screenAuthRequired:
		return m.updateAuthRequired(msg)
	case screenSupport:
		return m.updateSupport(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenLoading:
		body = m.loading.View()
	case screenWelcome:
		body = m.welcome.View()
	case screenLegal:
		body = m.legal.View()
	case screenLogin:
		body = m.login.View()
	case screenRegister:
		body = m.register.View()
	case screenEmailVerify:
		body = m.emailVerify.View()
	case screenRoleWelcome:
		body = m.roleWelcome.View()
	case screenBuyerDashboard:
		body = m.viewBuyerDashboard()
	case screenSellerDashboard:
		body = m.viewSellerDashboard()
	case screenAdminDashboard:
		body = m.viewAdminDashboard()
	case screenDeals:
		body = m.viewDeals()
	case screenCreateListing:
		body = m.viewCreateListing()
	case screenMakeOffer:
		body = m.viewMakeOffer()
	case screenVerifyPrompt:
		body = m.verify.View()
	case screenAuthRequired:
		body = m.authRequired.View()
	case screenSupport:
		body = m.support.View()
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// ── Per-screen updates ───────────────────────────────────────────────────────

func (m appModel) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.welcome.idx > 0 {
			m.welcome.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.welcome.idx < len(m.welcome.items)-1 {
			m.welcome.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item := m.welcome.items[m.welcome.idx]
		switch item.action {
		case welcomeGoTo:
			return m.navigate(item.path)
		case welcomeLogout:
			return m, m.cmdLogout()
		case welcomeQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) updateLegal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if !m.legal.required {
		if key.Matches(keyMsg, keys.esc) || key.Matches(keyMsg, keys.enter) {
			return m.navigate(guard.PathRoot)
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.space):
		m.legal.accepted = !m.legal.accepted
		m.legal.errMsg = ""
	case key.Matches(keyMsg, keys.enter):
		if !m.legal.accepted {
			m.legal.errMsg = app.MsgLegalNotAccepted
			return m, nil
		}
		identity := m.services.Session.Snapshot().Identity
		if identity == nil {
			return m.navigate(guard.PathRoot)
		}
		now := time.Now()
		m.onboarding.IdentityID = identity.ID
		m.onboarding.AcceptedTermsAt = &now
		return m, m.cmdSaveOnboarding(m.onboarding)
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(guard.PathRoot)
		case key.Matches(keyMsg, keys.tab):
			m.login = focusNextLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = focusPrevLogin(m.login)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			email := strings.TrimSpace(m.login.inputs[0].Value())
			password := m.login.inputs[1].Value()
			if email == "" || password == "" {
				m.login.errMsg = "email and password are required"
				return m, nil
			}
			m.login.errMsg = ""
			m.login.submitting = true
			return m, m.cmdLogin(models.Credentials{Email: email, Password: password})
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(guard.PathRoot)
		case key.Matches(keyMsg, keys.tab):
			m.register = focusNextRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.register = focusPrevRegister(m.register)
			return m, nil
		case key.Matches(keyMsg, keys.left), key.Matches(keyMsg, keys.right):
			if m.register.focus == registerRoleRow {
				m.register.roleIdx = (m.register.roleIdx + 1) % len(registerRoles)
				return m, nil
			}
		case key.Matches(keyMsg, keys.enter):
			if m.register.submitting {
				return m, nil
			}
			name := strings.TrimSpace(m.register.inputs[0].Value())
			email := strings.TrimSpace(m.register.inputs[1].Value())
			phone := strings.TrimSpace(m.register.inputs[2].Value())
			password := m.register.inputs[3].Value()
			repeat := m.register.inputs[4].Value()
			if name == "" || email == "" || password == "" {
				m.register.errMsg = "name, email and password are required"
				return m, nil
			}
			if password != repeat {
				m.register.errMsg = app.MsgPasswordMismatch
				return m, nil
			}
			m.register.errMsg = ""
			m.register.submitting = true
			return m, m.cmdRegister(models.RegisterRequest{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     m.register.role(),
				Phone:    phone,
			})
		}
	}

	if m.register.focus < len(m.register.inputs) {
		var cmd tea.Cmd
		m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateEmailVerify(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			// the address can be confirmed later through the resend action
			return m.afterAuth("")
		case key.Matches(keyMsg, keys.resend):
			return m, m.cmdResendVerificationEmail()
		case key.Matches(keyMsg, keys.enter):
			if m.emailVerify.submitting {
				return m, nil
			}
			token := strings.TrimSpace(m.emailVerify.input.Value())
			if token == "" {
				m.emailVerify.errMsg = "enter the code from the email"
				return m, nil
			}
			m.emailVerify.errMsg = ""
			m.emailVerify.submitting = true
			return m, m.cmdVerifyEmail(token)
		}
	}

	var cmd tea.Cmd
	m.emailVerify.input, cmd = m.emailVerify.input.Update(msg)
	return m, cmd
}

func (m appModel) updateRoleWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.skip) || key.Matches(keyMsg, keys.enter) {
		return m.finishRoleWelcome()
	}
	return m, nil
}

func (m appModel) updateRoleWelcomeTick() (tea.Model, tea.Cmd) {
	if m.currentScreen != screenRoleWelcome {
		return m, nil
	}

	m.roleWelcome.frame++
	if m.roleWelcome.done() {
		return m.finishRoleWelcome()
	}
	return m, cmdWelcomeTick()
}

func (m appModel) finishRoleWelcome() (tea.Model, tea.Cmd) {
	identity := m.services.Session.Snapshot().Identity
	if identity == nil {
		return m.navigate(guard.PathRoot)
	}

	m.onboarding.IdentityID = identity.ID
	m.onboarding.MarkWelcomeSeen(identity.Role)
	return m, m.cmdSaveOnboarding(m.onboarding)
}

func (m appModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.deals):
		return m.navigate(guard.PathDeals)
	case key.Matches(keyMsg, keys.listing):
		if m.currentScreen == screenSellerDashboard {
			return m.navigate(guard.PathCreateListing)
		}
	case key.Matches(keyMsg, keys.offer):
		if m.currentScreen == screenBuyerDashboard {
			return m.navigate(guard.PathMakeOffer)
		}
	case key.Matches(keyMsg, keys.profile):
		if m.currentScreen != screenAdminDashboard {
			return m, m.cmdCheckProfile()
		}
	}
	return m, nil
}

func (m appModel) updateGated(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.esc) {
		return m.navigate(m.home())
	}
	return m, nil
}

func (m appModel) updateVerifyPrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m.navigate(m.home())
	case key.Matches(keyMsg, keys.enter):
		if m.verify.prompt == guard.PromptWait || m.verify.starting {
			return m, nil
		}
		m.verify.starting = true
		m.verify.errMsg = ""
		return m, m.cmdStartVerification()
	case key.Matches(keyMsg, keys.copy):
		if m.verify.url == "" {
			return m, nil
		}
		return m, cmdCopyToClipboard(m.verify.url)
	case key.Matches(keyMsg, keys.refresh):
		return m, m.cmdRefreshIdentity()
	}
	return m, nil
}

func (m appModel) updateAuthRequired(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.esc):
		return m.navigate(guard.PathRoot)
	case key.Matches(keyMsg, keys.up):
		if m.authRequired.idx > 0 {
			m.authRequired.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.authRequired.idx < len(authRequiredItems)-1 {
			m.authRequired.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		if m.authRequired.idx == 0 {
			return m.navigate(guard.LoginRedirect(m.authRequired.returnTo))
		}
		return m.navigate(guard.PathRegister)
	}
	return m, nil
}

func (m appModel) updateSupport(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m.navigate(m.home())
		case key.Matches(keyMsg, keys.enter):
			if m.support.sending {
				return m, nil
			}
			body := strings.TrimSpace(m.support.input.Value())
			if body == "" {
				return m, nil
			}
			m.support.errMsg = ""
			m.support.sending = true
			m.support.input.SetValue("")
			if m.support.thread == nil {
				m.support.pending = body
				return m, m.cmdCreateThread(fitText(body, 48))
			}
			return m, m.cmdSendSupport(m.support.thread.ID, body)
		}
	}

	var cmd tea.Cmd
	m.support.input, cmd = m.support.input.Update(msg)
	return m, cmd
}

// ── Commands ─────────────────────────────────────────────────────────────────

func (m appModel) cmdBootstrap() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		session.Bootstrap(ctx)
		return bootstrapDoneMsg{}
	}
}

func (m appModel) cmdLogin(creds models.Credentials) tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		identity, err := session.Login(ctx, creds)
		return loginDoneMsg{identity: identity, err: err}
	}
}

func (m appModel) cmdRegister(req models.RegisterRequest) tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		identity, err := session.Register(ctx, req)
		return registerDoneMsg{identity: identity, err: err}
	}
}

func (m appModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		session.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m appModel) cmdLoadOnboarding(identityID string) tea.Cmd {
	ctx := m.ctx
	onboardings := m.onboardings
	return func() tea.Msg {
		state, err := onboardings.Get(ctx, identityID)
		return onboardingLoadedMsg{state: state, err: err}
	}
}

func (m appModel) cmdSaveOnboarding(state models.OnboardingState) tea.Cmd {
	ctx := m.ctx
	onboardings := m.onboardings
	return func() tea.Msg {
		return onboardingSavedMsg{err: onboardings.Put(ctx, state)}
	}
}

func (m appModel) cmdVerifyEmail(token string) tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		return emailVerifiedMsg{err: session.VerifyEmail(ctx, token)}
	}
}

func (m appModel) cmdResendVerificationEmail() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		return emailResentMsg{err: session.ResendVerificationEmail(ctx)}
	}
}

func (m appModel) cmdCheckProfile() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		return completionCheckedMsg{percent: session.CheckProfileComplete(ctx)}
	}
}

func (m appModel) cmdStartVerification() tea.Cmd {
	ctx := m.ctx
	verification := m.services.Verification
	return func() tea.Msg {
		url, err := verification.Start(ctx)
		return verificationStartedMsg{url: url, err: err}
	}
}

func (m appModel) cmdRefreshIdentity() tea.Cmd {
	ctx := m.ctx
	session := m.services.Session
	return func() tea.Msg {
		return identityRefreshedMsg{err: session.RefreshIdentity(ctx)}
	}
}

func (m appModel) cmdCreateThread(subject string) tea.Cmd {
	ctx := m.ctx
	support := m.services.Support
	return func() tea.Msg {
		thread, err := support.CreateThread(ctx, subject)
		return threadCreatedMsg{thread: thread, err: err}
	}
}

func (m appModel) cmdSendSupport(threadID, body string) tea.Cmd {
	ctx := m.ctx
	support := m.services.Support
	return func() tea.Msg {
		message, err := support.SendMessage(ctx, threadID, body)
		return supportSentMsg{message: message, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cmdWelcomeTick() tea.Cmd {
	return tea.Tick(600*time.Millisecond, func(time.Time) tea.Msg {
		return welcomeTickMsg{}
	})
}

func pathOnly(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func focusNextLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func focusPrevLogin(m loginModel) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

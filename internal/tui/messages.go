package tui

import "github.com/mcmarket/mcmarket-client/models"

type bootstrapDoneMsg struct{}

type loginDoneMsg struct {
	identity models.Identity
	err      error
}

type registerDoneMsg struct {
	identity models.Identity
	err      error
}

type logoutDoneMsg struct{}

type emailVerifiedMsg struct {
	err error
}

type emailResentMsg struct {
	err error
}

type onboardingLoadedMsg struct {
	state models.OnboardingState
	err   error
}

type onboardingSavedMsg struct {
	err error
}

type completionCheckedMsg struct {
	percent int
}

type verificationStartedMsg struct {
	url string
	err error
}

type identityRefreshedMsg struct {
	err error
}

type threadCreatedMsg struct {
	thread models.SupportThread
	err    error
}

type supportSentMsg struct {
	message models.SupportMessage
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

type welcomeTickMsg struct{}

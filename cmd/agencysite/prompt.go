package main

import (
	"errors"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var errAborted = errors.New("aborted")

// prompter asks the visitor for input. Implementations return errAborted
// when the visitor cancels.
type prompter interface {
	Input(message, help, def string) (string, error)
	Multiline(message, help, def string) (string, error)
	Select(message, help string, options []string, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(message, help, def string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message, Help: help, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Multiline(message, help, def string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Multiline{Message: message, Help: help, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Select(message, help string, options []string, def string) (string, error) {
	prompt := &survey.Select{Message: message, Help: help, Options: options}
	if slices.Contains(options, def) {
		prompt.Default = def
	}
	var out string
	err := survey.AskOne(prompt, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

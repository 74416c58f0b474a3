package main

import (
	"github.com/AlecAivazis/survey/v2"
)

// A prompter asks for the answer to message, suggesting def.
type prompter func(message, def string) (string, error)

func surveyPrompt(message, def string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: def,
	}

	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}

	return out, nil
}

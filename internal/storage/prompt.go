package storage

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyPrompt renders the pool menu as an interactive single-select list
// on the terminal. Interrupt (ctrl-c) maps to ErrSelectionCancelled.
func SurveyPrompt(message string, choices []Choice, width int) (string, error) {
	tagWidth := 0
	for _, c := range choices {
		if len(c.Tag) > tagWidth {
			tagWidth = len(c.Tag)
		}
	}

	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = fmt.Sprintf("%-*s  %-*s", tagWidth, c.Tag, width, c.Label)
	}

	var answer survey.OptionAnswer
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: len(options),
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrSelectionCancelled
		}
		return "", fmt.Errorf("storage pool prompt failed: %w", err)
	}

	return choices[answer.Index].Tag, nil
}

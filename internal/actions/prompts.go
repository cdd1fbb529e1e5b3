package actions

import (
	"github.com/AlecAivazis/survey/v2"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(message string) (bool, error)

// SurveyConfirm asks a yes/no question on the terminal, defaulting to no
func SurveyConfirm(message string) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

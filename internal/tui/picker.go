package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user dismisses the picker.
var ErrAborted = errors.New("selection aborted")

// PickProject asks the user to choose one of names.
func PickProject(names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no projects to choose from")
	}

	choice := names[0]
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start project").
				Options(huh.NewOptions(names...)...).
				Value(&choice),
		),
	).WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return choice, nil
}

package app

import "github.com/ncruces/zenity"

// Notifier shows a blocking message to the user.
type Notifier func(title, message string) error

// DialogNotifier shows an error dialog and waits until it is dismissed.
func DialogNotifier(title, message string) error {
	return zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}

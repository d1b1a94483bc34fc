// Package browser hands URLs to the desktop: the default browser, or the
// WhatsApp handler for wa.me links.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoNumber is returned when a WhatsApp number has no digits.
var ErrNoNumber = errors.New("no whatsapp number")

// start launches a command without waiting for it. Replaced in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens the specified URL in the user's default browser.
func Open(url string) error {
	name, args, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return start(name, args...)
}

func command(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// WhatsAppURL builds a wa.me chat link from a phone number, keeping only its
// digits. It returns "" when there are none.
func WhatsAppURL(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}

// OpenWhatsApp opens a chat with number.
func OpenWhatsApp(number string) error {
	u := WhatsAppURL(number)
	if u == "" {
		return ErrNoNumber
	}
	return Open(u)
}

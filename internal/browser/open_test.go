package browser

import (
	"errors"
	"reflect"
	"runtime"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"darwin", "open", []string{"https://x.test"}, false},
		{"linux", "xdg-open", []string{"https://x.test"}, false},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://x.test"}, false},
		{"plan9", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := command(tt.goos, "https://x.test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("command(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if name != tt.wantName || !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("command(%q) = %q %v, want %q %v", tt.goos, name, args, tt.wantName, tt.wantArgs)
			}
		})
	}
}

func TestWhatsAppURL(t *testing.T) {
	tests := map[string]string{
		"+966 50 123 4567": "https://wa.me/966501234567",
		"0501234567":       "https://wa.me/0501234567",
		"":                 "",
		"n/a":              "",
	}
	for in, want := range tests {
		if got := WhatsAppURL(in); got != want {
			t.Errorf("WhatsAppURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenWhatsApp(t *testing.T) {
	var gotArgs []string
	orig := start
	start = func(_ string, args ...string) error {
		gotArgs = args
		return nil
	}
	t.Cleanup(func() { start = orig })

	if err := OpenWhatsApp("none"); !errors.Is(err, ErrNoNumber) {
		t.Fatalf("OpenWhatsApp(none) error = %v, want ErrNoNumber", err)
	}
	if gotArgs != nil {
		t.Fatalf("start called for an empty number: %v", gotArgs)
	}

	err := OpenWhatsApp("+966 500")
	if _, _, cmdErr := command(runtime.GOOS, ""); cmdErr != nil {
		if err == nil {
			t.Fatal("expected error on unsupported OS")
		}
		return
	}
	if err != nil {
		t.Fatalf("OpenWhatsApp() error: %v", err)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "https://wa.me/966500" {
		t.Errorf("start args = %v, want wa.me link last", gotArgs)
	}
}

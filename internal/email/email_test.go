package email

import (
	"strings"
	"testing"
)

func TestRenderPasswordReset(t *testing.T) {
	html := renderPasswordReset("Ali Hassan", "483920")

	if !strings.Contains(html, "Hi Ali Hassan,") {
		t.Error("rendered mail is missing the username")
	}
	if !strings.Contains(html, "483920") {
		t.Error("rendered mail is missing the reset code")
	}
	if strings.Contains(html, "{username}") || strings.Contains(html, "{resetCode}") {
		t.Error("rendered mail still contains template placeholders")
	}
}

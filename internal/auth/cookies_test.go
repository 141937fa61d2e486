package auth_test

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"lecturr/internal/auth"
	"lecturr/internal/domain/errs"
)

func writeJar(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCookieFile(t *testing.T) {
	far := time.Now().Add(24 * time.Hour).Unix()
	jar := "# Netscape HTTP Cookie File\n" +
		"# comment line\n" +
		"\n" +
		".echo360.net.au\tTRUE\t/\tTRUE\t" + itoa(far) + "\tPLAY_SESSION\tabc123\n" +
		"#HttpOnly_echo360.net.au\tFALSE\t/\tFALSE\t" + itoa(far) + "\tCloudFront-Key\tdef456\n" +
		"other-site.com\tFALSE\t/\tFALSE\t" + itoa(far) + "\tunrelated\txyz\n"

	cookies, err := auth.ReadCookieFile(writeJar(t, jar), "echo360.net.au")
	if err != nil {
		t.Fatalf("ReadCookieFile failed: %v", err)
	}

	// Only the two platform cookies survive, the HttpOnly prefix is
	// stripped, other domains filtered out
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	if cookies[0].Name != "PLAY_SESSION" || cookies[0].Value != "abc123" {
		t.Errorf("cookies[0] = %s=%s, want PLAY_SESSION=abc123", cookies[0].Name, cookies[0].Value)
	}
	if !cookies[0].Secure {
		t.Errorf("cookies[0].Secure = false, want true")
	}
	if cookies[1].Name != "CloudFront-Key" {
		t.Errorf("cookies[1].Name = %q, want CloudFront-Key", cookies[1].Name)
	}
}

func TestReadCookieFileSkipsExpired(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour).Unix()
	far := time.Now().Add(24 * time.Hour).Unix()
	jar := "# HTTP Cookie File\n" +
		"echo360.net.au\tFALSE\t/\tFALSE\t" + itoa(past) + "\tstale\told\n" +
		"echo360.net.au\tFALSE\t/\tFALSE\t" + itoa(far) + "\tfresh\tnew\n" +
		"echo360.net.au\tFALSE\t/\tFALSE\t0\tsession\tcur\n"

	cookies, err := auth.ReadCookieFile(writeJar(t, jar), "echo360.net.au")
	if err != nil {
		t.Fatalf("ReadCookieFile failed: %v", err)
	}

	// Expired entry dropped, zero-expiry session cookie kept
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	if cookies[0].Name != "fresh" || cookies[1].Name != "session" {
		t.Errorf("unexpected cookies: %v, %v", cookies[0].Name, cookies[1].Name)
	}
}

func TestReadCookieFileRejectsBadInput(t *testing.T) {
	// Missing file
	if _, err := auth.ReadCookieFile(filepath.Join(t.TempDir(), "nope.txt"), "echo360.net.au"); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("missing file: expected ErrConfiguration, got: %v", err)
	}

	// Empty file
	if _, err := auth.ReadCookieFile(writeJar(t, ""), "echo360.net.au"); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("empty file: expected ErrConfiguration, got: %v", err)
	}

	// Unrecognized header
	if _, err := auth.ReadCookieFile(writeJar(t, "just some text\n"), "echo360.net.au"); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("bad header: expected ErrConfiguration, got: %v", err)
	}

	// Wrong column count
	bad := "# Netscape HTTP Cookie File\necho360.net.au\tFALSE\t/\n"
	if _, err := auth.ReadCookieFile(writeJar(t, bad), "echo360.net.au"); !errors.Is(err, errs.ErrConfiguration) {
		t.Errorf("bad columns: expected ErrConfiguration, got: %v", err)
	}
}

func TestWriteNetscapeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out-cookies.txt")
	in := []*http.Cookie{
		{Name: "PLAY_SESSION", Value: "abc", Path: "/", Domain: "echo360.net.au", Secure: true, Expires: time.Now().Add(time.Hour)},
		{Name: "bare", Value: "v", Path: "/"},
	}

	if err := auth.WriteNetscapeFile(in, "echo360.net.au", path); err != nil {
		t.Fatalf("WriteNetscapeFile failed: %v", err)
	}

	out, err := auth.ReadCookieFile(path, "echo360.net.au")
	if err != nil {
		t.Fatalf("written file must parse back: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 cookies back, got %d", len(out))
	}
	if out[0].Name != "PLAY_SESSION" || out[0].Value != "abc" {
		t.Errorf("round trip mismatch: %s=%s", out[0].Name, out[0].Value)
	}
}

func TestNewSessionRequiresCookies(t *testing.T) {
	if _, err := auth.NewSession("https://echo360.net.au", nil, "cookies.txt", "out", false, 0); !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for empty cookie set, got: %v", err)
	}
}

func TestNewSessionPrimesJar(t *testing.T) {
	cookies := []*http.Cookie{{Name: "PLAY_SESSION", Value: "abc", Path: "/"}}

	session, err := auth.NewSession("https://echo360.net.au", cookies, "cookies.txt", "out", true, 3)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if session.Client == nil || session.Client.Jar == nil {
		t.Fatal("session client is missing its cookie jar")
	}
	if !session.Experimental || session.Skip != 3 {
		t.Errorf("session config not carried: %+v", session)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

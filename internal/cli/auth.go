package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"draftkit/internal/apperr"
	"draftkit/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const loginURL = "https://tailwindcss.com/plus/login"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store a TailwindPlus session for fetching components",
	Long: `Store the TailwindPlus session cookie. You log in with your browser and
paste the cookie value here; draftkit never sees your credentials. The
cookie goes into the OS keyring, only non-secret metadata is written to
session.json.`,
	RunE: runAuth,
}

var (
	authStatus  bool
	authLogout  bool
	authRefresh bool
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().BoolVar(&authStatus, "status", false, "show session status")
	authCmd.Flags().BoolVar(&authLogout, "logout", false, "remove the stored session")
	authCmd.Flags().BoolVar(&authRefresh, "refresh", false, "replace an existing session")
}

func runAuth(cmd *cobra.Command, args []string) error {
	paths, _ := loadPaths()
	manager := session.NewManager(paths)

	switch {
	case authStatus:
		return printAuthStatus(manager)
	case authLogout:
		if err := manager.Clear(); err != nil {
			return err
		}
		styler.PrintSuccess("Session removed")
		return nil
	}

	if manager.Exists() && !authRefresh {
		styler.PrintWarning("A session is already stored; use --refresh to replace it")
		return printAuthStatus(manager)
	}

	cookie, err := promptSessionCookie()
	if err != nil {
		return err
	}

	sess := session.Session{
		Cookie: cookie,
		Domain: "tailwindcss.com",
	}
	if err := manager.Save(&sess); err != nil {
		return err
	}

	styler.PrintSuccess("Session stored in the system keyring")
	styler.PrintInfo("Try it: draftkit get <component-id>")
	return nil
}

func printAuthStatus(manager *session.Manager) error {
	sess, err := manager.Load()
	if err != nil {
		if apperr.IsNotFound(err) {
			styler.PrintInfo("Not authenticated; run draftkit auth")
			return nil
		}
		return err
	}

	styler.PrintHeader("Session status")
	const kvWidth = 8
	styler.PrintKV("Domain", sess.Domain, kvWidth)
	if sess.ExpiresAt == 0 {
		styler.PrintKV("Expires", "unknown (session cookie)", kvWidth)
	} else {
		styler.PrintKV("Expires", time.Unix(sess.ExpiresAt, 0).Format(time.RFC1123), kvWidth)
	}

	switch {
	case sess.IsExpired():
		styler.PrintError("Session is expired; run draftkit auth --refresh")
	case sess.IsExpiringSoon():
		styler.PrintWarning("Session expires within 24 hours")
	default:
		styler.PrintSuccess("Session looks valid")
	}
	return nil
}

// promptSessionCookie walks the user through the manual cookie flow. Input
// is read without echo since the cookie is a bearer secret.
func promptSessionCookie() (string, error) {
	fmt.Println()
	fmt.Println("Manual authentication")
	fmt.Println(strings.Repeat("─", 56))
	fmt.Println()
	fmt.Printf("1. Open your browser and go to: %s\n", loginURL)
	fmt.Println("2. Log in with your TailwindPlus account")
	fmt.Println("3. Open browser DevTools (F12 or Cmd+Option+I)")
	fmt.Println("4. Go to: Application → Cookies → tailwindcss.com")
	fmt.Println("5. Copy the value of 'laravel_session'")
	fmt.Println()
	fmt.Print("Paste session cookie: ")

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	cookie := strings.TrimSpace(string(raw))
	if cookie == "" {
		return "", apperr.InvalidInputf("cookie cannot be empty")
	}
	if len(cookie) < 50 {
		return "", apperr.InvalidInputf("cookie value seems too short; copy the full 'laravel_session' value")
	}
	return cookie, nil
}

package preflight

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tabtidy/internal/browser"
	"tabtidy/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable and writable.
func CheckDirectoryAccess(name, path string) Result {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", expanded)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", expanded, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a directory)", expanded)}
	}
	if err := unix.Access(expanded, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: access: %v)", expanded, err)}
	}
	return Result{Name: name, Passed: true, Detail: expanded}
}

// CheckBridge verifies the browser bridge responds to a tab listing.
func CheckBridge(ctx context.Context, cfg *config.Config) Result {
	const name = "Browser bridge"

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := browser.NewClient(cfg)
	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable at %s (%v)", cfg.Browser.BridgeURL, err)}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}

// CheckCredentials reports one result per provider referenced by a
// route, verifying an API key is configured.
func CheckCredentials(cfg *config.Config) []Result {
	providers := map[string]struct{}{
		cfg.Routing.Analyze.Provider:   {},
		cfg.Routing.Close.Provider:     {},
		cfg.Routing.Automatic.Provider: {},
	}
	names := make([]string, 0, len(providers))
	for provider := range providers {
		if provider != "" {
			names = append(names, provider)
		}
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, provider := range names {
		name := fmt.Sprintf("%s credentials", provider)
		creds, ok := cfg.CredentialsFor(provider)
		if !ok || strings.TrimSpace(creds.APIKey) == "" {
			results = append(results, Result{Name: name, Detail: "API key missing"})
			continue
		}
		results = append(results, Result{Name: name, Passed: true, Detail: "configured"})
	}
	return results
}

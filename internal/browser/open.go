// Package browser opens URLs in the user's default browser. Used by the
// help overlay links and the profile website action.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches the platform's URL handler. The command is started, not
// waited on; a browser that fails after launch is not reported.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

package version

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// RosmsgInfo describes the rosmsg executable the rosmsg source would run.
type RosmsgInfo struct {
	// Path is the resolved executable path.
	Path string `json:"path"`

	// Found indicates the executable is on PATH.
	Found bool `json:"found"`

	// Distro is the ROS distribution, from ROS_DISTRO or rosversion -d.
	Distro string `json:"distro,omitempty"`

	// Message explains a missing installation.
	Message string `json:"message,omitempty"`
}

// DetectRosmsg finds the rosmsg executable and the active ROS distribution.
func DetectRosmsg(ctx context.Context, name string) RosmsgInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return RosmsgInfo{
			Found:   false,
			Message: fmt.Sprintf("%s not found in PATH (source a ROS setup.bash or use --source dir)", name),
		}
	}

	return RosmsgInfo{
		Path:   path,
		Found:  true,
		Distro: detectDistro(ctx),
	}
}

func detectDistro(ctx context.Context) string {
	if distro := os.Getenv("ROS_DISTRO"); distro != "" {
		return distro
	}

	rosversion, err := exec.LookPath("rosversion")
	if err != nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, rosversion, "-d")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(out.String())
}

// String returns a human-readable rosmsg info string.
func (r RosmsgInfo) String() string {
	if !r.Found {
		return "  rosmsg: not found\n  " + r.Message
	}

	distro := r.Distro
	if distro == "" {
		distro = "unknown"
	}
	return fmt.Sprintf("  rosmsg: %s\n  Distro: %s", r.Path, distro)
}

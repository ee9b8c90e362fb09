// Package deps reports whether the external tools streamdetails shells out to
// are installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"streamdetails/internal/config"
)

// Requirement names an external executable a command may need.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the outcome of resolving a Requirement.
type Status struct {
	Requirement
	Path      string
	Available bool
	Detail    string
}

// Requirements lists the executables streamdetails can use. ffprobe is
// optional: saved reports work without it.
func Requirements(cfg *config.Config) []Requirement {
	binary := "ffprobe"
	if cfg != nil && strings.TrimSpace(cfg.Probe.FFprobeBinary) != "" {
		binary = cfg.Probe.FFprobeBinary
	}
	return []Requirement{{
		Name:        "FFprobe",
		Command:     binary,
		Description: "Inspects media files for store put and encode --media",
		Optional:    true,
	}}
}

// CheckBinaries resolves each requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Path = path
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the required (non-optional) dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}

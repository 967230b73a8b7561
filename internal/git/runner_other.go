//go:build !unix

package git

import "os/exec"

// killProcessGroup keeps the default behavior of killing only git itself
func killProcessGroup(_ *exec.Cmd) {}
